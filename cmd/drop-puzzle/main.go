package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/drop-puzzle/audio"
	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/config"
	"github.com/lixenwraith/drop-puzzle/core"
	"github.com/lixenwraith/drop-puzzle/engine"
	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/input"
	"github.com/lixenwraith/drop-puzzle/network"
	"github.com/lixenwraith/drop-puzzle/palette"
	"github.com/lixenwraith/drop-puzzle/render"
	"github.com/lixenwraith/drop-puzzle/service"
	"github.com/lixenwraith/drop-puzzle/status"
)

const (
	logDir      = "logs"
	logFileName = "drop-puzzle.log"
	maxLogSize  = 10 * 1024 * 1024 // 10 MiB
)

// setupLogging routes the standard logger to logs/drop-puzzle.log when debug is set
// An oversized log is renamed with a timestamp before a fresh one is opened
// Returns nil and discards all output otherwise; stdout belongs to the terminal UI
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("drop-puzzle-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			// Truncate instead so the file cannot grow without bound
			os.Truncate(logPath, 0)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

// parseFlags overlays command-line flags on the environment configuration
func parseFlags(args []string) (*config.Config, error) {
	cfg := config.LoadFromEnv()

	fs := flag.NewFlagSet("drop-puzzle", flag.ContinueOnError)
	fs.IntVar(&cfg.BoardSize, "size", cfg.BoardSize, "board columns; rows are one less")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "interaction mode: puzzle or palette")
	fs.BoolVar(&cfg.Skyfall, "skyfall", cfg.Skyfall, "refill cleared cells with new drops")
	fs.DurationVar(&cfg.FadeDuration, "fade", cfg.FadeDuration, "combo fade duration")
	fs.DurationVar(&cfg.FallDuration, "fall", cfg.FallDuration, "drop fall duration")
	fs.StringVar(&cfg.Listen, "listen", cfg.Listen, "websocket address (host:port), empty disables")
	fs.StringVar(&cfg.Keymap, "keymap", cfg.Keymap, "JSON key binding overrides")
	fs.BoolVar(&cfg.AudioEnabled, "audio", cfg.AudioEnabled, "enable sound")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write logs to "+filepath.Join(logDir, logFileName))
	disabled := fs.String("disabled", "", `disabled drops as JSON, e.g. [4, "poison"]`)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *disabled != "" {
		ids, err := config.ParseDisabled(*disabled)
		if err != nil {
			return nil, err
		}
		cfg.Disabled = ids
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadKeys merges the optional keymap file over the default bindings
func loadKeys(path string) (*input.KeyTable, error) {
	keys := input.DefaultKeyTable()
	if path == "" {
		return keys, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(keys, override), nil
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "drop-puzzle: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	keys, err := loadKeys(cfg.Keymap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drop-puzzle: %v\n", err)
		os.Exit(2)
	}

	// Services: status owns the metrics registry; audio and network reach it
	// through the hub, so status always initializes first
	hub := service.NewHub()
	statusSvc := status.NewService()
	audioSvc := audio.NewService()
	netSvc := network.NewService()
	for _, svc := range []service.Service{statusSvc, audioSvc, netSvc} {
		if err := hub.Register(svc); err != nil {
			fmt.Fprintf(os.Stderr, "drop-puzzle: %v\n", err)
			os.Exit(1)
		}
	}
	reg := statusSvc.Registry()

	queue := event.NewEventQueue()
	b := board.New(cfg.BoardConfig(), queue, reg)
	loop := engine.NewLoop(b, queue, nil, engine.LoopConfig{
		TickInterval:  cfg.TickInterval,
		CoalesceMoves: true,
	}, reg)

	audioCfg := audio.DefaultAudioConfig()
	audioCfg.Enabled = cfg.AudioEnabled
	audioCfg.MasterVolume = cfg.MasterVolume

	netCfg := network.DefaultConfig()
	netCfg.Address = cfg.Listen

	if err := hub.InitAll(audioCfg, netCfg, loop, b); err != nil {
		fmt.Fprintf(os.Stderr, "drop-puzzle: %v\n", err)
		os.Exit(1)
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintf(os.Stderr, "drop-puzzle: %v\n", err)
		os.Exit(1)
	}
	defer hub.StopAll()
	log.Printf("services started: %v", hub.Order())

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return
	}
	core.RegisterScreen(screen)
	defer func() {
		core.RegisterScreen(nil)
		screen.Fini()
	}()
	screen.EnableMouse()
	screen.HideCursor()

	brush := palette.NewBrush()
	manager := audioSvc.Manager()

	renderer := render.NewRenderer(screen, reg)
	renderer.SetStatus(func() string {
		if manager.IsMuted() {
			return brush.String() + "  muted"
		}
		return brush.String()
	})
	loop.SetFrameSink(renderer)
	loop.RegisterEventHandler(renderer)
	loop.RegisterEventHandler(audioSvc.Handler())
	loop.RegisterEventHandler(palette.NewHandler(brush, b))
	if srv := netSvc.Server(); srv != nil {
		loop.RegisterEventHandler(srv)
		log.Printf("network: listening on %s", srv.Addr())
	}

	translator := input.NewTranslator(keys, renderer)
	controller := input.NewController(loop, brush, func() { manager.ToggleMute() })

	loop.Start()
	defer loop.Stop()

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !controller.Apply(translator.Process(ev)) {
				return
			}
		case <-loop.Done():
			return
		}
	}
}
