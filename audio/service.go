package audio

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/drop-puzzle/status"
)

// AudioService wraps SoundManager as a Service
// Handles graceful degradation when no audio device is available
type AudioService struct {
	manager  *SoundManager
	metrics  *status.Registry
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
// Status must be ready so cue counts land in the shared registry
func (s *AudioService) Dependencies() []string {
	return []string{status.ServiceName}
}

// Init implements Service
// Picks the first *AudioConfig from args, defaults otherwise
func (s *AudioService) Init(args ...any) error {
	metrics, err := status.RegistryFrom(args...)
	if err != nil {
		return err
	}
	s.metrics = metrics

	config := DefaultAudioConfig()
	for _, a := range args {
		if c, ok := a.(*AudioConfig); ok && c != nil {
			config = c
			break
		}
	}

	s.manager = NewSoundManager(config)
	if !config.Enabled {
		s.disabled.Store(true)
	}
	return nil
}

// Start implements Service
// Opens the speaker; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.manager == nil {
		return nil
	}

	if err := s.manager.Initialize(); err != nil {
		log.Printf("audio: speaker unavailable, running silent: %v", err)
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.manager != nil {
		s.manager.Cleanup()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Manager returns the sound manager (nil before Init)
func (s *AudioService) Manager() *SoundManager {
	return s.manager
}

// Handler returns the event handler for the game loop
// Safe to register even when disabled: the manager ignores cues until initialized
func (s *AudioService) Handler() *EventHandler {
	return NewEventHandler(s.manager, s.metrics)
}
