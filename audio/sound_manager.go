package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/drop-puzzle/constants"
)

// Player is the minimal playback surface used by the event handler
type Player interface {
	Play(st SoundType) bool
	PlayCombo(rank int, delay time.Duration) bool
}

// SoundManager manages board audio through the beep speaker
// Every operation is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	cache       *soundCache
	mixer       *beep.Mixer
	volume      *effects.Volume
	sampleRate  beep.SampleRate
	initialized bool
	muted       bool
	lastPlayed  [soundTypeCount]time.Time
}

// NewSoundManager creates a sound manager; nil config uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	sm := &SoundManager{
		config:     cfg,
		cache:      newSoundCache(),
		mixer:      &beep.Mixer{},
		sampleRate: beep.SampleRate(cfg.SampleRate),
		muted:      !cfg.Enabled,
	}
	sm.volume = &effects.Volume{Streamer: sm.mixer, Base: 2, Silent: sm.muted}
	return sm
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	err := speaker.Init(sm.sampleRate, sm.sampleRate.N(constants.AudioBufferDuration))
	if err != nil {
		return err
	}

	sm.cache.preload()
	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// Play queues a cue; repeats of one cue closer than MinSoundGap are dropped
// Returns false if nothing was queued
func (sm *SoundManager) Play(st SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready() || st < 0 || st >= soundTypeCount {
		return false
	}

	now := time.Now()
	if now.Sub(sm.lastPlayed[st]) < constants.MinSoundGap {
		return false
	}
	sm.lastPlayed[st] = now

	sm.add(newBufferStreamer(sm.cache.get(st), sm.gain(st)))
	return true
}

// PlayCombo queues the chime for a combo rank, starting after delay
func (sm *SoundManager) PlayCombo(rank int, delay time.Duration) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.ready() {
		return false
	}

	chime := newBufferStreamer(sm.cache.combo(rank), sm.gain(SoundCombo))
	if delay > 0 {
		sm.add(beep.Seq(beep.Silence(sm.sampleRate.N(delay)), chime))
	} else {
		sm.add(chime)
	}
	return true
}

// ToggleMute flips mute state, returns true if audio is now audible
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.initialized {
		speaker.Lock()
		sm.volume.Silent = sm.muted
		speaker.Unlock()
	} else {
		sm.volume.Silent = sm.muted
	}
	return !sm.muted
}

// IsMuted returns current mute state
func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// IsRunning reports whether the speaker is initialized
func (sm *SoundManager) IsRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

func (sm *SoundManager) ready() bool {
	return sm.initialized && !sm.muted
}

func (sm *SoundManager) gain(st SoundType) float64 {
	return sm.config.MasterVolume * sm.config.effectVolume(st)
}

// add must be called with sm.mu held
func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
