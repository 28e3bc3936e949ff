package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the output sample rate for all generated cues
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two cues of the same kind
	MinSoundGap = 30 * time.Millisecond
)

// Swap Tick Timing
const (
	SwapSoundDuration = 40 * time.Millisecond
	SwapSoundAttack   = 2 * time.Millisecond
	SwapSoundRelease  = 25 * time.Millisecond
)

// Combo Chime Timing
const (
	ComboSoundDuration        = 220 * time.Millisecond
	ComboSoundAttack          = 5 * time.Millisecond
	ComboSoundFundamentalTail = 200 * time.Millisecond
	ComboSoundOvertoneTail    = 90 * time.Millisecond
)

// Fall Thud Timing
const (
	FallSoundDuration = 90 * time.Millisecond
	FallSoundAttack   = 3 * time.Millisecond
	FallSoundRelease  = 70 * time.Millisecond
)

// ComboBaseFrequency is the chime pitch of rank 1; each rank climbs a semitone
const ComboBaseFrequency = 659.25
