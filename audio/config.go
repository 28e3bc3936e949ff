package audio

import "github.com/lixenwraith/drop-puzzle/constants"

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns enabled audio at half volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundSwap:  0.35,
			SoundCombo: 0.8,
			SoundFall:  0.5,
		},
		SampleRate: constants.AudioSampleRate,
	}
}

// effectVolume returns the per-cue gain, 1.0 when unset
func (c *AudioConfig) effectVolume(st SoundType) float64 {
	if v, ok := c.EffectVolumes[st]; ok {
		return v
	}
	return 1.0
}
