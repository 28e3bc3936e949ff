package audio

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/drop-puzzle/constants"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveTriangle
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples
func oscillator(waveType int, freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(constants.AudioSampleRate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveTriangle:
			buf[i] = 4*math.Abs(phase-0.5) - 1
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * float64(constants.AudioSampleRate))
	releaseSamples := int(releaseSec * float64(constants.AudioSampleRate))

	releaseStart := max(total-releaseSamples, attackSamples)

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// normalize scales buf so its peak is at most 1
func normalize(buf floatBuffer) floatBuffer {
	peak := 0.0
	for _, s := range buf {
		peak = max(peak, math.Abs(s))
	}
	if peak > 1 {
		for i := range buf {
			buf[i] /= peak
		}
	}
	return buf
}

// durationToSamples converts duration to sample count
func durationToSamples(d float64) int {
	return int(d * float64(constants.AudioSampleRate))
}

// --- Sound Generators (unity gain) ---

// generateSwapSound is a short wooden tick
func generateSwapSound() floatBuffer {
	samples := durationToSamples(constants.SwapSoundDuration.Seconds())
	buf := oscillator(waveTriangle, 1200.0, samples)
	noise := oscillator(waveNoise, 0, samples)
	buf = mixFloatBuffers(buf, noise, 0.2)
	applyEnvelope(buf, constants.SwapSoundAttack.Seconds(), constants.SwapSoundRelease.Seconds())
	return normalize(buf)
}

// generateComboSound is a bell whose pitch climbs a semitone per rank
func generateComboSound(rank int) floatBuffer {
	rank = min(max(rank, 1), maxComboRank)
	freq := constants.ComboBaseFrequency * math.Pow(2, float64(rank-1)/12.0)
	samples := durationToSamples(constants.ComboSoundDuration.Seconds())

	fund := oscillator(waveSine, freq, samples)
	applyEnvelope(fund, constants.ComboSoundAttack.Seconds(), constants.ComboSoundFundamentalTail.Seconds())

	over := oscillator(waveSine, freq*2, samples)
	applyEnvelope(over, constants.ComboSoundAttack.Seconds(), constants.ComboSoundOvertoneTail.Seconds())

	// Mix 70% fundamental + 30% overtone
	return normalize(mixFloatBuffers(fund, over, 0.3/0.7))
}

// generateFallSound is a low thud
func generateFallSound() floatBuffer {
	samples := durationToSamples(constants.FallSoundDuration.Seconds())
	buf := oscillator(waveSine, 90.0, samples)
	buf = mixFloatBuffers(buf, oscillator(waveSquare, 45.0, samples), 0.25)
	applyEnvelope(buf, constants.FallSoundAttack.Seconds(), constants.FallSoundRelease.Seconds())
	return normalize(buf)
}

// generateSound dispatches to specific generator; combo uses rank 1
func generateSound(st SoundType) floatBuffer {
	switch st {
	case SoundSwap:
		return generateSwapSound()
	case SoundCombo:
		return generateComboSound(1)
	case SoundFall:
		return generateFallSound()
	default:
		return nil
	}
}
