package audio

import "github.com/gopxl/beep"

// bufferStreamer plays a mono buffer on both channels, then drains
type bufferStreamer struct {
	buf  floatBuffer
	gain float64
	pos  int
}

func newBufferStreamer(buf floatBuffer, gain float64) *bufferStreamer {
	return &bufferStreamer{buf: buf, gain: gain}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			return i, true
		}
		v := s.buf[s.pos] * s.gain
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *bufferStreamer) Err() error {
	return nil
}

// Len returns the total sample count
func (s *bufferStreamer) Len() int {
	return len(s.buf)
}

var _ beep.Streamer = (*bufferStreamer)(nil)
