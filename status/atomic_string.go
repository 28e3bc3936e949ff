package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps stored labels in bytes; the status bar has no room for more
const MaxStringLen = 24

// AtomicString holds a short label such as the board mode or cascade state
// The zero value loads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store publishes val, cut to at most MaxStringLen bytes on a rune boundary
func (s *AtomicString) Store(val string) {
	val = clip(val, MaxStringLen)
	s.ptr.Store(&val)
}

// Load returns the last stored label
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
