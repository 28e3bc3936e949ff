package board

import (
	"fmt"
	"strings"
)

// Mode selects what a drag does
type Mode int

const (
	// ModePuzzle swaps drops along the drag path and resolves on release
	ModePuzzle Mode = iota
	// ModePalette paints: every visited cell raises a drop-pushed notification
	ModePalette
)

var modeNames = [...]string{
	ModePuzzle:  "puzzle",
	ModePalette: "palette",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves a mode name, case-insensitive
// Unknown names are an error rather than a silent fallback
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown board mode %q", s)
}

// MarshalText encodes the mode name
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("invalid board mode %d", int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText decodes a mode name
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
