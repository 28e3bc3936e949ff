package grid

import (
	"encoding/json"
	"fmt"
)

// Position is a board cell coordinate with an explicit empty variant
// The empty position means "no active pointer location" and never equals a concrete cell
type Position struct {
	X, Y  int
	valid bool
}

// Pos creates a concrete position
func Pos(x, y int) Position {
	return Position{X: x, Y: y, valid: true}
}

// EmptyPos creates the no-location position
func EmptyPos() Position {
	return Position{}
}

// IsEmpty reports whether p carries no coordinate
func (p Position) IsEmpty() bool {
	return !p.valid
}

// Equal compares coordinates of concrete positions; empty only equals empty
func (p Position) Equal(o Position) bool {
	if p.valid != o.valid {
		return false
	}
	if !p.valid {
		return true
	}
	return p.X == o.X && p.Y == o.Y
}

func (p Position) String() string {
	if !p.valid {
		return "(-)"
	}
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

type wirePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MarshalJSON encodes concrete positions as {"x":..,"y":..} and empty as null
func (p Position) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return json.Marshal(wirePosition{X: p.X, Y: p.Y})
}

// UnmarshalJSON accepts the MarshalJSON forms
func (p *Position) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = EmptyPos()
		return nil
	}
	var w wirePosition
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	*p = Pos(w.X, w.Y)
	return nil
}
