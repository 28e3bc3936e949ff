package board

import "github.com/lixenwraith/drop-puzzle/grid"

// session tracks the single active pointer
type session struct {
	active  bool
	pointer int
	last    grid.Position
	moved   bool
}

func (s *session) begin(pointer int) {
	*s = session{active: true, pointer: pointer, last: grid.EmptyPos()}
}

func (s *session) owns(pointer int) bool {
	return s.active && s.pointer == pointer
}

func (s *session) end() {
	*s = session{last: grid.EmptyPos()}
}
