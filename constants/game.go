package constants

import "time"

// Board Geometry
const (
	// DefaultBoardSize is the default column count; rows are always one fewer
	DefaultBoardSize = 6

	// MinBoardSize is the smallest accepted column count
	MinBoardSize = 2

	// MaxBoardSize bounds sizes accepted from configuration and the network boundary
	MaxBoardSize = 12

	// MinMatchLength is the shortest run that forms a combo
	MinMatchLength = 3

	// PathStepLimit is the runaway guard for path emulation
	PathStepLimit = 100
)

// BoardSizes are the quick-select column counts (5x4, 6x5, 7x6)
var BoardSizes = []int{5, 6, 7}

// Cascade Timing
const (
	// FadeDuration is the fade-out time of one combo group; groups fade one after another
	FadeDuration = 250 * time.Millisecond

	// FallDuration is the time every surviving drop takes to reach its new row
	FallDuration = 200 * time.Millisecond
)
