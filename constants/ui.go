package constants

// Board Rendering
const (
	// TileWidth is the terminal column span of one board cell
	TileWidth = 4

	// TileHeight is the terminal row span of one board cell
	TileHeight = 2

	// BoardOffsetX is the left margin of the board area
	BoardOffsetX = 2

	// BoardOffsetY is the top margin of the board area
	BoardOffsetY = 1

	// StatusBarHeight is the number of rows reserved below the board
	StatusBarHeight = 2
)

// Network
const (
	// ClientSendQueueSize is the per-connection outbound buffer
	ClientSendQueueSize = 256
)
