package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/cascade"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/engine"
	"github.com/lixenwraith/drop-puzzle/grid"
	"github.com/lixenwraith/drop-puzzle/palette"
	"github.com/lixenwraith/drop-puzzle/render"
)

func mouse(x, y int, btn tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, btn, tcell.ModNone)
}

func TestMouseDragProducesPointerSequence(t *testing.T) {
	tr := NewTranslator(nil, render.NewLayout(6, 5))

	// Bottom-left tile starts at (2, 9)
	in := tr.Process(mouse(3, 9, tcell.Button1))
	require.NotNil(t, in)
	assert.Equal(t, IntentPointerDown, in.Type)
	assert.Equal(t, grid.Pos(0, 0), in.Pos)

	in = tr.Process(mouse(7, 9, tcell.Button1))
	require.NotNil(t, in)
	assert.Equal(t, IntentPointerMove, in.Type)
	assert.Equal(t, grid.Pos(1, 0), in.Pos)

	// Off-board drag clamps to the edge
	in = tr.Process(mouse(200, 9, tcell.Button1))
	require.NotNil(t, in)
	assert.Equal(t, grid.Pos(5, 0), in.Pos)

	in = tr.Process(mouse(200, 9, tcell.ButtonNone))
	require.NotNil(t, in)
	assert.Equal(t, IntentPointerUp, in.Type)

	assert.Nil(t, tr.Process(mouse(3, 9, tcell.ButtonNone)), "motion without a button is ignored")
}

func TestPressOffBoardStartsNoSession(t *testing.T) {
	tr := NewTranslator(nil, render.NewLayout(6, 5))

	assert.Nil(t, tr.Process(mouse(0, 0, tcell.Button1)))
	assert.Nil(t, tr.Process(mouse(3, 9, tcell.Button1)), "drag onto the board does not start a session")
	assert.Nil(t, tr.Process(mouse(3, 9, tcell.ButtonNone)))

	in := tr.Process(mouse(3, 9, tcell.Button1))
	require.NotNil(t, in)
	assert.Equal(t, IntentPointerDown, in.Type)
}

func TestDefaultKeyBindings(t *testing.T) {
	tr := NewTranslator(nil, render.NewLayout(6, 5))

	cases := []struct {
		r    rune
		want Intent
	}{
		{'p', Intent{Type: IntentMode, Mode: board.ModePuzzle}},
		{'e', Intent{Type: IntentMode, Mode: board.ModePalette}},
		{'r', Intent{Type: IntentRandomize}},
		{'c', Intent{Type: IntentClear}},
		{' ', Intent{Type: IntentReset}},
		{'[', Intent{Type: IntentShrink}},
		{']', Intent{Type: IntentGrow}},
		{'s', Intent{Type: IntentToggleSkyfall}},
		{'0', Intent{Type: IntentBrushID, ID: drop.Fire}},
		{'9', Intent{Type: IntentBrushID, ID: drop.Bomb}},
		{'l', Intent{Type: IntentBrushTool, Tool: palette.ToolLock}},
		{'+', Intent{Type: IntentBrushTool, Tool: palette.ToolPowerUp}},
		{'-', Intent{Type: IntentBrushTool, Tool: palette.ToolPowerDown}},
		{'m', Intent{Type: IntentBrushTool, Tool: palette.ToolCombo}},
		{'n', Intent{Type: IntentBrushTool, Tool: palette.ToolNail}},
		{'x', Intent{Type: IntentBrushTool, Tool: palette.ToolErase}},
		{'d', Intent{Type: IntentToggleDisabled}},
		{'q', Intent{Type: IntentQuit}},
	}
	for _, tc := range cases {
		got := tr.lookup(tcell.KeyRune, tc.r)
		require.NotNil(t, got, "key %q", tc.r)
		assert.Equal(t, tc.want, *got, "key %q", tc.r)
	}

	assert.Equal(t, IntentQuit, tr.lookup(tcell.KeyEscape, 0).Type)
	assert.Equal(t, IntentToggleMute, tr.lookup(tcell.KeyCtrlS, 0).Type)
	assert.Nil(t, tr.lookup(tcell.KeyRune, 'z'))
	assert.Equal(t, &Intent{Type: IntentBoardSize, Size: 6}, tr.lookup(tcell.KeyF2, 0))
	assert.Nil(t, tr.lookup(tcell.KeyF12, 0))

	assert.Equal(t, IntentResize, tr.Process(tcell.NewEventResize(80, 24)).Type)
}

func TestLoadKeyConfigAndMerge(t *testing.T) {
	override, err := LoadKeyConfig([]byte(`{
		"runes": {"space": "none", "z": "brush_poison", "q": "randomize"},
		"keys": {"Ctrl-Q": "quit"}
	}`))
	require.NoError(t, err)

	kt := MergeKeyTable(DefaultKeyTable(), override)
	_, ok := kt.Runes[' ']
	assert.False(t, ok, "none unbinds")
	assert.Equal(t, KeyEntry{Intent: IntentBrushID, ID: drop.Poison}, kt.Runes['z'])
	assert.Equal(t, IntentRandomize, kt.Runes['q'].Intent)
	assert.Equal(t, IntentQuit, kt.SpecialKeys[tcell.KeyCtrlQ].Intent)
	assert.Equal(t, IntentQuit, kt.SpecialKeys[tcell.KeyEscape].Intent, "base entries survive")

	// Base table untouched
	assert.Equal(t, IntentReset, DefaultKeyTable().Runes[' '].Intent)
}

func TestLoadKeyConfigErrors(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":         `{`,
		"unknown action": `{"runes": {"a": "fly"}}`,
		"long rune":      `{"runes": {"ab": "quit"}}`,
		"unknown key":    `{"keys": {"hyper-x": "quit"}}`,
	} {
		_, err := LoadKeyConfig([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestActionNamesSorted(t *testing.T) {
	names := ActionNames()
	assert.Contains(t, names, "brush_deadlypoison")
	assert.IsNonDecreasing(t, names)
}

type recordingLoop struct {
	cmds []engine.Command
}

func (r *recordingLoop) Submit(c engine.Command) bool {
	r.cmds = append(r.cmds, c)
	return true
}

func newControllerBoard() *board.Board {
	return board.New(board.Config{
		Size:    5,
		Mode:    board.ModePuzzle,
		Cascade: cascade.DefaultConfig(),
		Factory: drop.ConstFactory(drop.Water),
	}, nil, nil)
}

// run applies recorded function commands to b the way the loop would
func (r *recordingLoop) run(b *board.Board) {
	for _, c := range r.cmds {
		if c.Kind == engine.CmdFunc {
			c.Fn(b)
		}
	}
	r.cmds = nil
}

func TestControllerBoardOperations(t *testing.T) {
	loop := &recordingLoop{}
	brush := palette.NewBrush()
	muted := 0
	c := NewController(loop, brush, func() { muted++ })
	b := newControllerBoard()

	assert.False(t, c.Apply(&Intent{Type: IntentQuit}))
	assert.True(t, c.Apply(nil))

	c.Apply(&Intent{Type: IntentMode, Mode: board.ModePalette})
	c.Apply(&Intent{Type: IntentGrow})
	c.Apply(&Intent{Type: IntentToggleSkyfall})
	loop.run(b)
	assert.Equal(t, board.ModePalette, b.Mode())
	assert.Equal(t, 6, b.Start().Size())
	assert.True(t, b.Skyfall())

	c.Apply(&Intent{Type: IntentBrushID, ID: drop.Dark})
	c.Apply(&Intent{Type: IntentToggleDisabled})
	loop.run(b)
	assert.Equal(t, drop.Dark, brush.ID)
	assert.True(t, b.Disabled().Has(drop.Dark))

	c.Apply(&Intent{Type: IntentBrushTool, Tool: palette.ToolNail})
	loop.run(b)
	assert.Equal(t, palette.ToolNail, brush.Tool)

	c.Apply(&Intent{Type: IntentToggleMute})
	assert.Equal(t, 1, muted)
	require.Len(t, loop.cmds, 1)
	assert.Equal(t, engine.CmdRedraw, loop.cmds[0].Kind)
}

func TestControllerSizeBounds(t *testing.T) {
	loop := &recordingLoop{}
	c := NewController(loop, palette.NewBrush(), nil)
	b := board.New(board.Config{Size: 2, Cascade: cascade.DefaultConfig(), Factory: drop.ConstFactory(drop.Wood)}, nil, nil)

	c.Apply(&Intent{Type: IntentShrink})
	loop.run(b)
	assert.Equal(t, 2, b.Start().Size(), "minimum size holds")

	c.Apply(&Intent{Type: IntentGrow})
	loop.run(b)
	assert.Equal(t, 3, b.Start().Size())

	c.Apply(&Intent{Type: IntentBoardSize, Size: 7})
	loop.run(b)
	assert.Equal(t, 7, b.Start().Size())

	c.Apply(&Intent{Type: IntentBoardSize, Size: constants.MaxBoardSize + 1})
	assert.Empty(t, loop.cmds, "out of range size submits nothing")
}

func TestControllerPointerCommands(t *testing.T) {
	loop := &recordingLoop{}
	c := NewController(loop, palette.NewBrush(), nil)

	c.Apply(&Intent{Type: IntentPointerDown, Pos: grid.Pos(1, 2)})
	c.Apply(&Intent{Type: IntentPointerMove, Pos: grid.Pos(2, 2)})
	c.Apply(&Intent{Type: IntentPointerUp})

	require.Len(t, loop.cmds, 3)
	assert.Equal(t, engine.PointerDown(0, grid.Pos(1, 2)).Kind, loop.cmds[0].Kind)
	assert.Equal(t, grid.Pos(1, 2), loop.cmds[0].Pos)
	assert.Equal(t, engine.CmdPointerMove, loop.cmds[1].Kind)
	assert.Equal(t, engine.CmdPointerUp, loop.cmds[2].Kind)
}
