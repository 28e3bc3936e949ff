package cascade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/grid"
)

const (
	A = drop.Fire
	B = drop.Water
	C = drop.Wood
	D = drop.Light
	E = drop.Dark
	F = drop.Heal
	X = drop.Empty
)

const tick = 16 * time.Millisecond

var testConfig = Config{FadeDuration: 100 * time.Millisecond, FallDuration: 50 * time.Millisecond}

// singleRunRows holds exactly one run: row 0 columns 0-2
func singleRunRows() [][]drop.ID {
	return [][]drop.ID{
		{A, A, A, B, C, D},
		{B, C, D, E, F, A},
		{C, D, E, F, A, B},
		{D, E, F, A, B, C},
		{E, F, A, B, C, D},
	}
}

// runToIdle ticks the resolver until it settles, failing after limit ticks
func runToIdle(t *testing.T, r *Resolver, limit int) int {
	t.Helper()
	for i := 0; i < limit; i++ {
		if !r.Busy() {
			return i
		}
		r.Update(tick)
	}
	require.False(t, r.Busy(), "resolver still %s after %d ticks", r.State(), limit)
	return limit
}

func TestSingleRunClearMode(t *testing.T) {
	q := event.NewEventQueue()
	r := NewResolver(testConfig, q)
	g := grid.FromIDs(singleRunRows())

	var got Summary
	done := 0
	r.OnDone(func(s Summary) { got = s; done++ })

	require.True(t, r.Start(g, nil, nil))
	runToIdle(t, r, 100)

	assert.Equal(t, 1, done)
	assert.Equal(t, Summary{Rounds: 1, Combos: 1, Removed: 3}, got)

	want := [][]drop.ID{
		{B, C, D, B, C, D},
		{C, D, E, E, F, A},
		{D, E, F, F, A, B},
		{E, F, A, A, B, C},
		{X, X, X, B, C, D},
	}
	assert.Equal(t, want, g.IDs())
}

func TestEventStream(t *testing.T) {
	q := event.NewEventQueue()
	r := NewResolver(testConfig, q)
	rows := singleRunRows()
	rows[4] = []drop.ID{F, F, F, B, C, D}
	g := grid.FromIDs(rows)

	require.True(t, r.Start(g, nil, nil))
	runToIdle(t, r, 100)

	events := q.Consume()
	require.NotEmpty(t, events)
	assert.Equal(t, event.EventCascadeStart, events[0].Type)
	assert.Equal(t, event.EventCascadeComplete, events[len(events)-1].Type)

	var fades []*event.GroupFadePayload
	falls := 0
	rounds := 0
	for _, ev := range events {
		switch ev.Type {
		case event.EventGroupFade:
			fades = append(fades, ev.Payload.(*event.GroupFadePayload))
		case event.EventDropFall:
			p := ev.Payload.(*event.DropFallPayload)
			assert.Less(t, p.ToY, p.FromY, "drops only fall")
			assert.False(t, p.Spawned)
			falls++
		case event.EventCascadeRound:
			rounds++
		}
	}

	require.Len(t, fades, 2)
	assert.Equal(t, 1, fades[0].Rank)
	assert.Equal(t, A, fades[0].ID)
	assert.Equal(t, time.Duration(0), fades[0].Delay)
	assert.Equal(t, 2, fades[1].Rank)
	assert.Equal(t, F, fades[1].ID)
	assert.Equal(t, testConfig.FadeDuration, fades[1].Delay)

	// Columns 0-2 lose rows 0 and 4: rows 1-3 each fall one row
	assert.Equal(t, 9, falls)
	assert.Equal(t, 1, rounds)

	done := events[len(events)-1].Payload.(*event.CascadeCompletePayload)
	assert.Equal(t, 6, done.Removed)
	assert.Equal(t, 2, done.Combos)
}

func TestFadeWaitScalesWithGroupCount(t *testing.T) {
	r := NewResolver(testConfig, nil)
	rows := singleRunRows()
	rows[4] = []drop.ID{F, F, F, B, C, D}
	g := grid.FromIDs(rows)

	require.True(t, r.Start(g, nil, nil))
	assert.Equal(t, "Detecting", r.State())

	r.Update(0)
	require.Equal(t, "Fading", r.State())
	assert.Equal(t, X, g.At(grid.Pos(0, 0)).ID(), "matched cells empty while fading")

	r.Update(2*testConfig.FadeDuration - time.Millisecond)
	assert.Equal(t, "Fading", r.State(), "two groups fade sequentially")

	r.Update(time.Millisecond)
	require.Equal(t, "Falling", r.State())
	assert.Equal(t, X, g.At(grid.Pos(0, 0)).ID(), "fall not committed before fall duration")

	r.Update(testConfig.FallDuration)
	assert.Equal(t, B, g.At(grid.Pos(0, 0)).ID())
}

func TestStartWhileBusyRejected(t *testing.T) {
	r := NewResolver(testConfig, nil)
	g := grid.FromIDs(singleRunRows())

	require.True(t, r.Start(g, nil, nil))
	assert.True(t, r.Busy())
	assert.False(t, r.Start(g.Clone(), nil, nil))
}

func TestNoCombosCompletesEmpty(t *testing.T) {
	r := NewResolver(testConfig, nil)
	rows := singleRunRows()
	rows[0] = []drop.ID{A, B, A, B, C, D}
	g := grid.FromIDs(rows)
	before := g.Clone()

	var got *Summary
	r.OnDone(func(s Summary) { got = &s })

	require.True(t, r.Start(g, nil, nil))
	r.Update(tick)
	assert.False(t, r.Busy())
	require.NotNil(t, got)
	assert.Zero(t, got.Rounds)
	assert.True(t, g.Equal(before))
}

func TestDisabledIdsSkipped(t *testing.T) {
	r := NewResolver(testConfig, nil)
	g := grid.FromIDs(singleRunRows())

	var got Summary
	r.OnDone(func(s Summary) { got = s })
	require.True(t, r.Start(g, drop.NewSet(A), nil))
	runToIdle(t, r, 10)

	assert.Zero(t, got.Combos)
	assert.Equal(t, A, g.At(grid.Pos(0, 0)).ID())
}

func TestRefillSpawnsFromAbove(t *testing.T) {
	r := NewResolver(testConfig, nil)
	g := grid.FromIDs(singleRunRows())
	// Refill with distinct ids so no chain forms
	seq := []drop.ID{B, C, D}
	i := 0
	refill := func() *drop.Drop {
		d := drop.New(seq[i%len(seq)])
		i++
		return d
	}

	require.True(t, r.Start(g, nil, refill))
	runToIdle(t, r, 100)

	assert.False(t, g.HasEmpty())
	assert.Equal(t, []drop.ID{B, C, D, B, C, D}, g.IDs()[4])
}

func TestCascadeTerminatesAtRoundCap(t *testing.T) {
	r := NewResolver(testConfig, nil)
	g := grid.New(3, drop.ConstFactory(A))

	var got Summary
	r.OnDone(func(s Summary) { got = s })
	require.True(t, r.Start(g, nil, drop.ConstFactory(A)))
	runToIdle(t, r, 1000)

	// rows x cols = 2 x 3
	assert.Equal(t, 6, got.Rounds)
	assert.True(t, got.Capped)
	assert.Equal(t, 36, got.Removed)
}

func TestCascadeTerminatesOnRandomBoards(t *testing.T) {
	for range 20 {
		g := grid.New(7, nil)
		r := NewResolver(Config{FadeDuration: tick, FallDuration: tick}, nil)
		var got Summary
		r.OnDone(func(s Summary) { got = s })

		r.Start(g, nil, nil)
		runToIdle(t, r, 10000)

		assert.LessOrEqual(t, got.Rounds, g.Rows()*g.Cols())
		assert.False(t, got.Capped)
	}
}

func TestAbortEndsCascade(t *testing.T) {
	q := event.NewEventQueue()
	r := NewResolver(testConfig, q)
	g := grid.FromIDs(singleRunRows())

	var got Summary
	r.OnDone(func(s Summary) { got = s })
	require.True(t, r.Start(g, nil, nil))
	r.Update(0)
	require.Equal(t, "Fading", r.State())

	r.Abort()
	assert.False(t, r.Busy())
	assert.True(t, got.Aborted)
	assert.Zero(t, got.Rounds)

	// Resolver is reusable after abort
	assert.True(t, r.Start(grid.FromIDs(singleRunRows()), nil, nil))
}

func TestSingleRowPanics(t *testing.T) {
	r := NewResolver(testConfig, nil)
	g := grid.FromIDs([][]drop.ID{{A, B}})
	assert.Panics(t, func() { r.Start(g, nil, nil) })
}
