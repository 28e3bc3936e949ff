// Package drop defines the board token ("drop") and its modifier invariants.
package drop

import "math/rand/v2"

// ID indexes the drop palette; Empty marks a removed cell
type ID int

// Empty is the sentinel id of a cell emptied by a combo before gravity compacts it
const Empty ID = -1

// Drop kinds in palette order
const (
	Fire ID = iota
	Water
	Wood
	Light
	Dark
	Heal
	Poison
	DeadlyPoison
	Trash
	Bomb
)

// PlayableCount is the size of the playable palette (Fire..Heal)
// Only playable drops carry power/combo/nail modifiers and only they are generated at random
const PlayableCount = 6

var names = [...]string{
	"fire", "water", "wood", "light", "dark", "heal",
	"poison", "deadlypoison", "trash", "bomb",
}

// Count is the number of named drop kinds
const Count = len(names)

// String returns the palette name, "empty" or "unknown"
func (id ID) String() string {
	if id == Empty {
		return "empty"
	}
	if id < 0 || int(id) >= len(names) {
		return "unknown"
	}
	return names[id]
}

// Playable reports whether id belongs to the playable palette
func (id ID) Playable() bool {
	return id >= 0 && id < PlayableCount
}

// Valid reports whether id is a named kind or Empty
func (id ID) Valid() bool {
	return id == Empty || (id >= 0 && int(id) < len(names))
}

// ParseID resolves a palette name
func ParseID(name string) (ID, bool) {
	if name == "empty" {
		return Empty, true
	}
	for i, n := range names {
		if n == name {
			return ID(i), true
		}
	}
	return Empty, false
}

// Power levels
const (
	PowerWeak    = -1
	PowerNormal  = 0
	PowerEnhance = 1
)

// Drop is a single board token
// Fields are read directly; mutation goes through setters so non-playable drops stay neutral
type Drop struct {
	id    ID
	lock  bool
	power int
	combo bool
	nail  bool
}

// New creates an unmodified drop of the given kind
func New(id ID) *Drop {
	return &Drop{id: id}
}

// NewEmpty creates an empty-sentinel drop
func NewEmpty() *Drop {
	return &Drop{id: Empty}
}

func (d *Drop) ID() ID      { return d.id }
func (d *Drop) Lock() bool  { return d.lock }
func (d *Drop) Power() int  { return d.power }
func (d *Drop) Combo() bool { return d.combo }
func (d *Drop) Nail() bool  { return d.nail }

// IsEmpty reports whether the drop is the removed sentinel
func (d *Drop) IsEmpty() bool { return d.id == Empty }

// SetID changes the kind; leaving the playable palette resets power/combo/nail
func (d *Drop) SetID(id ID) {
	d.id = id
	if !id.Playable() {
		d.power = PowerNormal
		d.combo = false
		d.nail = false
	}
}

// SetLock toggles the lock marker; allowed on every kind
func (d *Drop) SetLock(lock bool) {
	d.lock = lock
}

// SetPower clamps to {-1,0,+1}; ignored on non-playable drops
func (d *Drop) SetPower(power int) {
	if !d.id.Playable() {
		return
	}
	switch {
	case power > PowerEnhance:
		power = PowerEnhance
	case power < PowerWeak:
		power = PowerWeak
	}
	d.power = power
}

// SetCombo is ignored on non-playable drops
func (d *Drop) SetCombo(combo bool) {
	if !d.id.Playable() {
		return
	}
	d.combo = combo
}

// SetNail is ignored on non-playable drops
func (d *Drop) SetNail(nail bool) {
	if !d.id.Playable() {
		return
	}
	d.nail = nail
}

// Clone returns a deep copy including modifier flags
func (d *Drop) Clone() *Drop {
	c := *d
	return &c
}

// Equal compares kind and all modifiers
func (d *Drop) Equal(o *Drop) bool {
	if d == nil || o == nil {
		return d == o
	}
	return *d == *o
}

// Factory produces a fresh drop for grid fills and skyfall refills
type Factory func() *Drop

// IntNSource is the subset of *rand.Rand the factories need, abstracted for tests
type IntNSource interface {
	IntN(n int) int
}

// RandomFactory draws uniformly from the playable palette
func RandomFactory(src IntNSource) Factory {
	if src == nil {
		return func() *Drop { return New(ID(rand.IntN(PlayableCount))) }
	}
	return func() *Drop { return New(ID(src.IntN(PlayableCount))) }
}

// ConstFactory always yields the given kind
func ConstFactory(id ID) Factory {
	return func() *Drop { return New(id) }
}

// EmptyFactory yields empty sentinels, used by clear mode and disabled skyfall
func EmptyFactory() *Drop {
	return NewEmpty()
}
