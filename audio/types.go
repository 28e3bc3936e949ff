package audio

// SoundType represents different sound cues
type SoundType int

const (
	SoundSwap  SoundType = iota // One drop swap while dragging
	SoundCombo                  // Combo group starts fading, pitched by rank
	SoundFall                   // Cascade round lands
	soundTypeCount
)

var soundNames = [...]string{
	SoundSwap:  "swap",
	SoundCombo: "combo",
	SoundFall:  "fall",
}

func (st SoundType) String() string {
	if st >= 0 && st < soundTypeCount {
		return soundNames[st]
	}
	return "unknown"
}

// maxComboRank bounds the chime ladder; higher ranks reuse the top pitch
const maxComboRank = 12
