package board

// Updates is a partial state change; nil fields are left untouched
type Updates struct {
	Mode    *Mode
	Size    *int
	Skyfall *bool
}

// ApplyUpdates applies every set field that differs from current state
// The change listener fires once if anything changed
func (b *Board) ApplyUpdates(u Updates) bool {
	b.batching = true
	defer func() { b.batching = false }()

	changed := false
	if u.Mode != nil && *u.Mode != b.mode {
		b.SetMode(*u.Mode)
		changed = true
	}
	if u.Size != nil && *u.Size != b.start.Size() {
		b.Resize(*u.Size)
		changed = true
	}
	if u.Skyfall != nil && *u.Skyfall != b.skyfall {
		b.SetSkyfall(*u.Skyfall)
		changed = true
	}
	b.batching = false

	if changed {
		b.notify()
	}
	return changed
}
