package audio

import "sync"

// soundCache stores pre-generated unity-gain float buffers
type soundCache struct {
	mu     sync.RWMutex
	store  [soundTypeCount]floatBuffer
	ready  [soundTypeCount]bool
	combos [maxComboRank + 1]floatBuffer
}

func newSoundCache() *soundCache {
	return &soundCache{}
}

// get returns cached buffer or generates on demand
func (c *soundCache) get(st SoundType) floatBuffer {
	if st < 0 || st >= soundTypeCount {
		return nil
	}

	c.mu.RLock()
	if c.ready[st] {
		buf := c.store[st]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	// Generate and cache
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.ready[st] {
		return c.store[st]
	}

	buf := generateSound(st)
	c.store[st] = buf
	c.ready[st] = true
	return buf
}

// combo returns the chime for rank, clamped to the ladder
func (c *soundCache) combo(rank int) floatBuffer {
	rank = min(max(rank, 1), maxComboRank)

	c.mu.RLock()
	buf := c.combos[rank]
	c.mu.RUnlock()
	if buf != nil {
		return buf
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.combos[rank] == nil {
		c.combos[rank] = generateComboSound(rank)
	}
	return c.combos[rank]
}

// preload generates frequently used sounds at init
func (c *soundCache) preload() {
	c.get(SoundSwap) // Most frequent
	c.combo(1)
}
