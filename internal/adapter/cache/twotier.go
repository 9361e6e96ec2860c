package cache

import "sync"

// TwoTier is the content-addressed embedding cache: a bounded memory tier
// checked first, backed by a persistent DiskStore. Disk hits are promoted
// into memory; puts land in memory synchronously and reach disk through a
// single background writer, so a freshly written entry has a documented
// window in which it is not yet durable. Flush closes that window.
type TwoTier struct {
	memory *Memory
	disk   DiskStore
	writes chan writeRequest
	done   sync.WaitGroup
}

type writeRequest struct {
	key    string
	vector []float32
	flush  chan struct{}
}

// NewTwoTier combines a memory tier and a persistent tier and starts the
// write-back worker. Close must be called to stop it.
func NewTwoTier(memory *Memory, disk DiskStore) *TwoTier {
	c := &TwoTier{
		memory: memory,
		disk:   disk,
		writes: make(chan writeRequest, 64),
	}
	c.done.Add(1)
	go c.writer()
	return c
}

// writer serializes persistent-tier writes for this cache instance.
// Write failures degrade the entry to memory-only; it stays recomputable.
func (c *TwoTier) writer() {
	defer c.done.Done()
	for req := range c.writes {
		if req.flush != nil {
			close(req.flush)
			continue
		}
		_ = c.disk.Write(req.key, req.vector)
	}
}

// Get returns the cached vector for text, promoting disk hits to memory.
func (c *TwoTier) Get(text string) ([]float32, bool) {
	key := Key(text)

	if vec, ok := c.memory.Get(key); ok {
		return vec, true
	}
	if vec, ok := c.disk.Read(key); ok {
		c.memory.Put(key, vec)
		return vec, true
	}
	return nil, false
}

// Put stores the vector in memory and schedules the persistent write.
func (c *TwoTier) Put(text string, vector []float32) {
	key := Key(text)
	c.memory.Put(key, vector)
	c.writes <- writeRequest{key: key, vector: vector}
}

// Flush blocks until every write scheduled before the call has landed on
// the persistent tier.
func (c *TwoTier) Flush() {
	flushed := make(chan struct{})
	c.writes <- writeRequest{flush: flushed}
	<-flushed
}

// Clear empties both tiers. The persistent tier is recreated with zero
// entries; pending writes are flushed first so none land afterwards.
func (c *TwoTier) Clear() error {
	c.Flush()
	c.memory.Clear()
	return c.disk.Clear()
}

// Len returns the number of entries in the memory tier.
func (c *TwoTier) Len() int {
	return c.memory.Len()
}

// Close stops the write-back worker after draining pending writes and
// closes the persistent tier. The cache must not be used afterwards.
func (c *TwoTier) Close() error {
	close(c.writes)
	c.done.Wait()
	return c.disk.Close()
}
