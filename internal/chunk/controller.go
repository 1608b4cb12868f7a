package chunk

import (
	"fmt"
	"time"

	"github.com/robinovitch61/shelf/internal/dev"
)

// initialChunkWidths is how many chunks are loaded when a new dataset arrives, before any scroll
const initialChunkWidths = 2

// Controller owns the chunk state for one displayed list. It is not safe for concurrent use: exactly one caller
// (the view showing the list) is expected to drive it
type Controller[T Item] struct {
	config Config
	now    func() time.Time

	// items is the sequence last passed to SetItems
	items []T

	chunkingEnabled bool
	fingerprint     string
	store           *Store[T]

	// loadedKeys only grows on scroll and preload. Only OptimizeMemory removes from it
	loadedKeys   map[string]bool
	visibleRange VisibleRange

	// chunksVersion and loadedVersion change whenever the chunk set or loadedKeys change, and key the cache below
	chunksVersion int
	loadedVersion int
	cache         visibleItemsCache[T]
}

type visibleItemsCache[T Item] struct {
	valid         bool
	chunksVersion int
	loadedVersion int
	items         []T
	offset        int
}

func NewController[T Item](config Config) *Controller[T] {
	return &Controller[T]{
		config:     config,
		now:        time.Now,
		store:      NewStore[T](),
		loadedKeys: make(map[string]bool),
	}
}

// SetClock replaces the clock used to stamp chunk access times
func (c *Controller[T]) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Controller[T]) Config() Config {
	return c.config
}

// SetItems hands the controller a new filtered and sorted sequence. If chunking is disabled for its size, the
// sequence passes straight through. Otherwise all chunks are rebuilt whenever the fingerprint changes, discarding
// every previously loaded key, and the first chunks are loaded. With an unchanged fingerprint the loaded keys are
// kept and every chunk is rebound to items, so a slice reordered in place is picked up as well
func (c *Controller[T]) SetItems(items []T) {
	if len(items) == 0 || !ShouldEnableChunking(len(items), c.config.Threshold) {
		if c.chunkingEnabled {
			dev.Debug(fmt.Sprintf("chunking disabled for %d items", len(items)))
		}
		c.reset()
		c.items = items
		return
	}

	fingerprint := CalculateFingerprint(items)
	if c.chunkingEnabled && fingerprint == c.fingerprint {
		// same dataset by fingerprint, keep chunks and loaded keys
		c.rebind(items)
		c.items = items
		return
	}

	c.items = items
	c.chunkingEnabled = true
	c.fingerprint = fingerprint
	c.rebuild()
}

func (c *Controller[T]) rebuild() {
	c.store.Clear()
	chunks := CreateChunks(c.items, c.config, c.fingerprint)
	for i := range chunks {
		c.store.Put(chunks[i])
	}
	c.chunksVersion++

	c.seedInitial()

	dev.Debug(fmt.Sprintf(
		"rebuilt %d chunks for %d items, fingerprint %s, %d loaded",
		len(chunks),
		len(c.items),
		c.fingerprint,
		len(c.loadedKeys),
	))
}

// seedInitial replaces the working set with the first chunks of the dataset, without any buffer
func (c *Controller[T]) seedInitial() {
	c.loadedKeys = make(map[string]bool)
	c.loadedVersion++

	c.visibleRange = VisibleRange{
		Start: 0,
		End:   min(initialChunkWidths*c.config.ChunkSize, len(c.items)) - 1,
	}
	unbuffered := c.config
	unbuffered.BufferSize = 0
	c.merge(GetRequiredChunks(c.visibleRange, unbuffered, len(c.items), c.fingerprint))
}

// ResetWorkingSet unloads every chunk and loads the first chunks again, as if the dataset had just arrived
func (c *Controller[T]) ResetWorkingSet() {
	if !c.chunkingEnabled {
		return
	}
	c.seedInitial()
}

// JumpTo replaces the working set with the chunks needed to show r plus the configured buffer. Use it instead of
// OnScroll when r is not next to the loaded chunks, so the loaded chunks stay contiguous
func (c *Controller[T]) JumpTo(r VisibleRange) {
	if !c.chunkingEnabled {
		return
	}
	c.loadedKeys = make(map[string]bool)
	c.loadedVersion++
	c.merge(GetRequiredChunks(r, c.config, len(c.items), c.fingerprint))
	c.visibleRange = r.normalized()
	dev.Debug(fmt.Sprintf("jumped to %s, %d loaded", r, len(c.loadedKeys)))
}

// rebind points every chunk at the same index range of items, a new sequence with an unchanged fingerprint
func (c *Controller[T]) rebind(items []T) {
	for _, ch := range c.store.Ordered() {
		ch.Items = items[ch.StartIndex:ch.EndIndex:ch.EndIndex]
		c.store.Put(ch)
	}
	c.chunksVersion++
}

// OnScroll loads every chunk needed to show r plus the configured buffer. Chunks that scroll out of view stay loaded
func (c *Controller[T]) OnScroll(r VisibleRange) {
	if !c.chunkingEnabled {
		return
	}
	keys := GetRequiredChunks(r, c.config, len(c.items), c.fingerprint)
	if added := c.merge(keys); added > 0 {
		dev.Debug(fmt.Sprintf("scroll to %s loaded %d chunks, %d total loaded", r, added, len(c.loadedKeys)))
	}
	c.visibleRange = r.normalized()
}

// PreloadChunks loads the chunks with the given keys regardless of the visible range. Keys that do not address a
// chunk of the current dataset are ignored
func (c *Controller[T]) PreloadChunks(keys []string) {
	if !c.chunkingEnabled {
		return
	}
	if added := c.merge(keys); added > 0 {
		dev.Debug(fmt.Sprintf("preloaded %d chunks, %d total loaded", added, len(c.loadedKeys)))
	}
}

// merge unions keys into loadedKeys, stamping each known chunk as accessed now. Returns the number of newly loaded
// chunks
func (c *Controller[T]) merge(keys []string) int {
	t := c.now()
	added := 0
	for _, key := range keys {
		if !c.store.Touch(key, t) {
			continue
		}
		if !c.loadedKeys[key] {
			c.loadedKeys[key] = true
			added++
		}
	}
	if added > 0 {
		c.loadedVersion++
	}
	return added
}

// VisibleItems returns the raw sequence when chunking is disabled. Otherwise it returns the items of every loaded
// chunk, in dataset order. The result is cached until the chunk set or the loaded keys change and must not be
// modified by the caller
func (c *Controller[T]) VisibleItems() []T {
	if !c.chunkingEnabled {
		return c.items
	}
	return c.visible().items
}

// LoadedOffset is the dataset index of VisibleItems()[0]
func (c *Controller[T]) LoadedOffset() int {
	if !c.chunkingEnabled {
		return 0
	}
	return c.visible().offset
}

func (c *Controller[T]) visible() visibleItemsCache[T] {
	if c.cache.valid && c.cache.chunksVersion == c.chunksVersion && c.cache.loadedVersion == c.loadedVersion {
		return c.cache
	}

	loaded := c.store.OrderedSubset(c.loadedKeys)
	size := 0
	for i := range loaded {
		size += len(loaded[i].Items)
	}
	items := make([]T, 0, size)
	for i := range loaded {
		items = append(items, loaded[i].Items...)
	}
	offset := 0
	if len(loaded) > 0 {
		offset = loaded[0].StartIndex
	}

	c.cache = visibleItemsCache[T]{
		valid:         true,
		chunksVersion: c.chunksVersion,
		loadedVersion: c.loadedVersion,
		items:         items,
		offset:        offset,
	}
	return c.cache
}

// OptimizeMemory shrinks the working set to Config.MaxChunksInMemory chunks using the windowed retention heuristic
// of the package level OptimizeMemory. Returns the keys that were unloaded
func (c *Controller[T]) OptimizeMemory() []string {
	if !c.chunkingEnabled || len(c.loadedKeys) <= c.config.MaxChunksInMemory {
		return nil
	}

	kept := OptimizeMemory(c.store.OrderedSubset(c.loadedKeys), c.config.MaxChunksInMemory)
	keep := make(map[string]bool, len(kept))
	for i := range kept {
		keep[kept[i].Key] = true
	}

	var evicted []string
	for _, ch := range c.store.OrderedSubset(c.loadedKeys) {
		if keep[ch.Key] {
			continue
		}
		evicted = append(evicted, ch.Key)
		delete(c.loadedKeys, ch.Key)
		c.store.Unload(ch.Key)
	}
	if len(evicted) > 0 {
		c.loadedVersion++
		dev.Debug(fmt.Sprintf("evicted %d chunks, %d loaded", len(evicted), len(c.loadedKeys)))
	}
	return evicted
}

// PrefetchKeys suggests the next chunk to preload once the end of r has passed LoadTriggerPercent of the contiguous
// loaded span containing it. It only suggests, loading is left to the caller via PreloadChunks
func (c *Controller[T]) PrefetchKeys(r VisibleRange) []string {
	if !c.chunkingEnabled {
		return nil
	}
	r = r.normalized()

	spanStart, spanEnd, found := -1, -1, false
	for _, ch := range c.store.OrderedSubset(c.loadedKeys) {
		if ch.StartIndex != spanEnd {
			// gap, start a new span
			if found {
				break
			}
			spanStart = ch.StartIndex
		}
		spanEnd = ch.EndIndex
		if ch.Contains(r.End) {
			found = true
		}
	}
	if !found || spanEnd >= len(c.items) {
		return nil
	}

	seen := r.End - spanStart + 1
	if seen*100 < (spanEnd-spanStart)*c.config.LoadTriggerPercent {
		return nil
	}
	next, ok := c.store.ChunkAt(spanEnd)
	if !ok || c.loadedKeys[next.Key] {
		return nil
	}
	return []string{next.Key}
}

// ClearChunks discards all state, leaving chunking disabled and no items
func (c *Controller[T]) ClearChunks() {
	c.reset()
}

func (c *Controller[T]) reset() {
	c.items = nil
	c.chunkingEnabled = false
	c.fingerprint = ""
	c.store.Clear()
	c.loadedKeys = make(map[string]bool)
	c.visibleRange = VisibleRange{}
	c.chunksVersion++
	c.loadedVersion++
	c.cache = visibleItemsCache[T]{}
}

func (c *Controller[T]) IsChunkingEnabled() bool {
	return c.chunkingEnabled
}

func (c *Controller[T]) TotalItems() int {
	return len(c.items)
}

// LoadedChunks is the size of the working set
func (c *Controller[T]) LoadedChunks() int {
	return len(c.loadedKeys)
}

func (c *Controller[T]) TotalChunks() int {
	return c.store.Len()
}

func (c *Controller[T]) Fingerprint() string {
	return c.fingerprint
}

func (c *Controller[T]) VisibleRange() VisibleRange {
	return c.visibleRange
}

// IsLoaded returns true if the chunk with the given key is in the working set
func (c *Controller[T]) IsLoaded(key string) bool {
	return c.loadedKeys[key]
}

// Chunks returns every chunk of the current dataset ordered by StartIndex
func (c *Controller[T]) Chunks() []Chunk[T] {
	return c.store.Ordered()
}
