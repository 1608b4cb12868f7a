package chunk

import (
	"slices"
	"sort"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// OptimizeMemory keeps at most maxChunksInMemory chunks, chosen as one contiguous window (by StartIndex) around the
// most recently accessed chunk.
//
// This is a windowed retention heuristic, not an LRU. It assumes a single contiguous hot region, which is what
// linear scrolling produces. Arbitrary access patterns (jumping around the list) will evict chunks an LRU would
// keep. Replacing it with an LRU changes which chunks survive a scroll and needs the scroll locality assumption
// re-checked against the viewport first.
//
// When the most recent access is in the back half of the list and the trailing window still contains it, the
// trailing window is kept, biasing retention toward the bottom of the list. Otherwise the window is centered on the
// most recent access and clamped to the list boundaries.
func OptimizeMemory[T Item](chunks []Chunk[T], maxChunksInMemory int) []Chunk[T] {
	if len(chunks) <= maxChunksInMemory {
		return chunks
	}
	if maxChunksInMemory <= 0 {
		return nil
	}

	sorted := slices.Clone(chunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartIndex < sorted[j].StartIndex
	})

	n := len(sorted)
	recentIdx := mostRecentlyAccessedIdx(sorted)
	trailingStart := n - maxChunksInMemory

	if recentIdx >= n/2 && recentIdx >= trailingStart {
		return sorted[trailingStart:]
	}

	start := max(0, recentIdx-maxChunksInMemory/2)
	end := min(n, start+maxChunksInMemory)
	if end-start < maxChunksInMemory {
		if start == 0 {
			// hit the leading boundary
			return sorted[:min(n, maxChunksInMemory)]
		}
		// hit the trailing boundary
		return sorted[trailingStart:]
	}
	return sorted[start:end]
}

// mostRecentlyAccessedIdx returns the first index with the latest LastAccessed, so ties go to the lowest StartIndex
func mostRecentlyAccessedIdx[T Item](sorted []Chunk[T]) int {
	recentIdx := 0
	for i := range sorted {
		if sorted[i].LastAccessed.After(sorted[recentIdx].LastAccessed) {
			recentIdx = i
		}
	}
	return recentIdx
}

// Store maps chunk keys to chunks and keeps them ordered by StartIndex
type Store[T Item] struct {
	byKey   map[string]*Chunk[T]
	byStart *redblacktree.Tree
}

func NewStore[T Item]() *Store[T] {
	return &Store[T]{
		byKey:   make(map[string]*Chunk[T]),
		byStart: redblacktree.NewWithIntComparator(),
	}
}

// Put adds or replaces a chunk. A chunk with the same StartIndex but a different key replaces the old one
func (s *Store[T]) Put(c Chunk[T]) {
	if existing, found := s.byStart.Get(c.StartIndex); found {
		delete(s.byKey, existing.(string))
	}
	s.byKey[c.Key] = &c
	s.byStart.Put(c.StartIndex, c.Key)
}

func (s *Store[T]) Get(key string) (Chunk[T], bool) {
	c, ok := s.byKey[key]
	if !ok {
		return Chunk[T]{}, false
	}
	return *c, true
}

func (s *Store[T]) Has(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

// Touch marks the chunk loaded and records t as its access time. Returns false if the key is unknown
func (s *Store[T]) Touch(key string, t time.Time) bool {
	c, ok := s.byKey[key]
	if !ok {
		return false
	}
	c.IsLoaded = true
	c.LastAccessed = t
	return true
}

// Unload marks the chunk as no longer part of the working set. Its items stay addressable by key
func (s *Store[T]) Unload(key string) {
	if c, ok := s.byKey[key]; ok {
		c.IsLoaded = false
	}
}

func (s *Store[T]) Len() int {
	return len(s.byKey)
}

// Ordered returns every chunk ordered by StartIndex
func (s *Store[T]) Ordered() []Chunk[T] {
	return s.OrderedSubset(nil)
}

// OrderedSubset returns the chunks whose keys are in keys, ordered by StartIndex. A nil set means all chunks
func (s *Store[T]) OrderedSubset(keys map[string]bool) []Chunk[T] {
	var res []Chunk[T]
	it := s.byStart.Iterator()
	for it.Next() {
		key := it.Value().(string)
		if keys != nil && !keys[key] {
			continue
		}
		res = append(res, *s.byKey[key])
	}
	return res
}

// ChunkAt returns the chunk containing the dataset index idx
func (s *Store[T]) ChunkAt(idx int) (Chunk[T], bool) {
	node, found := s.byStart.Floor(idx)
	if !found {
		return Chunk[T]{}, false
	}
	c := s.byKey[node.Value.(string)]
	if !c.Contains(idx) {
		return Chunk[T]{}, false
	}
	return *c, true
}

func (s *Store[T]) Clear() {
	s.byKey = make(map[string]*Chunk[T])
	s.byStart.Clear()
}
