package chunk

import (
	"errors"
	"fmt"
	"github.com/robinovitch61/shelf/internal/constants"
	"time"
)

// Terminology:
// - item: one record of the caller's already filtered and sorted sequence, identified only by its ID
// - chunk: a contiguous, fixed-size slice of that sequence, addressed by a key built from its index range and the
//   fingerprint of the sequence
// - loaded: a chunk whose items are part of the flat list handed to the renderer
// - working set: the chunks currently loaded
//
// 120 items, chunk size 10:
//   chunk_0_10_<fp>     items [0, 10)
//   chunk_10_20_<fp>    items [10, 20)
//   ...
//   chunk_110_120_<fp>  items [110, 120)

// Item is the only thing the engine needs to know about a record
type Item interface {
	ID() string
}

// Chunk is a range-addressed slice of the item sequence
type Chunk[T Item] struct {
	Key string

	// StartIndex is the index of the first item in the chunk, always a multiple of the chunk size
	StartIndex int

	// EndIndex is exclusive, clamped to the sequence length for the final chunk
	EndIndex int

	// Items shares its backing array with the sequence the chunk was created from
	Items []T

	IsLoaded     bool
	LastAccessed time.Time
}

// Len returns the number of items in the chunk
func (c Chunk[T]) Len() int {
	return c.EndIndex - c.StartIndex
}

// Contains returns true if the dataset index idx falls inside the chunk
func (c Chunk[T]) Contains(idx int) bool {
	return c.StartIndex <= idx && idx < c.EndIndex
}

// VisibleRange is the interval of item indexes currently rendered by the caller. Both ends are inclusive
type VisibleRange struct {
	Start int
	End   int
}

func (r VisibleRange) normalized() VisibleRange {
	if r.End < r.Start {
		return VisibleRange{Start: r.End, End: r.Start}
	}
	return r
}

func (r VisibleRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// Config is fixed for the lifetime of a Controller
type Config struct {
	// ChunkSize is the number of items per chunk
	ChunkSize int

	// BufferSize is the number of extra items required on each side of the visible range
	BufferSize int

	// Threshold is the minimum item count before chunking activates
	Threshold int

	// LoadTriggerPercent is how far through the loaded span the visible end must be before a prefetch is suggested.
	// Advisory only, see Controller.PrefetchKeys
	LoadTriggerPercent int

	// MaxChunksInMemory bounds the working set when Controller.OptimizeMemory is called
	MaxChunksInMemory int
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:          constants.DefaultChunkSize,
		BufferSize:         constants.DefaultBufferSize,
		Threshold:          constants.DefaultThreshold,
		LoadTriggerPercent: constants.DefaultLoadTriggerPercent,
		MaxChunksInMemory:  constants.DefaultMaxChunksInMemory,
	}
}

// Validate reports malformed configuration. The engine itself never rejects a config, it degrades to empty results
func (c Config) Validate() error {
	var errs []error
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize))
	}
	if c.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("buffer size must be non-negative, got %d", c.BufferSize))
	}
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must be non-negative, got %d", c.Threshold))
	}
	if c.LoadTriggerPercent < 0 || c.LoadTriggerPercent > 100 {
		errs = append(errs, fmt.Errorf("load trigger percent must be between 0 and 100, got %d", c.LoadTriggerPercent))
	}
	if c.MaxChunksInMemory <= 0 {
		errs = append(errs, fmt.Errorf("max chunks in memory must be positive, got %d", c.MaxChunksInMemory))
	}
	return errors.Join(errs...)
}
