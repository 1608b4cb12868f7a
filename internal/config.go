package internal

import (
	"github.com/robinovitch61/shelf/internal/chunk"
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/keymap"
)

type Config struct {
	KeyMap keymap.KeyMap
	// Chunk controls how the list is partitioned once it is large enough
	Chunk chunk.Config
	// File is the collection to browse. If empty, GenerateCount demo items are generated
	File          string
	GenerateCount int
	// Query is the initial filter and sort order
	Query   collection.Query
	Version string
}
