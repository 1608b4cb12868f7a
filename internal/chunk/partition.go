package chunk

import (
	"fmt"
)

// CreateChunks walks items in strides of the chunk size. Concatenating the returned chunks' items in order
// reproduces items exactly. Chunks are returned unloaded with a zero access time
func CreateChunks[T Item](items []T, config Config, fingerprint string) []Chunk[T] {
	if config.ChunkSize <= 0 || len(items) == 0 {
		return nil
	}

	chunks := make([]Chunk[T], 0, numChunks(len(items), config.ChunkSize))
	for start := 0; start < len(items); start += config.ChunkSize {
		end := min(start+config.ChunkSize, len(items))
		chunks = append(chunks, Chunk[T]{
			Key:        GenerateChunkKey(start, end, fingerprint),
			StartIndex: start,
			EndIndex:   end,
			// cap the capacity so appending to a chunk can never write into its neighbour
			Items: items[start:end:end],
		})
	}
	return chunks
}

// GenerateChunkKey is the sole addressing mechanism for chunks
func GenerateChunkKey(start, end int, fingerprint string) string {
	return fmt.Sprintf("chunk_%d_%d_%s", start, end, fingerprint)
}

// CalculateFingerprint derives a cheap identity for the sequence from its first id, last id and length. Two
// sequences that agree on all three are treated as the same dataset without comparing the items in between
func CalculateFingerprint[T Item](items []T) string {
	switch len(items) {
	case 0:
		return "empty"
	case 1:
		return items[0].ID()
	default:
		return fmt.Sprintf("%s_%s_%d", items[0].ID(), items[len(items)-1].ID(), len(items))
	}
}

// ShouldEnableChunking is false for short lists, which are cheaper to render directly
func ShouldEnableChunking(count, threshold int) bool {
	return count >= threshold
}

func numChunks(total, chunkSize int) int {
	if chunkSize <= 0 || total <= 0 {
		return 0
	}
	return (total + chunkSize - 1) / chunkSize
}
