package chunk

// GetRequiredChunks returns the keys of the chunks that must be loaded to show visibleRange plus BufferSize items on
// either side. Bounds are aligned to multiples of the chunk size counted from index 0, so small shifts of the
// visible range map to the same keys. Pure: it never touches stored state
func GetRequiredChunks(visibleRange VisibleRange, config Config, totalItems int, fingerprint string) []string {
	if config.ChunkSize <= 0 || totalItems <= 0 {
		return nil
	}
	r := visibleRange.normalized()

	// expanded bounds, both inclusive, clamped to [0, totalItems)
	first := clampValMinMax(r.Start-config.BufferSize, 0, totalItems-1)
	last := clampValMinMax(r.End+config.BufferSize, 0, totalItems-1)

	alignedStart := (first / config.ChunkSize) * config.ChunkSize
	alignedEnd := min((last/config.ChunkSize+1)*config.ChunkSize, totalItems)

	keys := make([]string, 0, numChunks(alignedEnd-alignedStart, config.ChunkSize))
	for i := alignedStart; i < alignedEnd; i += config.ChunkSize {
		keys = append(keys, GenerateChunkKey(i, min(i+config.ChunkSize, totalItems), fingerprint))
	}
	return keys
}

func clampValMinMax(v, minimum, maximum int) int {
	return max(minimum, min(maximum, v))
}
