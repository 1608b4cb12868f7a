package chunk

import (
	"fmt"
	"github.com/google/go-cmp/cmp"
	"strconv"
	"strings"
	"testing"
)

type testItem string

func (t testItem) ID() string {
	return string(t)
}

func makeItems(n int) []testItem {
	items := make([]testItem, n)
	for i := range items {
		items[i] = testItem(fmt.Sprintf("item%d", i))
	}
	return items
}

// parseKey returns the start and end encoded in a key built with a fingerprint that contains no underscores
func parseKey(t *testing.T, key string) (int, int) {
	t.Helper()
	parts := strings.Split(key, "_")
	if len(parts) != 4 || parts[0] != "chunk" {
		t.Fatalf("unexpected key format %q", key)
	}
	start, err := strconv.Atoi(parts[1])
	if err != nil {
		t.Fatalf("bad start in key %q: %v", key, err)
	}
	end, err := strconv.Atoi(parts[2])
	if err != nil {
		t.Fatalf("bad end in key %q: %v", key, err)
	}
	return start, end
}

func TestCreateChunks_Completeness(t *testing.T) {
	for _, numItems := range []int{0, 1, 9, 10, 11, 57, 120} {
		for _, chunkSize := range []int{1, 3, 10, 50, 200} {
			items := makeItems(numItems)
			config := DefaultConfig()
			config.ChunkSize = chunkSize
			chunks := CreateChunks(items, config, "fp")

			var rebuilt []testItem
			for i, c := range chunks {
				if c.StartIndex%chunkSize != 0 {
					t.Errorf("n=%d size=%d: chunk %d start %d not aligned", numItems, chunkSize, i, c.StartIndex)
				}
				if c.EndIndex != min(c.StartIndex+chunkSize, numItems) {
					t.Errorf("n=%d size=%d: chunk %d has end %d", numItems, chunkSize, i, c.EndIndex)
				}
				if i > 0 && chunks[i-1].EndIndex != c.StartIndex {
					t.Errorf("n=%d size=%d: chunk %d not contiguous with previous", numItems, chunkSize, i)
				}
				if c.Len() != len(c.Items) {
					t.Errorf("n=%d size=%d: chunk %d len %d but %d items", numItems, chunkSize, i, c.Len(), len(c.Items))
				}
				if c.IsLoaded {
					t.Errorf("new chunk %s should not be loaded", c.Key)
				}
				rebuilt = append(rebuilt, c.Items...)
			}
			if numItems == 0 {
				if len(chunks) != 0 {
					t.Errorf("expected no chunks for no items, got %d", len(chunks))
				}
				continue
			}
			if diff := cmp.Diff(items, rebuilt); diff != "" {
				t.Errorf("n=%d size=%d: concatenated chunks differ (-expected +actual):\n%s", numItems, chunkSize, diff)
			}
		}
	}
}

func TestCreateChunks_120Items(t *testing.T) {
	items := makeItems(120)
	fp := CalculateFingerprint(items)
	chunks := CreateChunks(items, Config{ChunkSize: 10, BufferSize: 4, Threshold: 50}, fp)
	if len(chunks) != 12 {
		t.Fatalf("expected 12 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		expectedKey := fmt.Sprintf("chunk_%d_%d_%s", i*10, i*10+10, fp)
		if c.Key != expectedKey {
			t.Errorf("chunk %d: expected key %q, got %q", i, expectedKey, c.Key)
		}
		if len(c.Items) != 10 {
			t.Errorf("chunk %d: expected 10 items, got %d", i, len(c.Items))
		}
	}
	if chunks[0].Key != "chunk_0_10_item0_item119_120" {
		t.Errorf("unexpected first key %q", chunks[0].Key)
	}
	if chunks[11].Key != "chunk_110_120_item0_item119_120" {
		t.Errorf("unexpected last key %q", chunks[11].Key)
	}
}

func TestCreateChunks_FinalChunkClamped(t *testing.T) {
	chunks := CreateChunks(makeItems(25), Config{ChunkSize: 10}, "fp")
	var keys []string
	for _, c := range chunks {
		keys = append(keys, c.Key)
	}
	expected := []string{"chunk_0_10_fp", "chunk_10_20_fp", "chunk_20_25_fp"}
	if diff := cmp.Diff(expected, keys); diff != "" {
		t.Errorf("keys differ (-expected +actual):\n%s", diff)
	}
}

func TestCreateChunks_ItemsDoNotOverlapOnAppend(t *testing.T) {
	items := makeItems(20)
	chunks := CreateChunks(items, Config{ChunkSize: 10}, "fp")
	_ = append(chunks[0].Items, "intruder")
	if items[10] != "item10" {
		t.Errorf("appending to first chunk overwrote the second chunk: %q", items[10])
	}
}

func TestCreateChunks_NonPositiveChunkSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if chunks := CreateChunks(makeItems(10), Config{ChunkSize: size}, "fp"); chunks != nil {
			t.Errorf("chunk size %d: expected nil, got %d chunks", size, len(chunks))
		}
	}
}

func TestGenerateChunkKey(t *testing.T) {
	if k := GenerateChunkKey(40, 50, "a_b_3"); k != "chunk_40_50_a_b_3" {
		t.Errorf("unexpected key %q", k)
	}
	if GenerateChunkKey(0, 10, "fp") != GenerateChunkKey(0, 10, "fp") {
		t.Error("expected identical arguments to produce identical keys")
	}
	if GenerateChunkKey(0, 10, "fp") == GenerateChunkKey(0, 10, "other") {
		t.Error("expected different fingerprints to produce different keys")
	}
}

func TestCalculateFingerprint(t *testing.T) {
	tests := []struct {
		name     string
		items    []testItem
		expected string
	}{
		{"nil", nil, "empty"},
		{"empty", []testItem{}, "empty"},
		{"single", []testItem{"a"}, "a"},
		{"two", []testItem{"a", "b"}, "a_b_2"},
		{"many", []testItem{"a", "x", "y", "b"}, "a_b_4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if fp := CalculateFingerprint(tt.items); fp != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, fp)
			}
		})
	}
}

func TestCalculateFingerprint_Sensitivity(t *testing.T) {
	base := []testItem{"a", "b", "c", "d"}
	fp := CalculateFingerprint(base)

	if CalculateFingerprint([]testItem{"a", "z", "z", "d"}) != fp {
		t.Error("fingerprint should ignore items between first and last")
	}
	changed := map[string][]testItem{
		"first":  {"z", "b", "c", "d"},
		"last":   {"a", "b", "c", "z"},
		"length": {"a", "b", "c", "x", "d"},
	}
	for what, items := range changed {
		if CalculateFingerprint(items) == fp {
			t.Errorf("fingerprint should change when %s changes", what)
		}
	}
}

func TestShouldEnableChunking(t *testing.T) {
	if ShouldEnableChunking(49, 50) {
		t.Error("49 items should not enable chunking at threshold 50")
	}
	if !ShouldEnableChunking(50, 50) {
		t.Error("50 items should enable chunking at threshold 50")
	}
	for _, threshold := range []int{0, 1, 50, 100} {
		prev := false
		for n := 0; n < 200; n++ {
			curr := ShouldEnableChunking(n, threshold)
			if prev && !curr {
				t.Fatalf("threshold %d: not monotonic at n=%d", threshold, n)
			}
			prev = curr
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
	bad := Config{ChunkSize: 0, BufferSize: -1, Threshold: -1, LoadTriggerPercent: 101, MaxChunksInMemory: 0}
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
	for _, s := range []string{"chunk size", "buffer size", "threshold", "load trigger percent", "max chunks"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("expected error to mention %q, got %q", s, err.Error())
		}
	}
}
