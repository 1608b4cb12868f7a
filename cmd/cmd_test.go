package cmd

import (
	"github.com/google/go-cmp/cmp"
	"github.com/robinovitch61/shelf/internal/chunk"
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/constants"
	"github.com/spf13/cobra"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "shelf"}
	addFlags(c)
	if err := c.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestGetConfig_Defaults(t *testing.T) {
	config, err := getConfig(newTestCmd(t))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(chunk.DefaultConfig(), config.Chunk); diff != "" {
		t.Errorf("chunk config mismatch (-expected +actual):\n%s", diff)
	}
	if config.GenerateCount != constants.DefaultGenerateCount || config.File != "" {
		t.Errorf("expected generated items by default, got %+v", config)
	}
	if config.Query != (collection.Query{}) {
		t.Errorf("expected zero query, got %+v", config.Query)
	}
}

func TestGetConfig_Flags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "shelf.json")
	if err := os.WriteFile(file, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	config, err := getConfig(newTestCmd(t,
		"--chunk-size", "25",
		"--max-chunks", "8",
		"-f", file,
		"-s", "year",
		"-d",
		"--filter", "^Blue",
		"-r",
	))
	if err != nil {
		t.Fatal(err)
	}
	if config.Chunk.ChunkSize != 25 || config.Chunk.MaxChunksInMemory != 8 {
		t.Errorf("unexpected chunk config %+v", config.Chunk)
	}
	if config.File != file {
		t.Errorf("expected file %s, got %s", file, config.File)
	}
	expectedQuery := collection.Query{Text: "^Blue", IsRegex: true, Sort: collection.SortYear, Descending: true}
	if diff := cmp.Diff(expectedQuery, config.Query); diff != "" {
		t.Errorf("query mismatch (-expected +actual):\n%s", diff)
	}
}

func TestGetConfig_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{"zero chunk size", []string{"--chunk-size", "0"}, "chunk size must be positive"},
		{"trigger over 100", []string{"--load-trigger-percent", "150"}, "load trigger percent"},
		{"unknown sort", []string{"--sort", "color"}, "unknown sort field"},
		{"missing file", []string{"--file", "/does/not/exist.json"}, "collection file"},
		{"negative generate", []string{"--generate", "-1"}, "generate must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := getConfig(newTestCmd(t, tt.args...))
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}
