package command

import (
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/message"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCollectionCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelf.yaml")
	content := "- id: a\n  title: Blue Train\n- id: b\n  title: Kind of Blue\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	msg := LoadCollectionCmd(path)()
	loaded, ok := msg.(message.ItemsLoadedMsg[collection.Item])
	if !ok {
		t.Fatalf("expected ItemsLoadedMsg, got %T", msg)
	}
	if len(loaded.Items) != 2 || loaded.Items[1].Title != "Kind of Blue" || loaded.Source != path {
		t.Errorf("unexpected load result %+v", loaded)
	}
}

func TestLoadCollectionCmd_Error(t *testing.T) {
	msg := LoadCollectionCmd(filepath.Join(t.TempDir(), "missing.json"))()
	if _, ok := msg.(message.ErrMsg); !ok {
		t.Fatalf("expected ErrMsg, got %T", msg)
	}
}

func TestGenerateCollectionCmd(t *testing.T) {
	msg := GenerateCollectionCmd(25, 1)()
	loaded, ok := msg.(message.ItemsLoadedMsg[collection.Item])
	if !ok {
		t.Fatalf("expected ItemsLoadedMsg, got %T", msg)
	}
	if len(loaded.Items) != 25 {
		t.Errorf("expected 25 items, got %d", len(loaded.Items))
	}
}
