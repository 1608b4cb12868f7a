package command

import (
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/dev"
	"github.com/robinovitch61/shelf/internal/message"
)

// LoadCollectionCmd reads the collection at path off the UI goroutine
func LoadCollectionCmd(path string) tea.Cmd {
	return func() tea.Msg {
		dev.Debug(fmt.Sprintf("cmd running to load collection from %s", path))
		items, err := collection.Load(path)
		if err != nil {
			return message.ErrMsg{Err: err}
		}
		return message.ItemsLoadedMsg[collection.Item]{Items: items, Source: path}
	}
}

// GenerateCollectionCmd builds a reproducible demo collection of n items
func GenerateCollectionCmd(n int, seed int64) tea.Cmd {
	return func() tea.Msg {
		dev.Debug(fmt.Sprintf("cmd running to generate %d items", n))
		return message.ItemsLoadedMsg[collection.Item]{
			Items:  collection.Generate(n, seed),
			Source: fmt.Sprintf("%d generated items", n),
		}
	}
}
