package collection

import (
	"fmt"
	"strings"

	"github.com/robinovitch61/shelf/internal/chunk"
)

// Item is one record of a user's collection
type Item struct {
	ItemID   string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Category string   `json:"category" yaml:"category"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func (i Item) ID() string {
	return i.ItemID
}

// Render returns the single line shown for the item in a list, e.g. `Blue Train (1957) [vinyl] #jazz #mono`
func (i Item) Render() string {
	var b strings.Builder
	b.WriteString(i.Title)
	if i.Year > 0 {
		b.WriteString(fmt.Sprintf(" (%d)", i.Year))
	}
	if i.Category != "" {
		b.WriteString(" [" + i.Category + "]")
	}
	for _, tag := range i.Tags {
		b.WriteString(" #" + tag)
	}
	return b.String()
}

func (i Item) Equals(other interface{}) bool {
	otherItem, ok := other.(Item)
	if !ok {
		return false
	}
	return i.ItemID == otherItem.ItemID
}

// assert Item can be chunked
var _ chunk.Item = Item{}
