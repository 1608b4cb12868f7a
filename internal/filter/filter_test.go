package filter

import (
	"github.com/google/go-cmp/cmp"
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/keymap"
	"github.com/robinovitch61/shelf/internal/style"
	"strings"
	"testing"
)

func newFilter() Model {
	return New(keymap.DefaultKeyMap(), style.DefaultStyles())
}

func TestFilter_Empty(t *testing.T) {
	f := newFilter()
	if f.HasFilterText() {
		t.Error("expected no filter text")
	}
	if !strings.Contains(f.View(), "'/' or 'r' to filter") {
		t.Errorf("expected placeholder, got %q", f.View())
	}
	f.Focus()
	if !strings.Contains(f.View(), "type to filter") {
		t.Errorf("expected editing placeholder, got %q", f.View())
	}
}

func TestFilter_ApplyTo(t *testing.T) {
	f := newFilter()
	f.SetValue("jazz")
	base := collection.Query{Sort: collection.SortYear, Descending: true}
	got := f.ApplyTo(base)
	expected := collection.Query{Text: "jazz", Sort: collection.SortYear, Descending: true}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("query mismatch (-expected +actual):\n%s", diff)
	}

	f.SetIsRegex(true)
	got = f.ApplyTo(base)
	expected.IsRegex = true
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("query mismatch (-expected +actual):\n%s", diff)
	}
}

func TestFilter_Regex(t *testing.T) {
	f := newFilter()
	f.SetIsRegex(true)
	f.SetValue("^Blue")
	if !f.ValidRegex() {
		t.Error("expected valid regex")
	}
	if !strings.Contains(f.View(), "regex filter: ^Blue") {
		t.Errorf("expected regex prompt, got %q", f.View())
	}

	f.SetValue("(")
	if f.ValidRegex() {
		t.Error("expected invalid regex")
	}
	if !strings.Contains(f.View(), "invalid regex: (") {
		t.Errorf("expected invalid regex prompt, got %q", f.View())
	}

	f.SetIsRegex(false)
	if !f.ValidRegex() {
		t.Error("plain filters are always valid")
	}
}

func TestFilter_MatchCount(t *testing.T) {
	f := newFilter()
	f.SetValue("jazz")
	f.SetNumMatching(2)
	if !strings.Contains(f.View(), "filter: jazz (2 matches)") {
		t.Errorf("expected match count, got %q", f.View())
	}
	f.SetNumMatching(0)
	if !strings.Contains(f.View(), "(no matches)") {
		t.Errorf("expected no matches, got %q", f.View())
	}

	f.BlurAndClear()
	if f.HasFilterText() || strings.Contains(f.View(), "matches") {
		t.Errorf("expected cleared filter, got %q", f.View())
	}
}
