package collection

import (
	"github.com/google/go-cmp/cmp"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func titles(items []Item) []string {
	var res []string
	for _, item := range items {
		res = append(res, item.Title)
	}
	return res
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestItem_Render(t *testing.T) {
	tests := []struct {
		item     Item
		expected string
	}{
		{Item{Title: "Blue Train"}, "Blue Train"},
		{Item{Title: "Blue Train", Year: 1957}, "Blue Train (1957)"},
		{Item{Title: "Blue Train", Year: 1957, Category: "vinyl", Tags: []string{"jazz", "mono"}}, "Blue Train (1957) [vinyl] #jazz #mono"},
	}
	for _, tt := range tests {
		if r := tt.item.Render(); r != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, r)
		}
	}
}

func TestItem_Equals(t *testing.T) {
	a := Item{ItemID: "1", Title: "a"}
	if !a.Equals(Item{ItemID: "1", Title: "renamed"}) {
		t.Error("expected items with same id to be equal")
	}
	if a.Equals(Item{ItemID: "2", Title: "a"}) {
		t.Error("expected items with different ids to differ")
	}
	if a.Equals("1") {
		t.Error("expected non-item to differ")
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "c.json", `[
		{"id": "a", "title": "Blue Train", "category": "vinyl", "year": 1957},
		{"title": "Watchmen", "category": "comics", "tags": ["signed"]}
	]`)
	items, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Blue Train", "Watchmen"}, titles(items)); diff != "" {
		t.Errorf("titles differ (-expected +actual):\n%s", diff)
	}
	if items[0].ID() != "a" {
		t.Errorf("expected id a, got %q", items[0].ID())
	}
	if items[1].ID() == "" {
		t.Error("expected generated id for item without one")
	}
}

func TestLoad_YAMLObject(t *testing.T) {
	path := writeFile(t, "c.yml", `
items:
  - id: a
    title: Blue Train
    year: 1957
  - id: b
    title: Dune
    category: books
`)
	items, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Item{
		{ItemID: "a", Title: "Blue Train", Year: 1957},
		{ItemID: "b", Title: "Dune", Category: "books"},
	}
	if diff := cmp.Diff(expected, items); diff != "" {
		t.Errorf("items differ (-expected +actual):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil || !strings.Contains(err.Error(), "reading collection") {
		t.Errorf("expected read error, got %v", err)
	}
	if _, err := Load(writeFile(t, "c.txt", "")); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported extension error, got %v", err)
	}
	if _, err := Load(writeFile(t, "c.json", "{not json")); err == nil || !strings.Contains(err.Error(), "parsing collection") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	first := Generate(100, 7)
	second := Generate(100, 7)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("expected deterministic generation (-first +second):\n%s", diff)
	}
	seen := make(map[string]bool)
	for _, item := range first {
		if seen[item.ID()] {
			t.Fatalf("duplicate id %s", item.ID())
		}
		seen[item.ID()] = true
	}
	if Generate(1, 8)[0].ID() == first[0].ID() {
		t.Error("expected different seeds to produce different ids")
	}
}

func TestQuery_Apply(t *testing.T) {
	items := []Item{
		{ItemID: "1", Title: "delta", Category: "vinyl", Year: 1990},
		{ItemID: "2", Title: "Alpha", Category: "books", Year: 1970},
		{ItemID: "3", Title: "charlie", Category: "vinyl", Year: 1980},
		{ItemID: "4", Title: "bravo", Category: "comics", Year: 1980},
	}
	tests := []struct {
		name     string
		query    Query
		expected []string
	}{
		{"zero", Query{}, []string{"delta", "Alpha", "charlie", "bravo"}},
		{"substring", Query{Text: "vinyl"}, []string{"delta", "charlie"}},
		{"regex", Query{Text: "^(Alpha|bravo) ", IsRegex: true}, []string{"Alpha", "bravo"}},
		{"invalid regex falls back", Query{Text: "(1980", IsRegex: true}, []string{"charlie", "bravo"}},
		{"title", Query{Sort: SortTitle}, []string{"Alpha", "bravo", "charlie", "delta"}},
		{"title desc", Query{Sort: SortTitle, Descending: true}, []string{"delta", "charlie", "bravo", "Alpha"}},
		{"year stable", Query{Sort: SortYear}, []string{"Alpha", "charlie", "bravo", "delta"}},
		{"category", Query{Sort: SortCategory}, []string{"Alpha", "bravo", "delta", "charlie"}},
		{"reverse only", Query{Descending: true}, []string{"bravo", "charlie", "Alpha", "delta"}},
		{"filter and sort", Query{Text: "vinyl", Sort: SortYear}, []string{"charlie", "delta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, titles(tt.query.Apply(items))); diff != "" {
				t.Errorf("titles differ (-expected +actual):\n%s", diff)
			}
		})
	}
	if items[0].Title != "delta" {
		t.Error("expected input to be left unsorted")
	}
}

func TestQuery_ZeroKeepsIdentity(t *testing.T) {
	items := Generate(5, 1)
	res := Query{}.Apply(items)
	if &res[0] != &items[0] {
		t.Error("expected zero query to return the input slice")
	}
}

func TestSortField(t *testing.T) {
	for _, s := range []string{"none", "title", "YEAR", " category "} {
		if _, err := ParseSortField(s); err != nil {
			t.Errorf("expected %q to parse, got %v", s, err)
		}
	}
	if f, err := ParseSortField(""); err != nil || f != SortNone {
		t.Errorf("expected empty to parse as none, got %v %v", f, err)
	}
	if _, err := ParseSortField("price"); err == nil {
		t.Error("expected error for unknown sort field")
	}
	f := SortNone
	for i := 0; i < 4; i++ {
		f = f.Next()
	}
	if f != SortNone {
		t.Errorf("expected Next to cycle back to none, got %s", f)
	}
	if SortYear.String() != "year" {
		t.Errorf("unexpected name %q", SortYear.String())
	}
}
