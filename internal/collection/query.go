package collection

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type SortField int

const (
	SortNone SortField = iota
	SortTitle
	SortYear
	SortCategory
)

var sortFieldNames = map[SortField]string{
	SortNone:     "none",
	SortTitle:    "title",
	SortYear:     "year",
	SortCategory: "category",
}

func (s SortField) String() string {
	if name, ok := sortFieldNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortField(%d)", int(s))
}

// Next cycles through the sort fields
func (s SortField) Next() SortField {
	return (s + 1) % SortField(len(sortFieldNames))
}

func ParseSortField(s string) (SortField, error) {
	for field, name := range sortFieldNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return field, nil
		}
	}
	if s == "" {
		return SortNone, nil
	}
	return SortNone, fmt.Errorf("unknown sort field %q, expected one of none, title, year, category", s)
}

// Query turns the raw collection into the filtered, ordered sequence shown in the list
type Query struct {
	Text       string
	IsRegex    bool
	Sort       SortField
	Descending bool
}

func (q Query) IsZero() bool {
	return q.Text == "" && q.Sort == SortNone && !q.Descending
}

// Apply filters then sorts items. The zero Query returns items itself, so an unchanged query keeps the dataset
// identity. Otherwise a new slice is returned and items is not modified
func (q Query) Apply(items []Item) []Item {
	if q.IsZero() {
		return items
	}

	matches := q.matcher()
	res := make([]Item, 0, len(items))
	for i := range items {
		if matches(items[i]) {
			res = append(res, items[i])
		}
	}

	less := q.less()
	if less == nil {
		if q.Descending {
			for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
				res[i], res[j] = res[j], res[i]
			}
		}
		return res
	}
	sort.SliceStable(res, func(i, j int) bool {
		if q.Descending {
			return less(res[j], res[i])
		}
		return less(res[i], res[j])
	})
	return res
}

// Matches returns true if the rendered item contains the query text, or matches it as a regex. An invalid regex
// falls back to plain matching
func (q Query) Matches(item Item) bool {
	return q.matcher()(item)
}

func (q Query) matcher() func(Item) bool {
	if q.Text == "" {
		return func(Item) bool { return true }
	}
	if q.IsRegex {
		if re, err := regexp.Compile(q.Text); err == nil {
			return func(item Item) bool { return re.MatchString(item.Render()) }
		}
	}
	return func(item Item) bool { return strings.Contains(item.Render(), q.Text) }
}

func (q Query) less() func(a, b Item) bool {
	switch q.Sort {
	case SortTitle:
		return func(a, b Item) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortYear:
		return func(a, b Item) bool { return a.Year < b.Year }
	case SortCategory:
		return func(a, b Item) bool { return a.Category < b.Category }
	default:
		return nil
	}
}
