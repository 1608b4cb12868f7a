package util

import (
	"testing"
)

func TestJoinWithEqualSpacing(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		items    []string
		expected string
	}{
		{"no items", 10, nil, ""},
		{"zero width", 0, []string{"a"}, ""},
		{"single", 10, []string{"abc"}, "abc"},
		{"two", 10, []string{"ab", "cd"}, "ab      cd"},
		{"three uneven", 10, []string{"a", "b", "c"}, "a    b   c"},
		{"truncated", 5, []string{"abc", "def"}, "abcde"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			CmpStr(t, tt.expected, JoinWithEqualSpacing(tt.width, tt.items...))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s        string
		width    int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 2, ".."},
		{"hello", 0, ""},
		{"世界世界", 5, "世..."},
	}
	for _, tt := range tests {
		CmpStr(t, tt.expected, Truncate(tt.s, tt.width, "..."))
	}
}

func TestPadRight(t *testing.T) {
	CmpStr(t, "ab   ", PadRight("ab", 5))
	CmpStr(t, "abcdef", PadRight("abcdef", 3))
}
