package filter

import (
	"fmt"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/dev"
	"github.com/robinovitch61/shelf/internal/keymap"
	"github.com/robinovitch61/shelf/internal/style"
	"regexp"
)

// Model is the single line filter input above the list. Its value becomes the text of a collection.Query
type Model struct {
	KeyMap      filterKeyMap
	isRegex     bool
	regexp      *regexp.Regexp
	textinput   textinput.Model
	numMatching int
	hasCount    bool
	styles      style.Styles
}

func New(km keymap.KeyMap, styles style.Styles) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorHide)

	fkm := filterKeyMap{
		Forward:     km.Enter,
		Back:        km.Clear,
		Filter:      km.Filter,
		FilterRegex: km.FilterRegex,
	}

	return Model{
		KeyMap:    fkm,
		textinput: ti,
		styles:    styles,
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Filter", msg)
	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)

	// update regexp based on filter text
	m.updateRegexp()

	return m, cmd
}

func (m Model) View() string {
	m.textinput.PromptStyle = m.styles.FilterPrefix
	m.textinput.TextStyle = lipgloss.NewStyle()
	m.textinput.Cursor.Style = lipgloss.NewStyle()
	m.textinput.Cursor.TextStyle = lipgloss.NewStyle()

	suffix := m.suffix()
	switch {
	case m.textinput.Focused() && m.Value() != "":
		// editing existing filter
		m.textinput.Prompt = m.prompt()
	case m.textinput.Focused():
		// editing but no filter value yet
		m.textinput.Prompt = ""
		suffix = ""
		m.textinput.TextStyle = m.styles.Placeholder
		if m.isRegex {
			m.textinput.SetValue("type to regex filter")
		} else {
			m.textinput.SetValue("type to filter")
		}
	case m.Value() != "":
		// filter applied, not editing
		m.textinput.Prompt = m.prompt()
		m.textinput.PromptStyle = m.styles.FilterActive
		m.textinput.TextStyle = m.styles.FilterActive
	default:
		// no filter, not editing
		m.textinput.Prompt = ""
		suffix = ""
		m.textinput.TextStyle = m.styles.Placeholder
		m.textinput.SetValue(fmt.Sprintf("'%s' or '%s' to filter", m.KeyMap.Filter.Help().Key, m.KeyMap.FilterRegex.Help().Key))
	}
	m.textinput.SetValue(m.textinput.Value() + suffix)
	return m.textinput.View()
}

// ApplyTo returns q with the current filter text and mode. An invalid regex is matched as plain text
func (m Model) ApplyTo(q collection.Query) collection.Query {
	q.Text = m.Value()
	q.IsRegex = m.isRegex
	return q
}

func (m Model) Value() string {
	return m.textinput.Value()
}

func (m Model) HasFilterText() bool {
	return m.Value() != ""
}

func (m Model) Focused() bool {
	return m.textinput.Focused()
}

func (m Model) IsRegex() bool {
	return m.isRegex
}

// ValidRegex is false when filtering by a regex that does not compile
func (m Model) ValidRegex() bool {
	return !m.isRegex || m.regexp != nil
}

func (m *Model) SetIsRegex(isRegex bool) {
	m.isRegex = isRegex
	m.updateRegexp()
}

func (m *Model) SetValue(value string) {
	m.textinput.SetValue(value)
	m.updateRegexp()
}

// SetNumMatching sets the match count shown after the filter text
func (m *Model) SetNumMatching(n int) {
	m.numMatching = n
	m.hasCount = true
}

func (m *Model) Focus() {
	m.textinput.Cursor.SetMode(cursor.CursorBlink)
	m.textinput.Focus()
}

func (m *Model) Blur() {
	// move cursor to end of word so right padding shows up even if cursor not at end when blurred
	m.textinput.SetCursor(len(m.textinput.Value()))

	m.textinput.Cursor.SetMode(cursor.CursorHide)
	m.textinput.Blur()
}

func (m *Model) BlurAndClear() {
	m.Blur()
	m.hasCount = false
	m.numMatching = 0
	m.textinput.SetValue("")
	m.updateRegexp()
}

func (m *Model) updateRegexp() {
	m.regexp = nil
	if m.isRegex {
		if regex, err := regexp.Compile(m.textinput.Value()); err == nil {
			m.regexp = regex
		}
	}
}

func (m Model) prompt() string {
	if !m.isRegex {
		return "filter: "
	}
	if m.regexp == nil {
		return "invalid regex: "
	}
	return "regex filter: "
}

func (m Model) suffix() string {
	if !m.hasCount {
		return ""
	}
	switch m.numMatching {
	case 0:
		return " (no matches)"
	case 1:
		return " (1 match)"
	default:
		return fmt.Sprintf(" (%d matches)", m.numMatching)
	}
}
