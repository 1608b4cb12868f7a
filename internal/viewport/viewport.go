package viewport

import (
	"fmt"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/shelf/internal/constants"
	"github.com/robinovitch61/shelf/internal/dev"
	"github.com/robinovitch61/shelf/internal/util"
	"strings"
)

// Terminology:
// - allItems: the items currently handed to the viewport, one line each
// - item index: position in allItems
// - dataset index: position in the full list allItems is a window of, i.e. item index + itemOffset
// - visible: an item is visible if its line is within the viewport
//
// 100 item dataset, allItems holds dataset items 40 to 69, viewport height 4 with footer:
//                    item index   dataset index
// item 52            12           52
// item 53            13           53
// item 54            14           54
// 55% (55/100)

// Renderable is an item that can be shown as a single line
type Renderable interface {
	Render() string
	Equals(other interface{}) bool
}

// Model represents a viewport component
type Model[T Renderable] struct {
	// styles
	FooterStyle       lipgloss.Style
	SelectedItemStyle lipgloss.Style

	// keyMap is the keymap for the viewport
	keyMap KeyMap

	// header is the fixed header lines at the top of the viewport
	header []string

	// allItems is the list of items to be rendered in the viewport
	allItems []T

	// continuationIndicator is the string to use to indicate that a line has been truncated on the right
	continuationIndicator string

	// selectionEnabled is true if the viewport allows individual item selection
	selectionEnabled bool

	// footerEnabled is true if the viewport will show the footer when it overflows
	footerEnabled bool

	// selectedItemIdx is the index of allItems of the current selection (only relevant when selectionEnabled is true)
	selectedItemIdx int

	// width is the width of the entire viewport in terminal columns
	width int

	// height is the height of the entire viewport in lines
	height int

	// topItemIdx is the allItems index of the topmost visible viewport item
	topItemIdx int

	// itemOffset is the dataset index of allItems[0]
	itemOffset int

	// totalItems is the dataset length, or 0 if allItems is the whole dataset
	totalItems int
}

// New creates a new viewport model with reasonable defaults
func New[T Renderable](width, height int, keyMap KeyMap) (m Model[T]) {
	m.setWidthHeight(width, height)
	m.keyMap = keyMap
	m.continuationIndicator = constants.ContinuationIndicator
	m.footerEnabled = true
	return m
}

// Update processes messages and updates the model
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	dev.DebugUpdateMsg("Viewport", msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Up):
			if m.selectionEnabled {
				m.selectedItemIdxUp(1)
			} else {
				m.scrollUp(1)
			}

		case key.Matches(msg, m.keyMap.Down):
			if m.selectionEnabled {
				m.selectedItemIdxDown(1)
			} else {
				m.scrollDown(1)
			}

		case key.Matches(msg, m.keyMap.HalfPageUp):
			offset := max(1, m.getNumContentLines()/2)
			m.scrollUp(offset)
			if m.selectionEnabled {
				m.selectedItemIdxUp(offset)
			}

		case key.Matches(msg, m.keyMap.HalfPageDown):
			offset := max(1, m.getNumContentLines()/2)
			m.scrollDown(offset)
			if m.selectionEnabled {
				m.selectedItemIdxDown(offset)
			}

		case key.Matches(msg, m.keyMap.PageUp):
			offset := max(1, m.getNumContentLines())
			m.scrollUp(offset)
			if m.selectionEnabled {
				m.selectedItemIdxUp(offset)
			}

		case key.Matches(msg, m.keyMap.PageDown):
			offset := max(1, m.getNumContentLines())
			m.scrollDown(offset)
			if m.selectionEnabled {
				m.selectedItemIdxDown(offset)
			}

		case key.Matches(msg, m.keyMap.Top):
			if m.selectionEnabled {
				m.SetSelectedItemIdx(0)
			} else {
				m.topItemIdx = 0
			}

		case key.Matches(msg, m.keyMap.Bottom):
			if m.selectionEnabled {
				m.SetSelectedItemIdx(len(m.allItems) - 1)
			} else {
				m.topItemIdx = m.maxTopItemIdx()
			}
		}
	}

	return m, nil
}

// View renders the viewport
func (m Model[T]) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var lines []string
	for _, h := range m.getVisibleHeaderLines() {
		lines = append(lines, util.Truncate(h, m.width, m.continuationIndicator))
	}

	visible := m.getVisibleContent()
	for _, idx := range visible.itemIndexes {
		line := util.Truncate(m.allItems[idx].Render(), m.width, m.continuationIndicator)
		if m.selectionEnabled && idx == m.selectedItemIdx {
			line = m.SelectedItemStyle.Render(util.PadRight(line, m.width))
		}
		lines = append(lines, line)
	}

	if visible.showFooter {
		// pad so footer shows up at bottom
		for len(lines) < m.height-1 {
			lines = append(lines, "")
		}
		lines = append(lines, m.getTruncatedFooterLine(visible))
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(strings.Join(lines, "\n"))
}

// SetContent sets the items shown in the viewport, keeping the scroll position and selection where possible
func (m *Model[T]) SetContent(content []T) {
	m.SetContentShifted(content, 0)
}

// SetContentShifted sets the items and moves the scroll position and selection by shift items first. Use it when
// items were added to or removed from before the current position so the same items stay in view
func (m *Model[T]) SetContentShifted(content []T, shift int) {
	m.allItems = content
	m.topItemIdx += shift
	m.selectedItemIdx += shift
	m.safelySetTopItemIdx(m.topItemIdx)
	if m.selectionEnabled {
		m.selectedItemIdx = clampValMinMax(m.selectedItemIdx, 0, max(0, len(m.allItems)-1))
		m.scrollSoItemIdxInView(m.selectedItemIdx)
	}
}

// ResetPosition scrolls to the top and selects the first item
func (m *Model[T]) ResetPosition() {
	m.topItemIdx = 0
	m.selectedItemIdx = 0
}

// SetPosition tells the viewport where allItems sits in the full dataset, for the footer
func (m *Model[T]) SetPosition(itemOffset, totalItems int) {
	m.itemOffset = max(0, itemOffset)
	m.totalItems = max(0, totalItems)
}

// SetSelectionEnabled sets whether the viewport allows item selection
func (m *Model[T]) SetSelectionEnabled(selectionEnabled bool) {
	m.selectionEnabled = selectionEnabled
}

// SetFooterEnabled sets whether the viewport shows the footer when it overflows
func (m *Model[T]) SetFooterEnabled(footerEnabled bool) {
	m.footerEnabled = footerEnabled
}

// GetSelectionEnabled returns whether the viewport allows item selection
func (m Model[T]) GetSelectionEnabled() bool {
	return m.selectionEnabled
}

// SetWidth sets the viewport's width
func (m *Model[T]) SetWidth(width int) {
	m.setWidthHeight(width, m.height)
}

// SetHeight sets the viewport's height, including header and footer
func (m *Model[T]) SetHeight(height int) {
	m.setWidthHeight(m.width, height)
}

// SetSelectedItemIdx sets the selected item index. Automatically puts selection in view as necessary
func (m *Model[T]) SetSelectedItemIdx(selectedItemIdx int) {
	if !m.selectionEnabled || len(m.allItems) == 0 {
		return
	}
	m.selectedItemIdx = clampValMinMax(selectedItemIdx, 0, len(m.allItems)-1)
	m.scrollSoItemIdxInView(m.selectedItemIdx)
}

// GetSelectedItemIdx returns the currently selected item index
func (m Model[T]) GetSelectedItemIdx() int {
	if !m.selectionEnabled {
		return 0
	}
	return m.selectedItemIdx
}

// GetSelectedItem returns a pointer to the currently selected item
func (m Model[T]) GetSelectedItem() *T {
	if !m.selectionEnabled || m.selectedItemIdx >= len(m.allItems) || m.selectedItemIdx < 0 {
		return nil
	}
	return &m.allItems[m.selectedItemIdx]
}

// SetHeader sets the header, an unselectable set of lines at the top of the viewport
func (m *Model[T]) SetHeader(header []string) {
	m.header = header
}

// VisibleItemRange returns the item indexes of the top and bottom visible items. ok is false if nothing is visible
func (m Model[T]) VisibleItemRange() (start, end int, ok bool) {
	visible := m.getVisibleContent()
	if len(visible.itemIndexes) == 0 {
		return 0, 0, false
	}
	return visible.itemIndexes[0], visible.itemIndexes[len(visible.itemIndexes)-1], true
}

// ContentHeight is the number of item lines that fit between the header and footer
func (m Model[T]) ContentHeight() int {
	return m.getNumContentLines()
}

func (m Model[T]) KeyMap() KeyMap {
	return m.keyMap
}

// IsScrolledToBottom is true when the last item is visible
func (m Model[T]) IsScrolledToBottom() bool {
	return m.topItemIdx >= m.maxTopItemIdx()
}

func (m *Model[T]) scrollSoItemIdxInView(itemIdx int) {
	numContentLines := m.getNumContentLines()
	if len(m.allItems) == 0 || numContentLines == 0 {
		m.topItemIdx = 0
		return
	}
	if itemIdx < m.topItemIdx {
		m.safelySetTopItemIdx(itemIdx)
	} else if itemIdx >= m.topItemIdx+numContentLines {
		m.safelySetTopItemIdx(itemIdx - numContentLines + 1)
	}
}

func (m *Model[T]) setWidthHeight(width, height int) {
	m.width, m.height = max(0, width), max(0, height)
	if m.width == 0 || m.height == 0 {
		return
	}
	if m.selectionEnabled {
		m.scrollSoItemIdxInView(m.selectedItemIdx)
	}
	m.safelySetTopItemIdx(m.topItemIdx)
}

func (m *Model[T]) safelySetTopItemIdx(topItemIdx int) {
	m.topItemIdx = clampValMinMax(topItemIdx, 0, m.maxTopItemIdx())
}

func (m Model[T]) maxTopItemIdx() int {
	return max(0, len(m.allItems)-m.getNumContentLines())
}

// getNumContentLines returns the number of lines between the header and footer
func (m Model[T]) getNumContentLines() int {
	numLinesAfterHeader := m.getNumLinesAfterHeader()
	if m.shouldShowFooter(numLinesAfterHeader) {
		numLinesAfterHeader--
	}
	return max(0, numLinesAfterHeader)
}

func (m Model[T]) getNumLinesAfterHeader() int {
	return max(0, m.height-len(m.getVisibleHeaderLines()))
}

func (m *Model[T]) selectedItemIdxDown(n int) {
	m.SetSelectedItemIdx(m.selectedItemIdx + n)
}

func (m *Model[T]) selectedItemIdxUp(n int) {
	m.SetSelectedItemIdx(m.selectedItemIdx - n)
}

func (m *Model[T]) scrollDown(n int) {
	m.safelySetTopItemIdx(m.topItemIdx + n)
}

func (m *Model[T]) scrollUp(n int) {
	m.safelySetTopItemIdx(m.topItemIdx - n)
}

// getVisibleHeaderLines returns the lines of header that are visible in the viewport
// header lines will take precedence over content and footer if there is not enough vertical height
func (m Model[T]) getVisibleHeaderLines() []string {
	if m.height == 0 {
		return nil
	}
	return safeSliceUpToIdx(m.header, m.height)
}

func (m Model[T]) shouldShowFooter(numLinesAfterHeader int) bool {
	if !m.footerEnabled || numLinesAfterHeader == 0 || len(m.allItems) == 0 {
		return false
	}
	if m.topItemIdx > 0 || m.total() > len(m.allItems) {
		// if scrolled at all or more items exist than are loaded, should be showing footer
		return true
	}
	// if seeing all the content on screen, show footer
	// if one blank line at bottom, still show footer
	// if two blank lines at bottom, do not show footer
	return len(m.allItems)+1 >= numLinesAfterHeader
}

type visibleContentResult struct {
	// itemIndexes is the index in allItems of each visible line
	itemIndexes []int
	// showFooter is true if the footer should be shown
	showFooter bool
}

func (m Model[T]) getVisibleContent() visibleContentResult {
	if m.width == 0 || len(m.allItems) == 0 {
		return visibleContentResult{}
	}
	numLinesAfterHeader := m.getNumLinesAfterHeader()
	showFooter := m.shouldShowFooter(numLinesAfterHeader)
	numContentLines := numLinesAfterHeader
	if showFooter {
		numContentLines--
	}

	var itemIndexes []int
	for i := clampValMinMax(m.topItemIdx, 0, len(m.allItems)-1); i < len(m.allItems) && len(itemIndexes) < numContentLines; i++ {
		itemIndexes = append(itemIndexes, i)
	}
	return visibleContentResult{itemIndexes: itemIndexes, showFooter: showFooter}
}

func (m Model[T]) total() int {
	if m.totalItems == 0 {
		return len(m.allItems)
	}
	return m.totalItems
}

func (m Model[T]) getTruncatedFooterLine(visible visibleContentResult) string {
	if len(visible.itemIndexes) == 0 {
		return ""
	}
	// 0th item is 1st
	numerator := m.itemOffset + m.selectedItemIdx + 1
	if !m.selectionEnabled {
		// numerator is dataset index of bottom visible line
		numerator = m.itemOffset + visible.itemIndexes[len(visible.itemIndexes)-1] + 1
	}
	denominator := m.total()

	footerString := fmt.Sprintf("%d%% (%d/%d)", percent(numerator, denominator), numerator, denominator)
	return m.FooterStyle.Render(util.Truncate(footerString, m.width, m.continuationIndicator))
}
