package internal

// NOTE: Searching for `// #` will walk you through the main flow of the application

import (
	"fmt"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/robinovitch61/shelf/internal/chunk"
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/command"
	"github.com/robinovitch61/shelf/internal/constants"
	"github.com/robinovitch61/shelf/internal/dev"
	"github.com/robinovitch61/shelf/internal/fileio"
	"github.com/robinovitch61/shelf/internal/filter"
	"github.com/robinovitch61/shelf/internal/help"
	"github.com/robinovitch61/shelf/internal/keymap"
	"github.com/robinovitch61/shelf/internal/message"
	"github.com/robinovitch61/shelf/internal/style"
	"github.com/robinovitch61/shelf/internal/toast"
	"github.com/robinovitch61/shelf/internal/util"
	"github.com/robinovitch61/shelf/internal/viewport"
	"strings"
)

type Model struct {
	config        Config
	keyMap        keymap.KeyMap
	styles        style.Styles
	width, height int
	initialized   bool
	loaded        bool
	err           error
	source        string
	allItems      []collection.Item
	query         collection.Query
	controller    *chunk.Controller[collection.Item]
	viewport      viewport.Model[collection.Item]
	filter        filter.Model
	toast         toast.Model
	helpText      string
	topBarHeight  int // assumed constant
}

func InitialModel(c Config) Model {
	return Model{
		config:       c,
		keyMap:       c.KeyMap,
		styles:       style.DefaultStyles(),
		query:        c.Query,
		controller:   chunk.NewController[collection.Item](c.Chunk),
		topBarHeight: 1,
	}
}

// #1: On startup, the collection is read from disk or generated in the background
func (m Model) Init() tea.Cmd {
	if m.config.File != "" {
		return command.LoadCollectionCmd(m.config.File)
	}
	return command.GenerateCollectionCmd(m.config.GenerateCount, constants.GenerateSeed)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	dev.DebugUpdateMsg("App", msg)
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	// #4: The user presses a key. Movement keys scroll the list, which may load or evict chunks
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case message.ErrMsg:
		m.err = msg.Err
		return m, nil

	// WindowSizeMsg arrives once on startup, then again every time the window is resized
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.initialized {
			m = initializedModel(m)
		}
		m = m.handleWindowSizeMsg(msg.Width, msg.Height)
		return m, nil

	// #2: The raw collection arrives. It is filtered and sorted, then handed to the chunk controller
	case message.ItemsLoadedMsg[collection.Item]:
		m.allItems = msg.Items
		m.source = msg.Source
		m.loaded = true
		if m.initialized {
			m = m.applyQuery()
		}
		m, cmd = m.withToast(fmt.Sprintf("Loaded %d items from %s", len(msg.Items), msg.Source))
		return m, cmd

	case fileio.SaveCompleteMsg:
		toastMsg := msg.SuccessMessage
		if msg.ErrMessage != "" {
			toastMsg = fmt.Sprintf("Error saving: %s", msg.ErrMessage)
		}
		m, cmd = m.withToast(toastMsg)
		return m, cmd

	case command.ContentCopiedToClipboardMsg:
		toastMsg := fmt.Sprintf("Copied %s to clipboard", msg.Content)
		if msg.Err != nil {
			toastMsg = fmt.Sprintf("Error copying to clipboard: %s", msg.Err.Error())
		}
		m, cmd = m.withToast(toastMsg)
		return m, cmd

	case message.ToastTimeoutMsg:
		m.toast, cmd = m.toast.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.err != nil {
		errString := wrap.String(m.err.Error(), m.width)
		return lipgloss.JoinVertical(
			lipgloss.Left,
			"Error",
			"",
			"ctrl+c to quit",
			"",
			errString,
		)
	}
	if !m.initialized {
		return ""
	}
	topBar := m.topBar()
	if m.helpText != "" {
		centeredHelp := lipgloss.Place(m.width, m.height-m.topBarHeight, lipgloss.Center, lipgloss.Center, m.helpText)
		return lipgloss.JoinVertical(lipgloss.Left, topBar, centeredHelp)
	}
	if !m.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, topBar, m.styles.Placeholder.Render("Loading..."))
	}
	viewLines := strings.Split(topBar, "\n")
	viewLines = append(viewLines, lipgloss.NewStyle().MaxWidth(m.width).Render(m.filter.View()))
	viewLines = append(viewLines, strings.Split(m.viewport.View(), "\n")...)
	if toastHeight := m.toast.ViewHeight(); m.toast.Visible && toastHeight > 0 && toastHeight < len(viewLines) {
		viewLines = viewLines[:len(viewLines)-toastHeight]
		viewLines = append(viewLines, strings.Split(m.toast.View(), "\n")...)
	}
	return strings.Join(viewLines, "\n")
}

func (m Model) topBar() string {
	padding := "   "

	left := fmt.Sprintf(
		"shelf %s%s%d/%d Shown/Total",
		m.config.Version,
		padding,
		m.controller.TotalItems(),
		len(m.allItems),
	)
	if m.controller.IsChunkingEnabled() {
		left += padding + m.styles.ChunkingOn.Render(
			fmt.Sprintf("%d/%d Chunks Loaded", m.controller.LoadedChunks(), m.controller.TotalChunks()),
		)
	}
	if m.query.Sort != collection.SortNone || m.query.Descending {
		order := "asc"
		if m.query.Descending {
			order = "desc"
		}
		left += padding + fmt.Sprintf("Sort: %s %s", m.query.Sort, order)
	}

	right := fmt.Sprintf("%s to quit / %s for help", m.keyMap.Quit.Help().Key, m.keyMap.Help.Help().Key)
	toJoin := []string{left}
	if lipgloss.Width(left)+len(padding)+len(right) < m.width {
		toJoin = append(toJoin, right)
	} else {
		toJoin = append(toJoin, strings.Repeat(" ", len(right)))
	}
	return util.JoinWithEqualSpacing(m.width, toJoin...)
}

func (m Model) handleWindowSizeMsg(width, height int) Model {
	// top bar, then filter line, then list
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(max(0, height-m.topBarHeight-1))
	return m.syncChunks()
}

// tea.KeyMsg handling
// ---

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	dev.Debug(fmt.Sprintf("App keyMsg: %v", msg))
	defer dev.Debug("App keyMsg complete")

	var cmd tea.Cmd

	// #6: User exits the app
	if key.Matches(msg, m.keyMap.Quit) && !m.filter.Focused() {
		return m, tea.Quit
	}
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// ignore key messages other than exit if an error is present or nothing is loaded yet
	if m.err != nil || !m.initialized || !m.loaded {
		return m, nil
	}

	// if help text visible, pressing any key will dismiss it
	if m.helpText != "" {
		m.helpText = ""
		return m, nil
	}

	// #5: While the filter is focused it takes all input and the query is reapplied as the filter changes
	if m.filter.Focused() {
		return m.handleFilterKeyMsg(msg)
	}

	// adjust for buffered input from held keys, e.g "kk" or "jjj"
	msg.Runes = normalizeRunes(msg)

	switch {
	case key.Matches(msg, m.keyMap.Filter):
		m.filter.SetIsRegex(false)
		m.filter.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.FilterRegex):
		m.filter.SetIsRegex(true)
		m.filter.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Clear):
		if m.filter.HasFilterText() {
			m.filter.BlurAndClear()
			m = m.applyQuery()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Sort):
		m.query.Sort = m.query.Sort.Next()
		m = m.applyQuery()
		return m.withToast(fmt.Sprintf("Sorted by %s", m.query.Sort))

	case key.Matches(msg, m.keyMap.Reverse):
		m.query.Descending = !m.query.Descending
		m = m.applyQuery()
		return m, nil

	case key.Matches(msg, m.keyMap.Copy):
		if selected := m.viewport.GetSelectedItem(); selected != nil {
			return m, command.CopyContentToClipboardCmd(selected.ID())
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Save):
		return m, fileio.GetSaveCommand("", m.loadedLines())

	case key.Matches(msg, m.keyMap.Help):
		m.helpText = help.MakeHelp(m.keyMap, m.styles.KeyHelp)
		return m, nil

	// top and bottom mean the whole collection, not just the loaded chunks
	case key.Matches(msg, m.viewport.KeyMap().Top, m.viewport.KeyMap().Bottom):
		m = m.jumpToEnd(key.Matches(msg, m.viewport.KeyMap().Bottom))
		m.viewport, cmd = m.viewport.Update(msg)
		return m.syncChunks(), cmd
	}

	// #3: Everything else goes to the list. Afterwards the chunks around the new visible range are loaded
	m.viewport, cmd = m.viewport.Update(msg)
	m = m.syncChunks()
	return m, cmd
}

func (m Model) handleFilterKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.filter.KeyMap.Forward):
		m.filter.Blur()
		return m, nil

	case key.Matches(msg, m.filter.KeyMap.Back):
		m.filter.BlurAndClear()
		m = m.applyQuery()
		return m, nil
	}

	prevValue := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != prevValue {
		m = m.applyQuery()
	}
	return m, cmd
}

// chunk handling
// ---

// applyQuery filters and sorts the raw collection and hands the result to the controller. The list starts over at the
// top since positions in the previous sequence mean nothing in the new one
func (m Model) applyQuery() Model {
	m.query = m.filter.ApplyTo(m.query)
	items := m.query.Apply(m.allItems)
	m.controller.SetItems(items)
	if m.controller.LoadedOffset() != 0 {
		// unchanged fingerprint keeps the scrolled working set
		m.controller.ResetWorkingSet()
	}
	if m.filter.HasFilterText() {
		m.filter.SetNumMatching(len(items))
	}
	dev.Debug(fmt.Sprintf("applied query %+v: %d items, chunking %v", m.query, len(items), m.controller.IsChunkingEnabled()))

	m.viewport.ResetPosition()
	m.setViewportContent(m.controller.LoadedOffset())
	return m.syncChunks()
}

// syncChunks tells the controller what is on screen, lets it load what is needed next and trims the working set.
// The viewport content is then replaced, keeping the same items in view. This repeats until the viewport is full,
// since the visible range can only cover items that are already loaded
func (m Model) syncChunks() Model {
	if !m.controller.IsChunkingEnabled() {
		m.setViewportContent(0)
		return m
	}
	for i := 0; i <= m.controller.TotalChunks(); i++ {
		start, end, ok := m.viewport.VisibleItemRange()
		if !ok {
			return m
		}

		oldOffset := m.controller.LoadedOffset()
		oldLoaded := m.controller.LoadedChunks()
		r := chunk.VisibleRange{Start: oldOffset + start, End: oldOffset + end}
		m.controller.OnScroll(r)
		if keys := m.controller.PrefetchKeys(r); len(keys) > 0 {
			dev.Debug(fmt.Sprintf("preloading %v", keys))
			m.controller.PreloadChunks(keys)
		}
		if m.controller.LoadedChunks() > m.controller.Config().MaxChunksInMemory {
			m.controller.OptimizeMemory()
		}
		m.setViewportContent(oldOffset)

		if m.viewportFull() {
			break
		}
		if m.controller.LoadedChunks() == oldLoaded && m.controller.LoadedOffset() == oldOffset {
			break
		}
	}
	return m
}

// viewportFull is true if every item line of the viewport shows an item or the last item is loaded
func (m Model) viewportFull() bool {
	loaded := len(m.controller.VisibleItems())
	if m.controller.LoadedOffset()+loaded >= m.controller.TotalItems() {
		return true
	}
	start, end, ok := m.viewport.VisibleItemRange()
	return ok && end-start+1 >= m.viewport.ContentHeight()
}

// jumpToEnd replaces the working set with the chunks around the first or last item, so the viewport can move there
// without leaving a gap in the loaded chunks
func (m Model) jumpToEnd(bottom bool) Model {
	if !m.controller.IsChunkingEnabled() {
		return m
	}
	total := m.controller.TotalItems()
	offset := m.controller.LoadedOffset()
	if (!bottom && offset == 0) || (bottom && offset+len(m.controller.VisibleItems()) >= total) {
		return m
	}

	n := max(1, m.viewport.ContentHeight())
	r := chunk.VisibleRange{Start: 0, End: min(n, total) - 1}
	if bottom {
		r = chunk.VisibleRange{Start: max(0, total-n), End: total - 1}
	}
	m.controller.JumpTo(r)
	m.viewport.SetContent(m.controller.VisibleItems())
	m.viewport.SetPosition(m.controller.LoadedOffset(), total)
	return m
}

// setViewportContent replaces the viewport content with the loaded items. Items loaded or evicted before the previous
// offset shift the viewport so it keeps showing the same items
func (m *Model) setViewportContent(oldOffset int) {
	newOffset := m.controller.LoadedOffset()
	m.viewport.SetContentShifted(m.controller.VisibleItems(), oldOffset-newOffset)
	m.viewport.SetPosition(newOffset, m.controller.TotalItems())
}

func (m Model) loadedLines() []string {
	items := m.controller.VisibleItems()
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Render())
	}
	return lines
}

func (m Model) withToast(text string) (Model, tea.Cmd) {
	m.toast = toast.New(text, m.styles.Toast)
	return m, m.toast.TimeoutCmd()
}

// normalizeRunes adjusts for buffered key presses
// when updates are slow, bubble tea will buffer key presses, so KeyMsg's arrive as e.g. "jjj" or "kk" if the user is
// holding those keys down. This doesn't seem to happen for up/down keys
func normalizeRunes(msg tea.KeyMsg) []rune {
	if len(msg.Runes) > 1 {
		if strings.Trim(msg.String(), "j") == "" {
			return []rune{'j'}
		}
		if strings.Trim(msg.String(), "k") == "" {
			return []rune{'k'}
		}
	}
	return msg.Runes
}
