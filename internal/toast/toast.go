package toast

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/shelf/internal/constants"
	"github.com/robinovitch61/shelf/internal/dev"
	"github.com/robinovitch61/shelf/internal/message"
	"sync"
	"time"
)

var (
	lastID int
	idMtx  sync.Mutex
)

// Model is a one line message shown at the bottom of the screen until it times out
type Model struct {
	ID           int
	message      string
	Visible      bool
	messageStyle lipgloss.Style
}

func New(message string, messageStyle lipgloss.Style) Model {
	return Model{
		ID:           nextID(),
		message:      message,
		Visible:      true,
		messageStyle: messageStyle,
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Toast", msg)
	switch msg := msg.(type) {
	case message.ToastTimeoutMsg:
		if msg.ID > 0 && msg.ID != m.ID {
			return m, nil
		}
		m.Visible = false
	}
	return m, nil
}

func (m Model) View() string {
	if m.Visible {
		return m.messageStyle.Render(m.message)
	}
	return ""
}

func (m Model) ViewHeight() int {
	if !m.Visible {
		return 0
	}
	return lipgloss.Height(m.View())
}

// TimeoutCmd hides the toast after constants.ToastDuration
func (m Model) TimeoutCmd() tea.Cmd {
	id := m.ID
	return tea.Tick(constants.ToastDuration, func(time.Time) tea.Msg {
		return message.ToastTimeoutMsg{ID: id}
	})
}

func nextID() int {
	idMtx.Lock()
	defer idMtx.Unlock()
	lastID++
	return lastID
}
