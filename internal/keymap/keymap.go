package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/robinovitch61/shelf/internal/viewport"
)

type KeyMap struct {
	Clear       key.Binding
	Copy        key.Binding
	Enter       key.Binding
	Filter      key.Binding
	FilterRegex key.Binding
	Help        key.Binding
	Quit        key.Binding
	Reverse     key.Binding
	Save        key.Binding
	Sort        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard filter"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy selected id"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply filter"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "edit filter"),
		),
		FilterRegex: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "regex filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "show/hide help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "reverse order"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save loaded items to file"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "cycle sort field"),
		),
	}
}

// DescriptiveKeyBindings are shown in the help overlay
func DescriptiveKeyBindings(km KeyMap) []key.Binding {
	vkm := viewport.DefaultKeyMap()
	return []key.Binding{
		km.Filter,
		km.FilterRegex,
		km.Enter,
		km.Clear,
		km.Sort,
		km.Reverse,
		vkm.Up,
		vkm.Down,
		vkm.HalfPageUp,
		vkm.HalfPageDown,
		vkm.PageUp,
		vkm.PageDown,
		vkm.Top,
		vkm.Bottom,
		km.Copy,
		km.Save,
		km.Help,
		km.Quit,
	}
}
