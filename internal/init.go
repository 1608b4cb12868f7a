package internal

import (
	"fmt"
	"github.com/robinovitch61/shelf/internal/collection"
	"github.com/robinovitch61/shelf/internal/dev"
	"github.com/robinovitch61/shelf/internal/filter"
	"github.com/robinovitch61/shelf/internal/viewport"
)

// initializedModel builds the list and filter once the terminal size is known
func initializedModel(m Model) Model {
	dev.Debug("initializing")
	defer dev.Debug("done initializing")
	dev.Debug("------------")

	m.filter = filter.New(m.keyMap, m.styles)
	if m.query.Text != "" {
		m.filter.SetIsRegex(m.query.IsRegex)
		m.filter.SetValue(m.query.Text)
	}

	m.viewport = viewport.New[collection.Item](m.width, m.height, viewport.DefaultKeyMap())
	m.viewport.SetSelectionEnabled(true)
	m.viewport.SelectedItemStyle = m.styles.SelectedItem
	m.viewport.FooterStyle = m.styles.Footer

	m.initialized = true
	if m.loaded {
		m = m.applyQuery()
	}
	dev.Debug(fmt.Sprintf("chunk config: %+v", m.controller.Config()))
	return m
}
