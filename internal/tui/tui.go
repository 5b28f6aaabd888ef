// Package tui is the interactive outline editor: flattened rows with
// computed numbering prefixes, collapse twisties, structural editing keys,
// and a glamour-rendered markdown preview. Edits go through the immutable
// tree operations and are persisted via a debounced write-behind saver.
package tui

import (
	"beatline-cli/internal/events"
	"beatline-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store, db *store.DB) error {
	bus := events.NewBus()
	m := newAppModel(s, db)
	m.saver.Events = bus
	defer m.shutdown()

	p := tea.NewProgram(m, tea.WithAltScreen())

	// The saver publishes from its timer goroutine; forward through the
	// program so the status update lands inside the normal message loop.
	cancel := bus.Subscribe(func(e events.Event) {
		if e.Kind == events.DocumentSaved {
			p.Send(savedMsg{})
		}
	})
	defer cancel()

	_, err := p.Run()
	return err
}
