// Package events is a small in-process observer for tree and document
// changes. Subscribers own their registration: Subscribe returns a cancel
// func and the caller must invoke it when done listening.
package events

import "sync"

type Kind string

const (
	TreeChanged   Kind = "tree-changed"
	DocumentSaved Kind = "document-saved"
	ImportApplied Kind = "import-applied"
)

// Event describes one change. BlockID is empty for document-level events.
type Event struct {
	Kind       Kind
	DocumentID string
	BlockID    string
}

type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: map[int]func(Event){}}
}

// Subscribe registers fn for every published event. The returned cancel
// func removes the registration and is safe to call more than once.
func (b *Bus) Subscribe(fn func(Event)) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers e to every current subscriber, synchronously, in
// unspecified order. Handlers run outside the bus lock so a handler may
// subscribe or cancel during delivery.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}
