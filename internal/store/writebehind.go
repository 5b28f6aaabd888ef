package store

import (
	"sync"
	"time"

	"beatline-cli/internal/events"
)

// Saver is a debounced write-behind wrapper around Store.Save: every Set
// updates the in-memory state immediately and schedules a coalesced durable
// save. Callers must Flush before disposal or pending changes are lost.
//
// There is exactly one logical writer per workspace, so no merge logic is
// needed; the last snapshot wins.
type Saver struct {
	store    Store
	debounce time.Duration

	// Events, when set, receives a DocumentSaved event after each durable
	// save. Saves land asynchronously, so interactive callers subscribe to
	// learn when their last edit actually hit disk.
	Events *events.Bus

	mu      sync.Mutex
	timer   *time.Timer
	pending *DB
	running bool

	// lastErr surfaces the most recent background save failure to the next
	// Flush call; saves themselves are fire-and-forget.
	lastErr error
}

func NewSaver(s Store, debounce time.Duration) *Saver {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Saver{store: s, debounce: debounce}
}

// Set records db as the latest state and (re)schedules a durable save.
func (w *Saver) Set(db *DB) {
	if w == nil || db == nil {
		return
	}
	w.mu.Lock()
	w.pending = db
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.onTimer)
		w.mu.Unlock()
		return
	}
	w.timer.Reset(w.debounce)
	w.mu.Unlock()
}

func (w *Saver) onTimer() {
	w.mu.Lock()
	if w.running {
		// Another save is in-flight; come back for the pending state.
		if w.timer != nil {
			w.timer.Reset(w.debounce)
		}
		w.mu.Unlock()
		return
	}
	db := w.pending
	if db == nil {
		w.mu.Unlock()
		return
	}
	w.pending = nil
	w.running = true
	w.mu.Unlock()

	err := w.store.Save(db)
	if err == nil {
		w.publishSaved(db)
	}

	w.mu.Lock()
	w.running = false
	if err != nil {
		w.lastErr = err
	}
	if w.pending != nil && w.timer != nil {
		w.timer.Reset(w.debounce)
	}
	w.mu.Unlock()
}

// Flush cancels the timer and saves any pending state synchronously. It
// returns the first error from either the flush itself or an earlier
// background save.
func (w *Saver) Flush() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	db := w.pending
	w.pending = nil
	err := w.lastErr
	w.lastErr = nil
	w.mu.Unlock()

	if db != nil {
		serr := w.store.Save(db)
		if serr == nil {
			w.publishSaved(db)
		} else if err == nil {
			err = serr
		}
	}
	return err
}

func (w *Saver) publishSaved(db *DB) {
	if w.Events == nil {
		return
	}
	w.Events.Publish(events.Event{Kind: events.DocumentSaved, DocumentID: db.CurrentDocumentID})
}
