package store

import (
	"testing"
	"time"

	"beatline-cli/internal/events"
)

func TestSaverFlushWritesPending(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	w := NewSaver(s, time.Hour) // debounce never fires during the test

	db := seedDB()
	w.Set(db)

	// Nothing durable yet.
	early, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(early.Documents) != 0 {
		t.Fatal("expected no save before debounce or flush")
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load after flush: %v", err)
	}
	if len(got.Documents) != 2 {
		t.Fatalf("expected flushed state; got %d documents", len(got.Documents))
	}
}

func TestSaverDebouncedSave(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	w := NewSaver(s, 20*time.Millisecond)
	w.Set(seedDB())

	deadline := time.Now().Add(5 * time.Second)
	for {
		got, err := s.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(got.Documents) == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expected debounced save to land")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSaverCoalescesToLatest(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	w := NewSaver(s, time.Hour)

	first := seedDB()
	w.Set(first)

	second := seedDB()
	second.Documents = second.Documents[:1]
	w.Set(second)

	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Documents) != 1 {
		t.Fatalf("expected only the latest snapshot saved; got %d documents", len(got.Documents))
	}
}

func TestSaverPublishesDocumentSaved(t *testing.T) {
	t.Parallel()

	w := NewSaver(Store{Dir: t.TempDir()}, time.Hour)
	w.Events = events.NewBus()

	got := make(chan events.Event, 1)
	cancel := w.Events.Subscribe(func(e events.Event) { got <- e })
	defer cancel()

	w.Set(seedDB())
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	select {
	case e := <-got:
		if e.Kind != events.DocumentSaved || e.DocumentID != "doc-one" {
			t.Fatalf("unexpected event: %+v", e)
		}
	default:
		t.Fatal("expected a DocumentSaved event after flush")
	}
}

func TestSaverNilSafety(t *testing.T) {
	t.Parallel()

	var w *Saver
	w.Set(seedDB())
	if err := w.Flush(); err != nil {
		t.Fatalf("expected nil saver to be inert; got %v", err)
	}

	w2 := NewSaver(Store{Dir: t.TempDir()}, time.Hour)
	w2.Set(nil)
	if err := w2.Flush(); err != nil {
		t.Fatalf("expected nil db ignored; got %v", err)
	}
}
