// Package watcher re-runs an action when a single file changes on disk.
// Used by `beatline import --watch` to keep a document in sync with an
// outline file being edited elsewhere.
package watcher

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// WatchFile watches path until ctx is done, invoking onChange with the file
// contents after each settled change. The parent directory is watched, not
// the file itself: most editors replace files via rename, which would drop
// a direct watch. Rewrites that leave the content byte-identical are
// ignored. onChange runs on the watch goroutine; it must not block forever.
func WatchFile(ctx context.Context, path string, debounce time.Duration, onChange func([]byte)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var mu sync.Mutex
	var pendingAt time.Time
	pending := false

	lastHash := ""
	if b, err := os.ReadFile(abs); err == nil {
		lastHash = contentHash(b)
	}

	fire := func() {
		b, err := os.ReadFile(abs)
		if err != nil {
			return
		}
		h := contentHash(b)
		if h == lastHash {
			return
		}
		lastHash = h
		onChange(b)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			evAbs, err := filepath.Abs(ev.Name)
			if err != nil || evAbs != abs {
				continue
			}
			mu.Lock()
			pending = true
			pendingAt = time.Now()
			mu.Unlock()

		case <-ticker.C:
			mu.Lock()
			ready := pending && time.Since(pendingAt) >= debounce
			if ready {
				pending = false
			}
			mu.Unlock()
			if ready {
				fire()
			}

		case _, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient (e.g. overflow); keep going.
		}
	}
}

func contentHash(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}
