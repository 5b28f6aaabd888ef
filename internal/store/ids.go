package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space, plenty for
// per-workspace entities.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// mustID never fails: node construction has no error path, so if crypto/rand
// is unavailable we fall back to a timestamp-derived suffix.
func mustID(prefix string) string {
	id, err := newRandomID(prefix)
	if err != nil {
		return fmt.Sprintf("%s-t%x", prefix, time.Now().UnixNano())
	}
	return id
}

// NewNodeID returns a fresh outline node id. Node ids are unique per tree;
// 40 bits of randomness makes collisions within one document negligible, so
// no existence check is performed.
func NewNodeID() string { return mustID("node") }

func NewBlockID() string { return mustID("blk") }

// NextID returns a fresh id with the given prefix that is not already used
// by any document or entity in the DB.
func (s Store) NextID(db *DB, prefix string) string {
	for i := 0; i < 10; i++ {
		id := mustID(prefix)
		if !idExists(db, id) {
			return id
		}
	}
	// Extremely unlikely fallback.
	return fmt.Sprintf("%s-t%x", prefix, time.Now().UnixNano())
}

func idExists(db *DB, id string) bool {
	for _, d := range db.Documents {
		if d.ID == id {
			return true
		}
	}
	for _, e := range db.Entities {
		if e.ID == id {
			return true
		}
	}
	return false
}
