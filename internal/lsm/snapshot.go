package lsm

import (
	"iter"

	"github.com/AlonMell/grove/v2/internal/lsm/memtable"
	"github.com/AlonMell/grove/v2/internal/rbtree"
)

// Snapshot is a point-in-time view of a DB. It shares its nodes with the
// tables it was built from and never changes.
type Snapshot struct {
	data rbtree.Map[string, memtable.Entry]
}

// Get retrieves a value by key as of the snapshot.
func (s *Snapshot) Get(key string) (string, error) {
	e, ok := s.data.Get(key)
	if !ok || e.Tombstone {
		return "", ErrKeyNotFound
	}
	return e.Value, nil
}

// Scan yields the live entries with keys in [lo, hi). An empty hi means no
// upper bound.
func (s *Snapshot) Scan(lo, hi string) iter.Seq2[string, string] {
	var entries iter.Seq2[string, memtable.Entry]
	if hi == "" {
		_, upper := s.data.Split(lo)
		entries = upper.All()
	} else {
		entries = s.data.Range(lo, hi)
	}
	return live(entries)
}

// All yields every live entry in key order.
func (s *Snapshot) All() iter.Seq2[string, string] {
	return live(s.data.All())
}

// Len returns the number of live keys.
func (s *Snapshot) Len() int {
	n := 0
	for range s.All() {
		n++
	}
	return n
}

func live(entries iter.Seq2[string, memtable.Entry]) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for key, e := range entries {
			if e.Tombstone {
				continue
			}
			if !yield(key, e.Value) {
				return
			}
		}
	}
}
