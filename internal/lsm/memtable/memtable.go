// Package memtable implements the mutable in-memory table of the store on
// top of the persistent red-black tree.
package memtable

import (
	"iter"
	"sync"

	"github.com/AlonMell/grove/v2/internal/rbtree"
)

// Entry is a stored value or a deletion marker.
type Entry struct {
	Value     string
	Tombstone bool
}

// entryOverhead approximates the bookkeeping bytes of one entry.
const entryOverhead = 16

func entrySize(key string, e Entry) int {
	return len(key) + len(e.Value) + entryOverhead
}

// MemTable is a mutable handle over a persistent tree. Writers swap the root
// under a lock; readers capture it and then work lock-free.
type MemTable struct {
	tree  rbtree.Map[string, Entry]
	size  int // Approximate size in bytes
	count int // Number of entries, tombstones included
	mu    sync.RWMutex
}

// NewMemTable creates an empty MemTable.
func NewMemTable() *MemTable {
	return &MemTable{
		tree: rbtree.NewOrderedMap[string, Entry](),
	}
}

// Put adds or updates a key-value pair.
func (m *MemTable) Put(key, value string) {
	m.set(key, Entry{Value: value})
}

// Delete records a tombstone for key. The tombstone shadows older values
// of key in frozen tables.
func (m *MemTable) Delete(key string) {
	m.set(key, Entry{Tombstone: true})
}

func (m *MemTable) set(key string, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, exists := m.tree.Get(key); exists {
		m.size -= entrySize(key, old)
	} else {
		m.count++
	}
	m.tree = m.tree.Set(key, e)
	m.size += entrySize(key, e)
}

// Get retrieves the live value of key.
func (m *MemTable) Get(key string) (string, bool) {
	value, found, tombstone := m.GetWithTombstone(key)
	if !found || tombstone {
		return "", false
	}
	return value, true
}

// GetWithTombstone returns value, found flag, tombstone flag.
func (m *MemTable) GetWithTombstone(key string) (string, bool, bool) {
	e, ok := m.Snapshot().Get(key)
	if !ok {
		return "", false, false
	}
	return e.Value, true, e.Tombstone
}

// HasTombstone checks if key is marked deleted.
func (m *MemTable) HasTombstone(key string) bool {
	_, found, tombstone := m.GetWithTombstone(key)
	return found && tombstone
}

// Size returns the approximate size of the MemTable in bytes.
func (m *MemTable) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.size
}

// Count returns the number of entries, tombstones included.
func (m *MemTable) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.count
}

// Snapshot returns the current contents as an immutable map. It costs one
// pointer copy; later writes to m are not visible through it.
func (m *MemTable) Snapshot() rbtree.Map[string, Entry] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tree
}

// ForEach calls fn for every entry in key order until fn returns false.
func (m *MemTable) ForEach(fn func(key string, e Entry) bool) {
	for key, e := range m.All() {
		if !fn(key, e) {
			break
		}
	}
}

// All yields every entry of a snapshot taken when iteration starts.
func (m *MemTable) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		for key, e := range m.Snapshot().All() {
			if !yield(key, e) {
				return
			}
		}
	}
}
