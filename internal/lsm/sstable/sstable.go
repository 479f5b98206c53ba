// Package sstable implements the frozen sorted tables of the store.
//
// A table is an immutable tree of entries plus a Bloom filter over its keys.
// Tables never touch disk: freezing a memtable captures its tree root and
// compaction combines tables with a tree union, so frozen data is shared,
// never copied.
package sstable

import (
	"fmt"

	"github.com/AlonMell/grove/v2/internal/lsm/memtable"
	"github.com/AlonMell/grove/v2/internal/lsm/sstable/bloom"
	"github.com/AlonMell/grove/v2/internal/rbtree"
)

// SSTable is an immutable sorted table.
type SSTable struct {
	// Level is 0 for frozen memtables and grows by one per compaction.
	Level int
	// Seq orders tables by age; a higher Seq holds newer data.
	Seq uint64

	data  rbtree.Map[string, memtable.Entry]
	bloom *bloom.BloomFilter
	count int
}

// NewSSTable freezes data into a table.
func NewSSTable(data rbtree.Map[string, memtable.Entry], level int, seq uint64, bloomBits int) *SSTable {
	count := data.Len()
	filter := bloom.New(count, bloomBits)
	for key := range data.Keys() {
		filter.Add(key)
	}

	return &SSTable{
		Level: level,
		Seq:   seq,
		data:  data,
		bloom: filter,
		count: count,
	}
}

// FromMemTable freezes the current contents of a MemTable as a level 0 table.
func FromMemTable(m *memtable.MemTable, seq uint64, bloomBits int) *SSTable {
	return NewSSTable(m.Snapshot(), 0, seq, bloomBits)
}

// Merge combines tables into one table at level. Tables must be ordered
// from oldest to newest; on duplicate keys the newest entry wins. With
// dropTombstones set, deletion markers are discarded, which is only safe
// when no older table can still hold the deleted keys.
func Merge(tables []*SSTable, level int, seq uint64, bloomBits int, dropTombstones bool) *SSTable {
	merged := rbtree.NewOrderedMap[string, memtable.Entry]()
	for _, t := range tables {
		merged = merged.Union(t.data)
	}
	if dropTombstones {
		merged = merged.Filter(func(_ string, e memtable.Entry) bool {
			return !e.Tombstone
		})
	}
	return NewSSTable(merged, level, seq, bloomBits)
}

// Get retrieves the live value of key.
func (s *SSTable) Get(key string) (string, bool) {
	value, found, tombstone := s.GetWithTombstone(key)
	if !found || tombstone {
		return "", false
	}
	return value, true
}

// GetWithTombstone returns value, found flag, tombstone flag.
func (s *SSTable) GetWithTombstone(key string) (string, bool, bool) {
	e, ok := s.data.Get(key)
	if !ok {
		return "", false, false
	}
	return e.Value, true, e.Tombstone
}

// MayContain checks if the table might contain key using its Bloom filter.
func (s *SSTable) MayContain(key string) bool {
	return s.bloom.MayContain(key)
}

// Data returns the entries of the table, tombstones included.
func (s *SSTable) Data() rbtree.Map[string, memtable.Entry] {
	return s.data
}

// BloomBits returns the size of the table's Bloom filter in bits.
func (s *SSTable) BloomBits() uint {
	return s.bloom.Size()
}

// BloomHashes returns the number of hash functions of the Bloom filter.
func (s *SSTable) BloomHashes() uint {
	return s.bloom.NumHashFunctions()
}

// FalsePositiveRate estimates how often MayContain answers true for a key
// the table does not hold.
func (s *SSTable) FalsePositiveRate() float64 {
	return s.bloom.EstimateFalsePositiveRate(s.count)
}

// Count returns the number of entries, tombstones included.
func (s *SSTable) Count() int {
	return s.count
}

func (s *SSTable) String() string {
	return fmt.Sprintf("sstable-L%d-%d(%d)", s.Level, s.Seq, s.count)
}
