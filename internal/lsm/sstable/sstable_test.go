package sstable_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlonMell/grove/v2/internal/lsm/memtable"
	"github.com/AlonMell/grove/v2/internal/lsm/sstable"
)

func table(seq uint64, puts map[string]string, deletes ...string) *sstable.SSTable {
	m := memtable.NewMemTable()
	for k, v := range puts {
		m.Put(k, v)
	}
	for _, k := range deletes {
		m.Delete(k)
	}
	return sstable.FromMemTable(m, seq, 10)
}

func TestFromMemTable(t *testing.T) {
	assert := assert.New(t)

	s := table(1, map[string]string{"a": "1", "b": "2"}, "c")
	assert.Equal(0, s.Level)
	assert.Equal(3, s.Count())

	v, ok := s.Get("a")
	assert.True(ok)
	assert.Equal("1", v)

	_, ok = s.Get("c")
	assert.False(ok)
	_, found, tombstone := s.GetWithTombstone("c")
	assert.True(found)
	assert.True(tombstone)

	for _, k := range []string{"a", "b", "c"} {
		assert.True(s.MayContain(k), "bloom filter must not give false negatives for %q", k)
	}
}

func TestMergeNewestWins(t *testing.T) {
	assert := assert.New(t)

	older := table(1, map[string]string{"a": "old", "b": "old", "c": "old"})
	newer := table(2, map[string]string{"b": "new"}, "c")

	merged := sstable.Merge([]*sstable.SSTable{older, newer}, 1, 2, 10, false)
	assert.Equal(1, merged.Level)
	assert.Equal(uint64(2), merged.Seq)

	v, _ := merged.Get("a")
	assert.Equal("old", v)
	v, _ = merged.Get("b")
	assert.Equal("new", v)
	_, found, tombstone := merged.GetWithTombstone("c")
	assert.True(found)
	assert.True(tombstone)

	dropped := sstable.Merge([]*sstable.SSTable{older, newer}, 1, 2, 10, true)
	_, found, _ = dropped.GetWithTombstone("c")
	assert.False(found)
	assert.Equal(2, dropped.Count())

	// inputs are untouched
	v, _ = older.Get("b")
	assert.Equal("old", v)
}

func TestMergeMany(t *testing.T) {
	var tables []*sstable.SSTable
	for i := range 8 {
		puts := map[string]string{}
		for j := range 50 {
			puts[fmt.Sprintf("key-%03d", i*25+j)] = fmt.Sprintf("v%d", i)
		}
		tables = append(tables, table(uint64(i+1), puts))
	}

	merged := sstable.Merge(tables, 1, 8, 10, true)
	assert.Equal(t, 7*25+50, merged.Count())

	v, ok := merged.Get("key-030")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)
	assert.Contains(t, merged.String(), "L1")
}

func TestBloomStats(t *testing.T) {
	assert := assert.New(t)

	puts := map[string]string{}
	for i := range 1000 {
		puts[fmt.Sprintf("key-%04d", i)] = "v"
	}
	s := table(1, puts)

	assert.Equal(uint(10_000), s.BloomBits())
	assert.Equal(uint(7), s.BloomHashes())
	assert.InDelta(0.0082, s.FalsePositiveRate(), 0.001)

	misses := 0
	for i := range 1000 {
		if s.MayContain(fmt.Sprintf("absent-%04d", i)) {
			misses++
		}
	}
	assert.Less(float64(misses)/1000, 0.03, "measured rate should be near the estimate")
}
