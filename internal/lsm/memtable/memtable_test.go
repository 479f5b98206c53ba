package memtable_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlonMell/grove/v2/internal/lsm/memtable"
)

func TestPutGetDelete(t *testing.T) {
	assert := assert.New(t)
	m := memtable.NewMemTable()

	m.Put("b", "2")
	m.Put("a", "1")
	m.Put("b", "22")

	v, ok := m.Get("b")
	assert.True(ok)
	assert.Equal("22", v)
	assert.Equal(2, m.Count())

	m.Delete("a")
	_, ok = m.Get("a")
	assert.False(ok)
	assert.True(m.HasTombstone("a"))
	assert.Equal(2, m.Count(), "tombstones are entries")

	_, found, tombstone := m.GetWithTombstone("a")
	assert.True(found)
	assert.True(tombstone)

	_, found, _ = m.GetWithTombstone("missing")
	assert.False(found)
}

func TestSizeAccounting(t *testing.T) {
	assert := assert.New(t)
	m := memtable.NewMemTable()

	m.Put("key", "value")
	first := m.Size()
	assert.Positive(first)

	m.Put("key", "v")
	assert.Equal(first-4, m.Size(), "overwrite replaces the old value size")

	m.Delete("key")
	assert.Equal(first-5, m.Size())
}

func TestSnapshotIsolation(t *testing.T) {
	assert := assert.New(t)
	m := memtable.NewMemTable()

	for i := range 100 {
		m.Put(strconv.Itoa(i), "old")
	}
	snap := m.Snapshot()

	for i := range 100 {
		m.Put(strconv.Itoa(i), "new")
	}
	m.Delete("7")

	for key, e := range snap.All() {
		assert.Equal("old", e.Value, key)
		assert.False(e.Tombstone, key)
	}
	assert.Equal(100, snap.Len())

	e, ok := m.Snapshot().Get("7")
	assert.True(ok)
	assert.True(e.Tombstone)
}

func TestForEachOrderAndStop(t *testing.T) {
	assert := assert.New(t)
	m := memtable.NewMemTable()
	for _, k := range []string{"d", "b", "a", "c"} {
		m.Put(k, k)
	}

	var seen []string
	m.ForEach(func(key string, _ memtable.Entry) bool {
		seen = append(seen, key)
		return key != "c"
	})
	assert.Equal([]string{"a", "b", "c"}, seen)
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	m := memtable.NewMemTable()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			m.Put(strconv.Itoa(i), strconv.Itoa(i))
		}
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				prev := ""
				for key := range m.All() {
					if prev != "" && key <= prev {
						t.Errorf("keys out of order: %q after %q", key, prev)
						return
					}
					prev = key
				}
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1000, m.Count())
}
