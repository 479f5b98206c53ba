// Package lsm implements an in-memory Log-Structured Merge store.
//
// Writes land in a mutable MemTable. A full MemTable is frozen into an
// immutable level 0 table, and once CompactionFactor tables pile up on a
// level they are merged into one table on the next level. Every tier is a
// persistent red-black tree, so freezing, compaction and snapshots share
// nodes with the data they came from instead of copying it.
package lsm

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AlonMell/grove/v2/internal/lsm/memtable"
	"github.com/AlonMell/grove/v2/internal/lsm/sstable"
	"github.com/AlonMell/grove/v2/internal/rbtree"
)

// Common errors returned by the database.
var (
	ErrDBClosed    = errors.New("database is closed")
	ErrKeyNotFound = errors.New("key not found")
	ErrBadConfig   = errors.New("invalid configuration")
)

// Config holds configuration options for the store.
type Config struct {
	// Maximum size of MemTable in bytes before it is frozen
	MemTableSize int

	// Number of tables on one level that triggers a compaction
	CompactionFactor int

	// Number of bits per key for Bloom filters (higher = lower false positive rate)
	BloomFilterBits int

	// Deepest level compaction may produce
	MaxLevels int

	Logger *slog.Logger
}

// DefaultConfig returns a default database configuration.
func DefaultConfig() *Config {
	return &Config{
		MemTableSize:     4 * 1024 * 1024, // 4MB
		CompactionFactor: 4,
		BloomFilterBits:  10,
		MaxLevels:        7,
	}
}

func (c *Config) validate() error {
	switch {
	case c.MemTableSize <= 0:
		return fmt.Errorf("%w: memtable size must be positive, got %d", ErrBadConfig, c.MemTableSize)
	case c.CompactionFactor < 2:
		return fmt.Errorf("%w: compaction factor must be at least 2, got %d", ErrBadConfig, c.CompactionFactor)
	case c.MaxLevels < 1:
		return fmt.Errorf("%w: max levels must be at least 1, got %d", ErrBadConfig, c.MaxLevels)
	}
	return nil
}

// DB represents a store instance. It is safe for concurrent use.
type DB struct {
	config   *Config
	logger   *slog.Logger
	memTable *memtable.MemTable
	// sstables is ordered newest first: by level, then by descending Seq.
	// It is replaced, never modified in place, so readers may keep a copy.
	sstables []*sstable.SSTable
	seq      uint64

	compactChan chan struct{}
	compactMu   sync.Mutex // serializes compactions
	bgCompact   atomic.Bool
	done        chan struct{}
	bg          sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New creates an empty store and starts its background compaction.
func New(config *Config) (*DB, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db := &DB{
		config:      config,
		logger:      logger.With("component", "lsm"),
		memTable:    memtable.NewMemTable(),
		compactChan: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	db.bg.Add(1)
	go db.backgroundCompaction()

	return db, nil
}

// Put stores a key-value pair in the database.
func (db *DB) Put(key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrDBClosed
	}

	db.memTable.Put(key, value)
	opsCounter.WithLabelValues("put").Inc()

	db.maybeFreezeLocked()
	return nil
}

// Delete removes a key from the database by writing a tombstone.
func (db *DB) Delete(key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrDBClosed
	}

	db.memTable.Delete(key)
	opsCounter.WithLabelValues("delete").Inc()

	db.maybeFreezeLocked()
	return nil
}

// Get retrieves a value by key from the database.
func (db *DB) Get(key string) (string, error) {
	mem, tables, err := db.tiers()
	if err != nil {
		return "", err
	}
	opsCounter.WithLabelValues("get").Inc()

	if value, found, tombstone := mem.GetWithTombstone(key); found {
		if tombstone {
			return "", ErrKeyNotFound
		}
		return value, nil
	}

	for _, table := range tables {
		if !table.MayContain(key) {
			bloomSkips.Inc()
			continue
		}
		if value, found, tombstone := table.GetWithTombstone(key); found {
			if tombstone {
				return "", ErrKeyNotFound
			}
			return value, nil
		}
	}

	return "", ErrKeyNotFound
}

// Scan yields the live entries with keys in [lo, hi) in key order, as of the
// moment Scan is called. An empty hi means no upper bound.
func (db *DB) Scan(lo, hi string) (iter.Seq2[string, string], error) {
	snap, err := db.Snapshot()
	if err != nil {
		return nil, err
	}
	opsCounter.WithLabelValues("scan").Inc()
	return snap.Scan(lo, hi), nil
}

// Snapshot returns a read-only view of the database as of now. Later writes
// are not visible through it and it stays usable after Close.
func (db *DB) Snapshot() (*Snapshot, error) {
	mem, tables, err := db.tiers()
	if err != nil {
		return nil, err
	}

	// Union keeps the entry of its second argument, so fold from the
	// oldest table up to the memtable.
	view := rbtree.NewOrderedMap[string, memtable.Entry]()
	for _, table := range slices.Backward(tables) {
		view = view.Union(table.Data())
	}
	view = view.Union(mem.Snapshot())

	return &Snapshot{data: view}, nil
}

// tiers captures the current memtable and tables without holding the lock
// any longer than that.
func (db *DB) tiers() (*memtable.MemTable, []*sstable.SSTable, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, nil, ErrDBClosed
	}
	return db.memTable, db.sstables, nil
}

// Close stops background compaction. Snapshots taken earlier stay valid.
func (db *DB) Close() error {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return nil
	}
	db.closed = true
	close(db.done)
	db.mu.Unlock()

	db.bg.Wait()
	return nil
}

// Flush freezes the current MemTable even if it is not full.
func (db *DB) Flush() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrDBClosed
	}
	if db.memTable.Count() > 0 {
		db.freezeLocked()
	}
	return nil
}

// Compact forces a compaction of the database.
func (db *DB) Compact() error {
	if _, _, err := db.tiers(); err != nil {
		return err
	}
	db.compaction()
	return nil
}

// TableInfo describes one frozen table.
type TableInfo struct {
	Level   int
	Seq     uint64
	Entries int

	BloomBits   uint
	BloomHashes uint
	BloomFPR    float64 // estimated false positive rate
}

// Stats is a point-in-time summary of the store layout.
type Stats struct {
	MemTableBytes   int
	MemTableEntries int
	Tables          []TableInfo
}

// Stats reports the current layout of the store.
func (db *DB) Stats() (Stats, error) {
	mem, tables, err := db.tiers()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		MemTableBytes:   mem.Size(),
		MemTableEntries: mem.Count(),
	}
	for _, table := range tables {
		stats.Tables = append(stats.Tables, TableInfo{
			Level:       table.Level,
			Seq:         table.Seq,
			Entries:     table.Count(),
			BloomBits:   table.BloomBits(),
			BloomHashes: table.BloomHashes(),
			BloomFPR:    table.FalsePositiveRate(),
		})
	}
	return stats, nil
}

func (db *DB) maybeFreezeLocked() {
	if db.memTable.Size() >= db.config.MemTableSize {
		db.freezeLocked()
	}
}

// freezeLocked turns the current MemTable into a level 0 table and starts
// a new one. This method assumes the mutex is already locked.
func (db *DB) freezeLocked() {
	db.seq++
	table := sstable.FromMemTable(db.memTable, db.seq, db.config.BloomFilterBits)
	db.memTable = memtable.NewMemTable()

	db.sstables = sortTables(append(slices.Clone(db.sstables), table))
	tablesGauge.Set(float64(len(db.sstables)))
	memTableFreezes.Inc()
	bloomFPR.WithLabelValues("0").Set(table.FalsePositiveRate())

	db.logger.Debug("froze memtable", "table", table, "tables", len(db.sstables))

	if db.shouldCompact() {
		select {
		case db.compactChan <- struct{}{}:
			// Signal sent to compaction goroutine
		default:
			// Channel is full, compaction already scheduled
		}
	}
}

// shouldCompact determines if compaction should be triggered.
func (db *DB) shouldCompact() bool {
	l0Count := 0
	for _, table := range db.sstables {
		if table.Level == 0 {
			l0Count++
		}
	}

	return l0Count >= db.config.CompactionFactor
}

// backgroundCompaction performs compaction in the background.
func (db *DB) backgroundCompaction() {
	defer db.bg.Done()

	for {
		select {
		case <-db.done:
			return
		case <-db.compactChan:
			if !db.bgCompact.CompareAndSwap(false, true) {
				// Another compaction is already running
				continue
			}
			db.compaction()
			db.bgCompact.Store(false)
		}
	}
}

// compaction merges the oldest CompactionFactor tables of every level that
// has enough of them into one table on the next level. Merging happens
// without the store lock; only the final swap of the table list takes it.
func (db *DB) compaction() {
	db.compactMu.Lock()
	defer db.compactMu.Unlock()

	for level := range db.config.MaxLevels - 1 {
		db.mu.RLock()
		tables := db.sstables
		db.mu.RUnlock()

		var atLevel []*sstable.SSTable
		deeper := false
		for _, table := range tables {
			switch {
			case table.Level == level:
				atLevel = append(atLevel, table)
			case table.Level > level:
				deeper = true
			}
		}
		if len(atLevel) < db.config.CompactionFactor {
			continue
		}

		// Oldest first, so the union lets newer entries win.
		slices.SortFunc(atLevel, func(a, b *sstable.SSTable) int {
			return cmp.Compare(a.Seq, b.Seq)
		})
		selected := atLevel[:db.config.CompactionFactor]

		// Without deeper tables nothing older can be shadowed by a
		// tombstone, so tombstones may go.
		start := time.Now()
		merged := sstable.Merge(selected, level+1, selected[len(selected)-1].Seq, db.config.BloomFilterBits, !deeper)
		compactionDuration.Observe(time.Since(start).Seconds())
		compactionsCounter.WithLabelValues(strconv.Itoa(level + 1)).Inc()

		db.mu.Lock()
		remaining := slices.DeleteFunc(slices.Clone(db.sstables), func(t *sstable.SSTable) bool {
			return slices.Contains(selected, t)
		})
		if merged.Count() > 0 {
			remaining = append(remaining, merged)
			bloomFPR.WithLabelValues(strconv.Itoa(merged.Level)).Set(merged.FalsePositiveRate())
		}
		db.sstables = sortTables(remaining)
		tablesGauge.Set(float64(len(db.sstables)))
		db.mu.Unlock()

		db.logger.Info("compacted tables",
			"level", level,
			"inputs", len(selected),
			"output", merged,
			"bloom_bits", merged.BloomBits(),
			"bloom_fpr", merged.FalsePositiveRate(),
			"drop_tombstones", !deeper,
			"duration", time.Since(start),
		)
	}
}

// sortTables orders tables newest first: lower levels before higher ones,
// and within a level by descending Seq.
func sortTables(tables []*sstable.SSTable) []*sstable.SSTable {
	slices.SortFunc(tables, func(a, b *sstable.SSTable) int {
		if a.Level != b.Level {
			return cmp.Compare(a.Level, b.Level)
		}
		return cmp.Compare(b.Seq, a.Seq)
	})
	return tables
}
