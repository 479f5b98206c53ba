package lsm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var opsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "grove_ops_total",
	Help: "Number of store operations",
}, []string{"op"})

var memTableFreezes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "grove_memtable_freezes_total",
	Help: "Number of memtables frozen after reaching the size limit",
})

var bloomSkips = promauto.NewCounter(prometheus.CounterOpts{
	Name: "grove_bloom_skips_total",
	Help: "Number of table lookups skipped because of a negative bloom filter",
})

var compactionsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "grove_compactions_total",
	Help: "Number of compactions, by target level",
}, []string{"level"})

var compactionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "grove_compaction_duration_seconds",
	Help:    "Time spent merging tables during a compaction",
	Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
})

var tablesGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "grove_sstables",
	Help: "Number of frozen tables currently held",
})

var bloomFPR = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "grove_bloom_estimated_fpr",
	Help: "Estimated bloom filter false positive rate of the newest table, by level",
}, []string{"level"})
