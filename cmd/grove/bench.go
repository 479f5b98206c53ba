package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/AlonMell/grove/v2/internal/lsm"
)

var cmdBench = &cli.Command{
	Name:  "bench",
	Usage: "write fake records into an in-memory store while concurrent readers query it",
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of records to write",
			Value: 100_000,
		},
		&cli.IntFlag{
			Name:  "readers",
			Usage: "number of concurrent reader goroutines",
			Value: 4,
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "seed for the fake data generator",
			Value: 42,
		},
	}, storeFlags...),
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, cctx.App.ErrWriter)

		db, err := lsm.New(storeConfig(cctx, logger))
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
		defer db.Close()

		faker := gofakeit.New(cctx.Int64("seed"))
		keys := make([]string, cctx.Int("count"))
		for i := range keys {
			keys[i] = fmt.Sprintf("%s-%s-%06d", faker.Username(), faker.Word(), i)
		}

		res, err := runBench(cctx.Context, db, keys, func() string { return faker.Sentence(6) }, cctx.Int("readers"))
		if err != nil {
			return err
		}

		if err := db.Compact(); err != nil {
			return err
		}
		stats, err := db.Stats()
		if err != nil {
			return err
		}

		out := cctx.App.Writer
		fmt.Fprintf(out, "Wrote %d records in %.2f seconds (%.0f ops/sec)\n",
			len(keys), res.elapsed.Seconds(), float64(len(keys))/res.elapsed.Seconds())
		fmt.Fprintf(out, "Concurrent reads: %d hits, %d misses\n", res.hits, res.misses)
		fmt.Fprintf(out, "Memtable: %d entries, %d bytes\n", stats.MemTableEntries, stats.MemTableBytes)
		for _, table := range stats.Tables {
			fmt.Fprintf(out, "  L%d seq=%d entries=%d bloom=%d bits k=%d est. fpr=%.4f\n",
				table.Level, table.Seq, table.Entries, table.BloomBits, table.BloomHashes, table.BloomFPR)
		}

		snap, err := db.Snapshot()
		if err != nil {
			return err
		}
		logger.Info("bench finished", "live_keys", snap.Len(), "tables", len(stats.Tables))
		return nil
	},
}

type benchResult struct {
	elapsed      time.Duration
	hits, misses int64
}

// runBench writes keys in order from one goroutine while readers look up
// keys that were already written. The first error from any goroutine
// cancels the others.
func runBench(ctx context.Context, db *lsm.DB, keys []string, value func() string, readers int) (benchResult, error) {
	var written, hits, misses atomic.Int64
	total := int64(len(keys))
	start := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		for i, key := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := db.Put(key, value()); err != nil {
				return err
			}
			written.Store(int64(i + 1))
		}
		return nil
	})
	for r := range readers {
		eg.Go(func() error {
			for i := r; written.Load() < total; i += 7 {
				if err := ctx.Err(); err != nil {
					return err
				}
				n := written.Load()
				if n == 0 {
					runtime.Gosched()
					continue
				}
				_, err := db.Get(keys[int64(i)%n])
				switch {
				case err == nil:
					hits.Add(1)
				case errors.Is(err, lsm.ErrKeyNotFound):
					misses.Add(1)
				default:
					return err
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return benchResult{}, err
	}

	return benchResult{
		elapsed: time.Since(start),
		hits:    hits.Load(),
		misses:  misses.Load(),
	}, nil
}
