package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"

	"github.com/AlonMell/grove/v2/internal/lsm"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "grove",
		Usage:   "persistent red-black trees and an in-memory store built on them",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			Value:   "info",
			EnvVars: []string{"GROVE_LOG_LEVEL", "GO_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "log output format: text or json",
			Value:   "text",
			EnvVars: []string{"GROVE_LOG_FORMAT"},
		},
	}

	app.Commands = []*cli.Command{
		cmdDemo,
		cmdSetOps,
		cmdBench,
	}

	return app.Run(args)
}

var storeFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "memtable-size",
		Usage:   "memtable size in bytes before it is frozen",
		Value:   lsm.DefaultConfig().MemTableSize,
		EnvVars: []string{"GROVE_MEMTABLE_SIZE"},
	},
	&cli.IntFlag{
		Name:    "compaction-factor",
		Usage:   "number of tables on one level that triggers a compaction",
		Value:   lsm.DefaultConfig().CompactionFactor,
		EnvVars: []string{"GROVE_COMPACTION_FACTOR"},
	},
	&cli.IntFlag{
		Name:    "bloom-bits",
		Usage:   "bloom filter bits per key",
		Value:   lsm.DefaultConfig().BloomFilterBits,
		EnvVars: []string{"GROVE_BLOOM_BITS"},
	},
	&cli.IntFlag{
		Name:    "max-levels",
		Usage:   "deepest level compaction may produce",
		Value:   lsm.DefaultConfig().MaxLevels,
		EnvVars: []string{"GROVE_MAX_LEVELS"},
	},
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cctx.String("log-format")) == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func storeConfig(cctx *cli.Context, logger *slog.Logger) *lsm.Config {
	return &lsm.Config{
		MemTableSize:     cctx.Int("memtable-size"),
		CompactionFactor: cctx.Int("compaction-factor"),
		BloomFilterBits:  cctx.Int("bloom-bits"),
		MaxLevels:        cctx.Int("max-levels"),
		Logger:           logger,
	}
}

func printKeys[K any](w io.Writer, label string, keys []K) {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprint(k)
	}
	fmt.Fprintf(w, "%-10s {%s}\n", label+":", strings.Join(parts, ", "))
}
