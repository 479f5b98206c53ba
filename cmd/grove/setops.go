package main

import (
	"fmt"
	"slices"
	"strings"

	cli "github.com/urfave/cli/v2"

	"github.com/AlonMell/grove/v2/internal/rbtree"
)

var cmdSetOps = &cli.Command{
	Name:      "setops",
	Usage:     "print union, intersection and difference of two key lists",
	ArgsUsage: "<a,b,c> <b,c,d>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "reverse",
			Usage: "order keys in descending order",
		},
	},
	Action: func(cctx *cli.Context) error {
		configLogger(cctx, cctx.App.ErrWriter)
		if cctx.Args().Len() != 2 {
			return fmt.Errorf("expected two comma-separated key lists, got %d arguments", cctx.Args().Len())
		}

		var cmp rbtree.Cmp[string] = rbtree.Compare[string]
		if cctx.Bool("reverse") {
			cmp = rbtree.Reverse(cmp)
		}

		a := parseKeys(cctx.Args().Get(0), cmp)
		b := parseKeys(cctx.Args().Get(1), cmp)

		out := cctx.App.Writer
		printKeys(out, "a", slices.Collect(a.Keys()))
		printKeys(out, "b", slices.Collect(b.Keys()))
		printKeys(out, "union", slices.Collect(a.Union(b).Keys()))
		printKeys(out, "intersect", slices.Collect(a.Intersect(b).Keys()))
		printKeys(out, "a - b", slices.Collect(a.Diff(b).Keys()))
		printKeys(out, "b - a", slices.Collect(b.Diff(a).Keys()))
		return nil
	},
}

func parseKeys(arg string, cmp rbtree.Cmp[string]) rbtree.Map[string, struct{}] {
	m := rbtree.NewMap[string, struct{}](cmp)
	for _, k := range strings.Split(arg, ",") {
		if k = strings.TrimSpace(k); k != "" {
			m = m.Set(k, struct{}{})
		}
	}
	return m
}
