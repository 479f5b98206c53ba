package main

import (
	"fmt"
	"slices"

	cli "github.com/urfave/cli/v2"

	"github.com/AlonMell/grove/v2/internal/rbtree"
)

var cmdDemo = &cli.Command{
	Name:  "demo",
	Usage: "walk through insertion, deletion and the set algebra on small trees",
	Action: func(cctx *cli.Context) error {
		configLogger(cctx, cctx.App.ErrWriter)
		out := cctx.App.Writer
		var cmp rbtree.Cmp[int] = rbtree.Compare[int]

		var t rbtree.Tree[int, int]
		for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
			t = rbtree.Set(t, k, k, cmp)
			if err := rbtree.Verify(t, cmp); err != nil {
				return fmt.Errorf("after inserting %d: %w", k, err)
			}
			fmt.Fprintf(out, "set %d -> %v (black height %d)\n", k, t, t.BlackHeight())
		}
		printKeys(out, "in order", slices.Collect(t.Keys()))

		without5 := rbtree.Del(t, 5, cmp)
		printKeys(out, "del 5", slices.Collect(without5.Keys()))
		printKeys(out, "original", slices.Collect(t.Keys()))

		a := fromKeys(cmp, 1, 2, 3, 4, 5)
		b := fromKeys(cmp, 3, 4, 5, 6, 7)
		printKeys(out, "union", slices.Collect(rbtree.Union(a, b, cmp).Keys()))
		printKeys(out, "intersect", slices.Collect(rbtree.Intersect(a, b, cmp).Keys()))
		printKeys(out, "diff", slices.Collect(rbtree.Diff(a, b, cmp).Keys()))

		l, r := rbtree.Split(a, 3, cmp)
		printKeys(out, "split <3", slices.Collect(l.Keys()))
		printKeys(out, "split >=3", slices.Collect(r.Keys()))

		joined := rbtree.Join(fromKeys(cmp, 1, 2), fromKeys(cmp, 5, 6), 3, 3, cmp)
		printKeys(out, "join", slices.Collect(joined.Keys()))
		return rbtree.Verify(joined, cmp)
	},
}

func fromKeys(cmp rbtree.Cmp[int], keys ...int) rbtree.Tree[int, int] {
	var t rbtree.Tree[int, int]
	for _, k := range keys {
		t = rbtree.Set(t, k, k, cmp)
	}
	return t
}
