package rbtree

import (
	"fmt"
)

// Verify checks every red-black invariant of t and returns the first
// violation found:
//  1. the root is black
//  2. keys are strictly increasing in order under cmp
//  3. a red node has no red child
//  4. every path to an empty leaf crosses the same number of black nodes,
//     and each node stores that number
func Verify[K, V any](t Tree[K, V], cmp Cmp[K]) error {
	if isRed(t.root) {
		return fmt.Errorf("root %v is red", t.root.key)
	}
	_, err := t.root.verify(cmp, nil, nil)
	return err
}

// VerifyTreeProperties reports whether Verify finds no violation.
func VerifyTreeProperties[K, V any](t Tree[K, V], cmp Cmp[K]) bool {
	return Verify(t, cmp) == nil
}

func (n *node[K, V]) verify(cmp Cmp[K], lo, hi *K) (int, error) {
	if n == nil {
		return 0, nil
	}

	if lo != nil && cmp(*lo, n.key) != LessThan {
		return 0, fmt.Errorf("key %v is not above %v", n.key, *lo)
	}
	if hi != nil && cmp(n.key, *hi) != LessThan {
		return 0, fmt.Errorf("key %v is not below %v", n.key, *hi)
	}

	if n.color == red && (isRed(n.left) || isRed(n.right)) {
		return 0, fmt.Errorf("red node %v has a red child", n.key)
	}

	leftCount, err := n.left.verify(cmp, lo, &n.key)
	if err != nil {
		return 0, err
	}
	rightCount, err := n.right.verify(cmp, &n.key, hi)
	if err != nil {
		return 0, err
	}

	if leftCount != rightCount {
		return 0, fmt.Errorf("node %v: black height %d on the left, %d on the right", n.key, leftCount, rightCount)
	}

	if n.color == black {
		leftCount++
	}
	if leftCount != n.height {
		return 0, fmt.Errorf("node %v stores black height %d, want %d", n.key, n.height, leftCount)
	}
	return leftCount, nil
}
