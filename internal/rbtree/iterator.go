package rbtree

import (
	"iter"
)

// All yields the entries of t in ascending key order.
func (t Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		// No parent pointers: the path back up lives on an explicit stack,
		// which never grows past twice the black height.
		stack := make([]*node[K, V], 0, 2*t.root.blackHeight())
		current := t.root
		for current != nil || len(stack) > 0 {
			for current != nil {
				stack = append(stack, current)
				current = current.left
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key, current.val) {
				return
			}

			current = current.right
		}
	}
}

// Backward yields the entries of t in descending key order.
func (t Tree[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		stack := make([]*node[K, V], 0, 2*t.root.blackHeight())
		current := t.root
		for current != nil || len(stack) > 0 {
			for current != nil {
				stack = append(stack, current)
				current = current.right
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key, current.val) {
				return
			}

			current = current.left
		}
	}
}

// Keys yields the keys of t in ascending order.
func (t Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields the values of t in ascending key order.
func (t Tree[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Range yields, in ascending order, the entries whose keys lie in the
// half-open interval [lo, hi). Subtrees outside the interval are skipped.
func Range[K, V any](t Tree[K, V], lo, hi K, cmp Cmp[K]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.root.ascend(lo, hi, cmp, yield)
	}
}

func (n *node[K, V]) ascend(lo, hi K, cmp Cmp[K], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	aboveLo := cmp(n.key, lo) != LessThan
	belowHi := cmp(n.key, hi) == LessThan
	if aboveLo && !n.left.ascend(lo, hi, cmp, yield) {
		return false
	}
	if aboveLo && belowHi && !yield(n.key, n.val) {
		return false
	}
	if belowHi {
		return n.right.ascend(lo, hi, cmp, yield)
	}
	return true
}

// Len returns the number of entries in t. Sizes are not stored, so this
// walks the whole tree.
func (t Tree[K, V]) Len() int {
	return t.root.size()
}

func (n *node[K, V]) size() int {
	if n == nil {
		return 0
	}
	return n.left.size() + 1 + n.right.size()
}

// Fold combines the entries of t in ascending key order, starting from acc.
func Fold[K, V, A any](t Tree[K, V], acc A, f func(A, K, V) A) A {
	for k, v := range t.All() {
		acc = f(acc, k, v)
	}
	return acc
}

// FromSeq builds a tree from a sequence of entries. Later entries replace
// earlier ones with an equal key.
func FromSeq[K, V any](seq iter.Seq2[K, V], cmp Cmp[K]) Tree[K, V] {
	var t Tree[K, V]
	for k, v := range seq {
		t = Set(t, k, v, cmp)
	}
	return t
}
