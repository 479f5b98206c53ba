package rbtree

import (
	"cmp"
	"iter"
)

// Map pairs a Tree with the comparator it was built with, so callers do not
// have to thread the comparator through every call. Like Tree it is an
// immutable value: every update returns a new Map.
type Map[K, V any] struct {
	tree Tree[K, V]
	cmp  Cmp[K]
}

// NewMap returns an empty Map ordered by c.
func NewMap[K, V any](c Cmp[K]) Map[K, V] {
	return Map[K, V]{cmp: c}
}

// NewOrderedMap returns an empty Map ordered by Compare.
func NewOrderedMap[K cmp.Ordered, V any]() Map[K, V] {
	return NewMap[K, V](Compare[K])
}

func (m Map[K, V]) with(t Tree[K, V]) Map[K, V] {
	return Map[K, V]{tree: t, cmp: m.cmp}
}

// Tree returns the underlying tree.
func (m Map[K, V]) Tree() Tree[K, V] { return m.tree }

// Cmp returns the comparator of m.
func (m Map[K, V]) Cmp() Cmp[K] { return m.cmp }

// Len returns the number of entries in m.
func (m Map[K, V]) Len() int { return m.tree.Len() }

// IsEmpty reports whether m holds no entries.
func (m Map[K, V]) IsEmpty() bool { return m.tree.IsEmpty() }

// Get returns the value stored under k.
func (m Map[K, V]) Get(k K) (V, bool) { return Get(m.tree, k, m.cmp) }

// Has reports whether k is present in m.
func (m Map[K, V]) Has(k K) bool { return Has(m.tree, k, m.cmp) }

// Min panics on an empty Map.
func (m Map[K, V]) Min() (K, V) { return Min(m.tree) }

// Max panics on an empty Map.
func (m Map[K, V]) Max() (K, V) { return Max(m.tree) }

// Set returns m with (k, v) added or replaced.
func (m Map[K, V]) Set(k K, v V) Map[K, V] { return m.with(Set(m.tree, k, v, m.cmp)) }

// Delete returns m without k.
func (m Map[K, V]) Delete(k K) Map[K, V] { return m.with(Del(m.tree, k, m.cmp)) }

// DeleteMin returns m without its smallest entry.
func (m Map[K, V]) DeleteMin() Map[K, V] { return m.with(DelMin(m.tree)) }

// DeleteMax returns m without its largest entry.
func (m Map[K, V]) DeleteMax() Map[K, V] { return m.with(DelMax(m.tree)) }

// Split partitions m into the keys below k and the keys at or above k.
func (m Map[K, V]) Split(k K) (Map[K, V], Map[K, V]) {
	l, r := Split(m.tree, k, m.cmp)
	return m.with(l), m.with(r)
}

// Union prefers the entries of o on key collisions.
func (m Map[K, V]) Union(o Map[K, V]) Map[K, V] { return m.with(Union(m.tree, o.tree, m.cmp)) }

// Intersect keeps the keys present in both, with the values of o.
func (m Map[K, V]) Intersect(o Map[K, V]) Map[K, V] {
	return m.with(Intersect(m.tree, o.tree, m.cmp))
}

// Diff keeps the entries of m whose keys are absent from o.
func (m Map[K, V]) Diff(o Map[K, V]) Map[K, V] { return m.with(Diff(m.tree, o.tree, m.cmp)) }

// All yields the entries of m in ascending key order.
func (m Map[K, V]) All() iter.Seq2[K, V] { return m.tree.All() }

// Backward yields the entries of m in descending key order.
func (m Map[K, V]) Backward() iter.Seq2[K, V] { return m.tree.Backward() }

// Keys yields the keys of m in ascending order.
func (m Map[K, V]) Keys() iter.Seq[K] { return m.tree.Keys() }

// Range yields the entries with keys in [lo, hi).
func (m Map[K, V]) Range(lo, hi K) iter.Seq2[K, V] { return Range(m.tree, lo, hi, m.cmp) }

// Floor returns the entry with the largest key <= k.
func (m Map[K, V]) Floor(k K) (K, V, bool) { return Floor(m.tree, k, m.cmp) }

// Ceiling returns the entry with the smallest key >= k.
func (m Map[K, V]) Ceiling(k K) (K, V, bool) { return Ceiling(m.tree, k, m.cmp) }

// Filter keeps the entries for which keep returns true.
func (m Map[K, V]) Filter(keep func(K, V) bool) Map[K, V] { return m.with(Filter(m.tree, keep)) }
