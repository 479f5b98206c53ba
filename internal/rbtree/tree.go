// Package rbtree implements a persistent red-black tree with a join-based
// set algebra.
//
// A Tree is never modified after it is built. Every update returns a new
// Tree that shares all untouched subtrees with its input, so an update
// allocates O(log n) nodes and old versions stay valid. Any number of
// goroutines may read the same Tree without locking.
//
// Union, Intersect and Diff are built on two primitives, Split and Join,
// and run in O(m log(n/m + 1)) for inputs of size m <= n.
package rbtree

import (
	"errors"
	"fmt"
)

type color bool

const (
	red   color = true
	black color = false
)

func (c color) String() string {
	if c == red {
		return "R"
	}
	return "B"
}

// ErrInvariant is wrapped by every panic raised on a tree shape the
// balancing code does not expect, or on a broken Join/Merge precondition.
// It always indicates a programming error and is not meant to be recovered.
var ErrInvariant = errors.New("rbtree: invariant violation")

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

type node[K, V any] struct {
	key   K
	val   V
	color color
	// height is the black height: black nodes on any path from here down to
	// an empty leaf, this node included.
	height      int
	left, right *node[K, V]
}

// Tree is an immutable ordered map from K to V. The zero value is the empty
// tree. A Tree is a small value and is meant to be passed by value.
type Tree[K, V any] struct {
	root *node[K, V]
}

// Empty returns the empty tree.
func Empty[K, V any]() Tree[K, V] {
	return Tree[K, V]{}
}

// Singleton returns a tree holding exactly one entry.
func Singleton[K, V any](k K, v V) Tree[K, V] {
	return Tree[K, V]{root: mk[K, V](black, nil, k, v, nil)}
}

// IsEmpty reports whether t holds no entries.
func (t Tree[K, V]) IsEmpty() bool {
	return t.root == nil
}

// BlackHeight returns the number of black nodes on every path from the root
// to an empty leaf. The empty tree has black height zero.
func (t Tree[K, V]) BlackHeight() int {
	return t.root.blackHeight()
}

func (t Tree[K, V]) String() string {
	return t.root.String()
}

// mk builds every node. Callers pass balanced children, so the black
// height can be derived from either side.
func mk[K, V any](c color, l *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	h := l.blackHeight()
	if c == black {
		h++
	}
	return &node[K, V]{
		key:    k,
		val:    v,
		color:  c,
		height: h,
		left:   l,
		right:  r,
	}
}

func (n *node[K, V]) blackHeight() int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node[K, V]) String() string {
	if n == nil {
		return "E"
	}
	return fmt.Sprintf("(%s %v %v %v)", n.color, n.left, n.key, n.right)
}

func isRed[K, V any](n *node[K, V]) bool {
	return n != nil && n.color == red
}

// isBlack treats the empty tree as black.
func isBlack[K, V any](n *node[K, V]) bool {
	return !isRed(n)
}

func recolorRed[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		panic(violation("recolor to red on an empty tree"))
	}
	if n.color == red {
		return n
	}
	return mk(red, n.left, n.key, n.val, n.right)
}

func recolorBlack[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		panic(violation("recolor to black on an empty tree"))
	}
	if n.color == black {
		return n
	}
	return mk(black, n.left, n.key, n.val, n.right)
}

// blacken forces the root of a result black. Unlike recolorBlack it accepts
// the empty tree.
func blacken[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	return recolorBlack(n)
}
