package rbtree

import (
	"cmp"
	"fmt"
)

// Ordering is the outcome of comparing two keys.
type Ordering int8

const (
	LessThan    Ordering = -1
	Equal       Ordering = 0
	GreaterThan Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case LessThan:
		return "LessThan"
	case Equal:
		return "Equal"
	case GreaterThan:
		return "GreaterThan"
	default:
		return fmt.Sprintf("Ordering(%d)", int8(o))
	}
}

// Cmp is a total order over keys. It must be consistent for the lifetime of
// every tree built with it.
type Cmp[K any] func(a, b K) Ordering

// Compare is the default comparator: numeric order for numbers and
// lexicographic byte order for strings.
func Compare[K cmp.Ordered](a, b K) Ordering {
	return Ordering(cmp.Compare(a, b))
}

// Reverse returns a comparator ordering keys the other way round.
func Reverse[K any](c Cmp[K]) Cmp[K] {
	return func(a, b K) Ordering {
		return c(b, a)
	}
}
