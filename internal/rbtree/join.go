package rbtree

// Join returns a tree holding every entry of l, the entry (k, v) and every
// entry of r. Every key of l must compare less than k and k must compare
// less than every key of r; Join panics otherwise.
//
// Join costs O(|BlackHeight(l) - BlackHeight(r)| + 1).
func Join[K, V any](l, r Tree[K, V], k K, v V, cmp Cmp[K]) Tree[K, V] {
	if l.root != nil {
		if m := l.root.max(); cmp(m.key, k) != LessThan {
			panic(violation("join: left key %v is not below pivot %v", m.key, k))
		}
	}
	if r.root != nil {
		if m := r.root.min(); cmp(k, m.key) != LessThan {
			panic(violation("join: pivot %v is not below right key %v", k, m.key))
		}
	}
	return Tree[K, V]{root: blacken(join(l.root, k, v, r.root))}
}

// Split partitions t around k. The first tree holds the keys less than k,
// the second the keys greater than or equal to k.
func Split[K, V any](t Tree[K, V], k K, cmp Cmp[K]) (Tree[K, V], Tree[K, V]) {
	l, found, r := split(t.root, k, cmp)
	if found != nil {
		r = join(nil, found.key, found.val, r)
	}
	return Tree[K, V]{root: blacken(l)}, Tree[K, V]{root: blacken(r)}
}

// Merge returns a tree holding the entries of both l and r. Every key of l
// must compare less than every key of r; Merge panics otherwise.
func Merge[K, V any](l, r Tree[K, V], cmp Cmp[K]) Tree[K, V] {
	if l.root != nil && r.root != nil {
		if lk, rk := l.root.max().key, r.root.min().key; cmp(lk, rk) != LessThan {
			panic(violation("merge: left key %v is not below right key %v", lk, rk))
		}
	}
	return Tree[K, V]{root: blacken(merge(l.root, r.root))}
}

// join combines two valid trees of any root color around a pivot. The
// result is valid but its root may be red.
func join[K, V any](l *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	lh, rh := l.blackHeight(), r.blackHeight()
	switch {
	case lh > rh:
		t := joinRight(l, k, v, r)
		if isRed(t) && isRed(t.right) {
			return recolorBlack(t)
		}
		return t
	case lh < rh:
		t := joinLeft(l, k, v, r)
		if isRed(t) && isRed(t.left) {
			return recolorBlack(t)
		}
		return t
	case isBlack(l) && isBlack(r):
		return mk(red, l, k, v, r)
	default:
		return mk(black, l, k, v, r)
	}
}

// joinRight walks down the right spine of the taller tree l to the first
// black subtree as tall as r and hangs (subtree, k, r) there as a red node.
// A red-red pair left on the spine is rotated away on the way back up; the
// only one that can survive sits at the returned root and its right child.
func joinRight[K, V any](l *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	if isBlack(l) && l.blackHeight() == r.blackHeight() {
		return mk(red, l, k, v, r)
	}
	t := mk(l.color, l.left, l.key, l.val, joinRight(l.right, k, v, r))
	if l.color == black && isRed(t.right) && isRed(t.right.right) {
		tr := t.right
		return mk(red, mk(black, t.left, t.key, t.val, tr.left), tr.key, tr.val, recolorBlack(tr.right))
	}
	return t
}

// joinLeft is the mirror image of joinRight for a taller r.
func joinLeft[K, V any](l *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	if isBlack(r) && r.blackHeight() == l.blackHeight() {
		return mk(red, l, k, v, r)
	}
	t := mk(r.color, joinLeft(l, k, v, r.left), r.key, r.val, r.right)
	if r.color == black && isRed(t.left) && isRed(t.left.left) {
		tl := t.left
		return mk(red, recolorBlack(tl.left), tl.key, tl.val, mk(black, tl.right, t.key, t.val, t.right))
	}
	return t
}

// split returns the subtrees below and above k, and the node holding k if
// there is one.
func split[K, V any](n *node[K, V], k K, cmp Cmp[K]) (*node[K, V], *node[K, V], *node[K, V]) {
	if n == nil {
		return nil, nil, nil
	}
	switch cmp(k, n.key) {
	case LessThan:
		l, found, r := split(n.left, k, cmp)
		return l, found, join(r, n.key, n.val, n.right)
	case GreaterThan:
		l, found, r := split(n.right, k, cmp)
		return join(n.left, n.key, n.val, l), found, r
	default:
		return n.left, n, n.right
	}
}

// merge joins l and r using the minimum of r as the pivot.
func merge[K, V any](l, r *node[K, V]) *node[K, V] {
	if r == nil {
		return l
	}
	if l == nil {
		return r
	}
	pivot := r.min()
	rest, _ := delMin(r)
	return join(l, pivot.key, pivot.val, rest)
}

// Filter returns a tree holding the entries of t for which keep returns
// true. It visits every entry once and reuses no nodes of t.
func Filter[K, V any](t Tree[K, V], keep func(K, V) bool) Tree[K, V] {
	return Tree[K, V]{root: blacken(filter(t.root, keep))}
}

func filter[K, V any](n *node[K, V], keep func(K, V) bool) *node[K, V] {
	if n == nil {
		return nil
	}
	l := filter(n.left, keep)
	r := filter(n.right, keep)
	if keep(n.key, n.val) {
		return join(l, n.key, n.val, r)
	}
	return merge(l, r)
}
