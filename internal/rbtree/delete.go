package rbtree

// Del returns t without the entry for k. Deleting an absent key returns t
// itself.
func Del[K, V any](t Tree[K, V], k K, cmp Cmp[K]) Tree[K, V] {
	if !Has(t, k, cmp) {
		return t
	}
	n, _ := del(t.root, k, cmp)
	return Tree[K, V]{root: blacken(n)}
}

// DelMin returns t without its smallest entry. It returns the empty tree
// unchanged.
func DelMin[K, V any](t Tree[K, V]) Tree[K, V] {
	if t.root == nil {
		return t
	}
	n, _ := delMin(t.root)
	return Tree[K, V]{root: blacken(n)}
}

// DelMax returns t without its largest entry. It returns the empty tree
// unchanged.
func DelMax[K, V any](t Tree[K, V]) Tree[K, V] {
	if t.root == nil {
		return t
	}
	n, _ := delMax(t.root)
	return Tree[K, V]{root: blacken(n)}
}

// The deletion helpers return the rebuilt subtree and whether it lost one
// unit of black height. A short subtree always has a black root. Its parent
// repairs the shortfall with fixLeft or fixRight, which either absorb it or
// pass it one level up.

// del requires k to be present below n.
func del[K, V any](n *node[K, V], k K, cmp Cmp[K]) (*node[K, V], bool) {
	if n == nil {
		panic(violation("deleted key %v not found on its search path", k))
	}
	switch cmp(k, n.key) {
	case LessThan:
		l, short := del(n.left, k, cmp)
		if !short {
			return mk(n.color, l, n.key, n.val, n.right), false
		}
		return fixLeft(n.color, l, n.key, n.val, n.right)
	case GreaterThan:
		r, short := del(n.right, k, cmp)
		if !short {
			return mk(n.color, n.left, n.key, n.val, r), false
		}
		return fixRight(n.color, n.left, n.key, n.val, r)
	default:
		return unlink(n)
	}
}

// unlink removes n itself from its subtree.
func unlink[K, V any](n *node[K, V]) (*node[K, V], bool) {
	switch {
	case n.left == nil && n.right == nil:
		return nil, n.color == black
	case n.left == nil:
		return lift(n, n.right), false
	case n.right == nil:
		return lift(n, n.left), false
	}
	// Two children: the successor takes n's place.
	succ := n.right.min()
	r, short := delMin(n.right)
	if !short {
		return mk(n.color, n.left, succ.key, succ.val, r), false
	}
	return fixRight(n.color, n.left, succ.key, succ.val, r)
}

// lift replaces a node that has a single child. Black balance only allows
// this shape as a black node over a red leaf.
func lift[K, V any](n, child *node[K, V]) *node[K, V] {
	if n.color == red || !isRed(child) || child.left != nil || child.right != nil {
		panic(violation("node %v with a single child is not a black node over a red leaf", n.key))
	}
	return recolorBlack(child)
}

func delMin[K, V any](n *node[K, V]) (*node[K, V], bool) {
	if n.left == nil {
		if n.right != nil {
			return lift(n, n.right), false
		}
		return nil, n.color == black
	}
	l, short := delMin(n.left)
	if !short {
		return mk(n.color, l, n.key, n.val, n.right), false
	}
	return fixLeft(n.color, l, n.key, n.val, n.right)
}

func delMax[K, V any](n *node[K, V]) (*node[K, V], bool) {
	if n.right == nil {
		if n.left != nil {
			return lift(n, n.left), false
		}
		return nil, n.color == black
	}
	r, short := delMax(n.right)
	if !short {
		return mk(n.color, n.left, n.key, n.val, r), false
	}
	return fixRight(n.color, n.left, n.key, n.val, r)
}
