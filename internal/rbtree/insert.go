package rbtree

// Set returns a tree holding every entry of t plus (k, v). An existing entry
// for k is replaced. Only the nodes on the search path are copied.
func Set[K, V any](t Tree[K, V], k K, v V, cmp Cmp[K]) Tree[K, V] {
	// The rebuilt path may end in a red root; the root is always black.
	return Tree[K, V]{root: blacken(insert(t.root, k, v, cmp))}
}

func insert[K, V any](n *node[K, V], k K, v V, cmp Cmp[K]) *node[K, V] {
	if n == nil {
		return mk[K, V](red, nil, k, v, nil)
	}
	switch cmp(k, n.key) {
	case LessThan:
		return balanceLeft(n.color, insert(n.left, k, v, cmp), n.key, n.val, n.right)
	case GreaterThan:
		return balanceRight(n.color, n.left, n.key, n.val, insert(n.right, k, v, cmp))
	default:
		return mk(n.color, n.left, k, v, n.right)
	}
}
