package rbtree

func (n *node[K, V]) find(k K, cmp Cmp[K]) *node[K, V] {
	for n != nil {
		switch cmp(k, n.key) {
		case LessThan:
			n = n.left
		case GreaterThan:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

func (n *node[K, V]) min() *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *node[K, V]) max() *node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// Get returns the value stored under k. The boolean is false if k is absent.
func Get[K, V any](t Tree[K, V], k K, cmp Cmp[K]) (V, bool) {
	if n := t.root.find(k, cmp); n != nil {
		return n.val, true
	}
	var zero V
	return zero, false
}

// Has reports whether k is present in t.
func Has[K, V any](t Tree[K, V], k K, cmp Cmp[K]) bool {
	return t.root.find(k, cmp) != nil
}

// Min returns the entry with the smallest key. It panics on the empty tree.
func Min[K, V any](t Tree[K, V]) (K, V) {
	if t.root == nil {
		panic(violation("min of an empty tree"))
	}
	n := t.root.min()
	return n.key, n.val
}

// Max returns the entry with the largest key. It panics on the empty tree.
func Max[K, V any](t Tree[K, V]) (K, V) {
	if t.root == nil {
		panic(violation("max of an empty tree"))
	}
	n := t.root.max()
	return n.key, n.val
}

// Floor returns the entry with the largest key less than or equal to k.
func Floor[K, V any](t Tree[K, V], k K, cmp Cmp[K]) (K, V, bool) {
	var best *node[K, V]
	for n := t.root; n != nil; {
		switch cmp(k, n.key) {
		case LessThan:
			n = n.left
		case GreaterThan:
			best, n = n, n.right
		default:
			return n.key, n.val, true
		}
	}
	if best == nil {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	return best.key, best.val, true
}

// Ceiling returns the entry with the smallest key greater than or equal to k.
func Ceiling[K, V any](t Tree[K, V], k K, cmp Cmp[K]) (K, V, bool) {
	var best *node[K, V]
	for n := t.root; n != nil; {
		switch cmp(k, n.key) {
		case LessThan:
			best, n = n, n.left
		case GreaterThan:
			n = n.right
		default:
			return n.key, n.val, true
		}
	}
	if best == nil {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	return best.key, best.val, true
}
