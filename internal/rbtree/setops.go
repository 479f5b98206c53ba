package rbtree

// Union returns a tree holding the keys of both a and b. Where a key is
// present in both, the entry from b wins.
func Union[K, V any](a, b Tree[K, V], cmp Cmp[K]) Tree[K, V] {
	return Tree[K, V]{root: blacken(union(a.root, b.root, cmp))}
}

// Intersect returns a tree holding the keys present in both a and b, with
// the values from b.
func Intersect[K, V any](a, b Tree[K, V], cmp Cmp[K]) Tree[K, V] {
	return Tree[K, V]{root: blacken(intersect(a.root, b.root, cmp))}
}

// Diff returns a tree holding the entries of a whose keys are absent from b.
func Diff[K, V any](a, b Tree[K, V], cmp Cmp[K]) Tree[K, V] {
	return Tree[K, V]{root: blacken(diff(a.root, b.root, cmp))}
}

// All three split a around the root of b, recurse on matching halves and
// put the results back together with join or merge.

func union[K, V any](a, b *node[K, V], cmp Cmp[K]) *node[K, V] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	l, _, r := split(a, b.key, cmp)
	return join(union(l, b.left, cmp), b.key, b.val, union(r, b.right, cmp))
}

func intersect[K, V any](a, b *node[K, V], cmp Cmp[K]) *node[K, V] {
	if a == nil || b == nil {
		return nil
	}
	l, found, r := split(a, b.key, cmp)
	il := intersect(l, b.left, cmp)
	ir := intersect(r, b.right, cmp)
	if found != nil {
		return join(il, b.key, b.val, ir)
	}
	return merge(il, ir)
}

func diff[K, V any](a, b *node[K, V], cmp Cmp[K]) *node[K, V] {
	if a == nil {
		return nil
	}
	if b == nil {
		return a
	}
	l, _, r := split(a, b.key, cmp)
	return merge(diff(l, b.left, cmp), diff(r, b.right, cmp))
}
