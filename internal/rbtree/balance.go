package rbtree

// balanceLeft builds the node (c, l, k, v, r) where l may have just gained a
// red-red pair at its top. A black node over such a pair is restructured
// into a red node with two black children; its black height is unchanged.
func balanceLeft[K, V any](c color, l *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	if c == black && isRed(l) {
		switch {
		case isRed(l.left):
			/*
				      z(B)              y(R)
				     /   \             /    \
				   y(R)   d    →     x(B)   z(B)
				  /   \             /  \    /  \
				x(R)   c           a    b  c    d
			*/
			return mk(red, recolorBlack(l.left), l.key, l.val, mk(black, l.right, k, v, r))
		case isRed(l.right):
			lr := l.right
			return mk(red, mk(black, l.left, l.key, l.val, lr.left), lr.key, lr.val, mk(black, lr.right, k, v, r))
		}
	}
	return mk(c, l, k, v, r)
}

// balanceRight is the mirror image of balanceLeft.
func balanceRight[K, V any](c color, l *node[K, V], k K, v V, r *node[K, V]) *node[K, V] {
	if c == black && isRed(r) {
		switch {
		case isRed(r.right):
			return mk(red, mk(black, l, k, v, r.left), r.key, r.val, recolorBlack(r.right))
		case isRed(r.left):
			rl := r.left
			return mk(red, mk(black, l, k, v, rl.left), rl.key, rl.val, mk(black, rl.right, r.key, r.val, r.right))
		}
	}
	return mk(c, l, k, v, r)
}

// fixLeft rebuilds the node (c, l, k, v, s) after a deletion left l one
// black node shorter than its sibling s. It borrows black height from s and
// reports whether the rebuilt subtree is itself still short.
func fixLeft[K, V any](c color, l *node[K, V], k K, v V, s *node[K, V]) (*node[K, V], bool) {
	if s == nil {
		panic(violation("short left subtree under %v has no sibling", k))
	}
	if isRed(s) {
		// The parent is black. Rotate the red sibling up and settle the
		// shortfall one level down, where the parent is now red.
		inner, _ := fixLeft(red, l, k, v, s.left)
		return mk(black, inner, s.key, s.val, s.right), false
	}
	switch {
	case isBlackWithRedRightChild(s):
		return mk(c, mk(black, l, k, v, s.left), s.key, s.val, recolorBlack(s.right)), false
	case isBlackWithRedLeftChild(s):
		sl := s.left
		return mk(c, mk(black, l, k, v, sl.left), sl.key, sl.val, mk(black, sl.right, s.key, s.val, s.right)), false
	default:
		// Both nephews are black: move the sibling down a level. A red
		// parent turns black and absorbs the loss, a black one passes it up.
		return mk(black, l, k, v, recolorRed(s)), c == black
	}
}

// fixRight is the mirror image of fixLeft for a short right subtree r with
// sibling s on the left.
func fixRight[K, V any](c color, s *node[K, V], k K, v V, r *node[K, V]) (*node[K, V], bool) {
	if s == nil {
		panic(violation("short right subtree under %v has no sibling", k))
	}
	if isRed(s) {
		inner, _ := fixRight(red, s.right, k, v, r)
		return mk(black, s.left, s.key, s.val, inner), false
	}
	switch {
	case isBlackWithRedLeftChild(s):
		return mk(c, recolorBlack(s.left), s.key, s.val, mk(black, s.right, k, v, r)), false
	case isBlackWithRedRightChild(s):
		sr := s.right
		return mk(c, mk(black, s.left, s.key, s.val, sr.left), sr.key, sr.val, mk(black, sr.right, k, v, r)), false
	default:
		return mk(black, recolorRed(s), k, v, r), c == black
	}
}

// Sibling shapes seen by fixLeft and fixRight. A black sibling with a red
// child on the far side needs one rotation, on the near side two; with no
// red child it is recolored.

func isBlackWithRedLeftChild[K, V any](n *node[K, V]) bool {
	return isBlack(n) && n != nil && isRed(n.left)
}

func isBlackWithRedRightChild[K, V any](n *node[K, V]) bool {
	return isBlack(n) && n != nil && isRed(n.right)
}
