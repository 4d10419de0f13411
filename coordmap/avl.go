package coordmap

// interval is a single liftover mapping: the source range
// [fromStart, fromEnd] on one chromosome and the corresponding target
// range on another, already orientation-normalised so toStart <=
// toEnd (spec.md §4.5's "if to_start > to_end, swap them first").
type interval struct {
	fromStart, fromEnd int
	toChrom            string
	toStart, toEnd      int
}

// node is an AVL tree node keyed by fromStart. balance is
// height(right) - height(left), maintained incrementally rather than
// recomputed from subtree heights, per spec.md §4.5's description of
// the source's path-recording insert algorithm.
type node struct {
	interval
	left, right *node
	balance     int8
}

// tree is a single chromosome's AVL tree of non-overlapping intervals.
type tree struct {
	root *node
}

// sgn is the mathematically correct signum: sgn(0) == 0. spec.md §9
// flags the source's sign function as returning 1 for a zero input,
// exercised during AVL balance updates; this resolves that open
// question in favour of correctness. insert and rebalanceAfterInsert
// do not call it: the descent direction uses insert's own tie-break
// below, and balance factors are updated from the recorded
// pathStep.dir.
func sgn(x int) int8 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

type pathStep struct {
	n   *node
	dir int8 // -1: descended left, +1: descended right
}

// insert adds iv to t, rebalancing as needed. Intervals are assumed
// non-overlapping per chromosome (spec.md §4.5, a source-authority
// assumption); on the degenerate case of two intervals sharing the
// same fromStart, insert deterministically descends right — a policy
// choice independent of sgn's correctness, documented here per
// spec.md §9's instruction to record the chosen behaviour.
func (t *tree) insert(iv interval) {
	if t.root == nil {
		t.root = &node{interval: iv}
		return
	}

	var path []pathStep
	cur := t.root
	for {
		var dir int8
		if iv.fromStart < cur.fromStart {
			dir = -1
		} else {
			dir = 1
		}
		path = append(path, pathStep{cur, dir})

		var next *node
		if dir < 0 {
			next = cur.left
		} else {
			next = cur.right
		}
		if next == nil {
			leaf := &node{interval: iv}
			if dir < 0 {
				cur.left = leaf
			} else {
				cur.right = leaf
			}
			break
		}
		cur = next
	}

	t.rebalanceAfterInsert(path)
}

// rebalanceAfterInsert walks path from the new leaf's parent back
// toward the root, updating balance factors by ±1 per spec.md §4.5,
// stopping at the first node whose balance becomes 0 (its subtree
// height didn't change) or the first node requiring rotation.
func (t *tree) rebalanceAfterInsert(path []pathStep) {
	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		p.n.balance += p.dir
		if p.n.balance == 0 {
			return
		}
		if p.n.balance == 2 || p.n.balance == -2 {
			var parent *node
			var parentDir int8
			if i > 0 {
				parent = path[i-1].n
				parentDir = path[i-1].dir
			}
			newSubtreeRoot := rebalance(p.n)
			t.reattach(parent, parentDir, newSubtreeRoot)
			return
		}
		// balance is now ±1: this subtree's height grew by one;
		// continue propagating toward the root.
	}
}

func (t *tree) reattach(parent *node, parentDir int8, newRoot *node) {
	switch {
	case parent == nil:
		t.root = newRoot
	case parentDir < 0:
		parent.left = newRoot
	default:
		parent.right = newRoot
	}
}

// rebalance applies the single or double rotation needed to restore
// the AVL property at x, whose balance is ±2, per spec.md §4.5: a
// double rotation is used when the deeper child's balance sign
// disagrees with the imbalance direction.
func rebalance(x *node) *node {
	if x.balance == -2 {
		y := x.left
		if y.balance == 1 {
			return rotateLeftRight(x, y)
		}
		return rotateRight(x, y)
	}
	y := x.right
	if y.balance == -1 {
		return rotateRightLeft(x, y)
	}
	return rotateLeft(x, y)
}

// rotateRight is the single LL rotation: y is x.left.
func rotateRight(x, y *node) *node {
	x.left = y.right
	y.right = x
	if y.balance == 0 {
		x.balance = -1
		y.balance = 1
	} else {
		x.balance = 0
		y.balance = 0
	}
	return y
}

// rotateLeft is the single RR rotation: y is x.right.
func rotateLeft(x, y *node) *node {
	x.right = y.left
	y.left = x
	if y.balance == 0 {
		x.balance = 1
		y.balance = -1
	} else {
		x.balance = 0
		y.balance = 0
	}
	return y
}

// rotateLeftRight is the double LR rotation: y is x.left, z is y.right.
func rotateLeftRight(x, y *node) *node {
	z := y.right
	y.right = z.left
	z.left = y
	x.left = z.right
	z.right = x
	switch z.balance {
	case 1:
		x.balance = 0
		y.balance = -1
	case -1:
		x.balance = 1
		y.balance = 0
	default:
		x.balance = 0
		y.balance = 0
	}
	z.balance = 0
	return z
}

// rotateRightLeft is the double RL rotation: y is x.right, z is y.left.
func rotateRightLeft(x, y *node) *node {
	z := y.left
	y.left = z.right
	z.right = y
	x.right = z.left
	z.left = x
	switch z.balance {
	case -1:
		x.balance = 0
		y.balance = 1
	case 1:
		x.balance = -1
		y.balance = 0
	default:
		x.balance = 0
		y.balance = 0
	}
	z.balance = 0
	return z
}
