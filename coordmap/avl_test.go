package coordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSgn(t *testing.T) {
	assert.Equal(t, int8(-1), sgn(-5))
	assert.Equal(t, int8(0), sgn(0))
	assert.Equal(t, int8(1), sgn(7))
}

// height computes a node's height for balance-factor assertions; it's
// test-only scaffolding, not part of the AVL implementation itself
// (which maintains balance incrementally, never by recomputing it).
func height(n *node) int {
	if n == nil {
		return 0
	}
	l, r := height(n.left), height(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

func balanced(t *testing.T, n *node) {
	if n == nil {
		return
	}
	bf := height(n.right) - height(n.left)
	assert.GreaterOrEqual(t, bf, -1)
	assert.LessOrEqual(t, bf, 1)
	assert.Equal(t, int8(bf), n.balance)
	balanced(t, n.left)
	balanced(t, n.right)
}

func TestTreeInsert_StaysBalanced_AscendingKeys(t *testing.T) {
	tr := &tree{}
	for i := 0; i < 100; i++ {
		tr.insert(interval{fromStart: i * 10, fromEnd: i*10 + 5, toChrom: "chr1", toStart: i * 10, toEnd: i*10 + 5})
	}
	balanced(t, tr.root)
}

func TestTreeInsert_StaysBalanced_DescendingKeys(t *testing.T) {
	tr := &tree{}
	for i := 99; i >= 0; i-- {
		tr.insert(interval{fromStart: i * 10, fromEnd: i*10 + 5, toChrom: "chr1", toStart: i * 10, toEnd: i*10 + 5})
	}
	balanced(t, tr.root)
}

func TestTreeInsert_TriggersAllFourRotationShapes(t *testing.T) {
	// LL
	llTree := &tree{}
	for _, k := range []int{30, 20, 10} {
		llTree.insert(interval{fromStart: k, fromEnd: k, toStart: k, toEnd: k})
	}
	balanced(t, llTree.root)
	assert.Equal(t, 20, llTree.root.fromStart)

	// RR
	rrTree := &tree{}
	for _, k := range []int{10, 20, 30} {
		rrTree.insert(interval{fromStart: k, fromEnd: k, toStart: k, toEnd: k})
	}
	balanced(t, rrTree.root)
	assert.Equal(t, 20, rrTree.root.fromStart)

	// LR
	lrTree := &tree{}
	for _, k := range []int{30, 10, 20} {
		lrTree.insert(interval{fromStart: k, fromEnd: k, toStart: k, toEnd: k})
	}
	balanced(t, lrTree.root)
	assert.Equal(t, 20, lrTree.root.fromStart)

	// RL
	rlTree := &tree{}
	for _, k := range []int{10, 30, 20} {
		rlTree.insert(interval{fromStart: k, fromEnd: k, toStart: k, toEnd: k})
	}
	balanced(t, rlTree.root)
	assert.Equal(t, 20, rlTree.root.fromStart)
}

func TestTreeFind_CorrectedSingleComparatorFormulation(t *testing.T) {
	tr := &tree{}
	// Two disjoint intervals arranged so that the old buggy lookup
	// (start-compare for descent, independent end-compare for
	// containment) would mis-route a query for a point inside the
	// left child after visiting the root.
	tr.insert(interval{fromStart: 100, fromEnd: 200, toStart: 1100, toEnd: 1200})
	tr.insert(interval{fromStart: 0, fromEnd: 50, toStart: 1000, toEnd: 1050})

	n := tr.find(25)
	if assert.NotNil(t, n) {
		assert.Equal(t, 0, n.fromStart)
	}

	n = tr.find(150)
	if assert.NotNil(t, n) {
		assert.Equal(t, 100, n.fromStart)
	}

	assert.Nil(t, tr.find(75))
}
