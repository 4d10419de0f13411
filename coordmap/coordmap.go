package coordmap

import "fmt"

// Point is a single (chromosome, 0-based position) coordinate.
type Point struct {
	Chrom string
	Pos   int
}

// CoordMap is a keyed collection of per-chromosome AVL interval trees
// (spec.md §4.5). It is built once, then queried read-only — no
// locking is needed per spec.md §5's "constructed once and then
// read-only" resource policy.
type CoordMap struct {
	trees map[string]*tree
}

// New returns an empty CoordMap, ready for Insert calls.
func New() *CoordMap {
	return &CoordMap{trees: make(map[string]*tree)}
}

// Insert adds one liftover mapping line's worth of data: the source
// range [fromStart, fromEnd] on fromChrom maps to the target range
// [toStart, toEnd] on toChrom. Per spec.md §4.5, if toStart > toEnd
// they are swapped before being stored, since the mapping is a
// translation, not an inversion.
func (m *CoordMap) Insert(fromChrom string, fromStart, fromEnd int, toChrom string, toStart, toEnd int) error {
	if fromEnd < fromStart {
		return fmt.Errorf("coordmap: invalid source range [%d, %d] on %s", fromStart, fromEnd, fromChrom)
	}
	if toStart > toEnd {
		toStart, toEnd = toEnd, toStart
	}

	t, ok := m.trees[fromChrom]
	if !ok {
		t = &tree{}
		m.trees[fromChrom] = t
	}
	t.insert(interval{
		fromStart: fromStart,
		fromEnd:   fromEnd,
		toChrom:   toChrom,
		toStart:   toStart,
		toEnd:     toEnd,
	})
	return nil
}

// Lookup translates p through the map, returning the mapped point and
// true if p's chromosome has a tree and some interval in it contains
// p.Pos (fromStart <= p.Pos <= fromEnd), or the zero Point and false
// otherwise.
func (m *CoordMap) Lookup(p Point) (Point, bool) {
	t, ok := m.trees[p.Chrom]
	if !ok {
		return Point{}, false
	}
	n := t.find(p.Pos)
	if n == nil {
		return Point{}, false
	}
	return Point{Chrom: n.toChrom, Pos: n.translate(p.Pos)}, true
}
