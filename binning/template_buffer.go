package binning

import "github.com/wtsi-hgi/bridgebuilder/alignio"

// TemplateBuffer implements C3: an append-only FIFO of binned reads,
// indexed by template identity, that links same-template reads into
// mate-chains and enforces bin agreement within a chain (spec.md §4.3,
// invariants I1-I4).
type TemplateBuffer struct {
	arena *arena

	// chainHead maps a template identity to the handle of the first
	// link in its mate-chain (I1: constant-expected membership test).
	chainHead map[alignio.TemplateID]handle

	// order is the FIFO of every enqueued read, in insertion order
	// (I4); it is independent of the per-template chain links, which
	// only exist to find and rewrite a template's mates.
	order []handle
	front int
}

// NewTemplateBuffer returns an empty TemplateBuffer.
func NewTemplateBuffer() *TemplateBuffer {
	return &TemplateBuffer{
		arena:     newArena(),
		chainHead: make(map[alignio.TemplateID]handle),
	}
}

// Contains reports whether id has a chain currently in the buffer (I1).
func (tb *TemplateBuffer) Contains(id alignio.TemplateID) bool {
	_, ok := tb.chainHead[id]
	return ok
}

// Size returns the number of reads currently buffered.
func (tb *TemplateBuffer) Size() int {
	return len(tb.order) - tb.front
}

// Enqueue inserts br under template identity id, honouring I1-I4. It
// returns a fatal UnexpectedMates error if id's chain was declared to
// have no further mates (ExpectedMateCount == 0) and br is a genuine
// additional mate.
func (tb *TemplateBuffer) Enqueue(br BinnedRead, id alignio.TemplateID) error {
	br.id = id

	headH, exists := tb.chainHead[id]
	if !exists {
		h := tb.arena.alloc(br)
		tb.chainHead[id] = h
		tb.order = append(tb.order, h)
		return nil
	}

	// Walk the existing chain head-to-tail once to find the tail, the
	// chain's agreed-upon expected mate count (if any link knows it),
	// and whether any existing link's bin disagrees with the new one.
	var tailH handle
	chainExpected := -1
	differs := false
	for cur := headH; cur != noHandle; {
		link := tb.arena.get(cur)
		if link.ExpectedMateCount != -1 {
			chainExpected = link.ExpectedMateCount
		}
		if link.Bin != br.Bin {
			differs = true
		}
		tailH = cur
		cur = link.next
	}

	if chainExpected == 0 {
		rg, qname := id.ReadGroup, id.QName
		return newError(ErrUnexpectedMates, rg, qname,
			"template was declared to have no further mates but another arrived")
	}

	// Propagate expected_mate_count from whichever side has a definite
	// value to the side that doesn't (spec.md §4.3 step 2).
	newExpected := br.ExpectedMateCount
	if chainExpected == -1 && newExpected != -1 {
		chainExpected = newExpected
	}
	if chainExpected != -1 {
		if newExpected == -1 {
			br.ExpectedMateCount = chainExpected
		}
		for cur := headH; cur != noHandle; {
			link := tb.arena.get(cur)
			if link.ExpectedMateCount == -1 {
				link.ExpectedMateCount = chainExpected
			}
			link.ObservedMateCount++
			cur = link.next
		}
	} else {
		for cur := headH; cur != noHandle; {
			link := tb.arena.get(cur)
			link.ObservedMateCount++
			cur = link.next
		}
	}

	newH := tb.arena.alloc(br)
	newLink := tb.arena.get(newH)
	newLink.prev = tailH
	tb.arena.get(tailH).next = newH

	if differs {
		for cur := headH; cur != noHandle; {
			link := tb.arena.get(cur)
			link.Bin = Remap
			cur = link.next
		}
	}

	tb.order = append(tb.order, newH)
	return nil
}

// PeekFront returns the head of the FIFO without removing it, or nil if
// the buffer is empty.
func (tb *TemplateBuffer) PeekFront() *BinnedRead {
	if tb.Size() == 0 {
		return nil
	}
	return tb.arena.get(tb.order[tb.front])
}

// PopFront removes and returns the head of the FIFO, unlinking it from
// its mate-chain and releasing its arena slot. It returns nil if the
// buffer is empty.
func (tb *TemplateBuffer) PopFront() *BinnedRead {
	if tb.Size() == 0 {
		return nil
	}
	h := tb.order[tb.front]
	tb.front++
	if tb.front == len(tb.order) {
		tb.order = tb.order[:0]
		tb.front = 0
	}

	link := tb.arena.get(h)
	out := *link

	if link.next == noHandle {
		delete(tb.chainHead, link.id)
	} else {
		tb.chainHead[link.id] = link.next
		tb.arena.get(link.next).prev = noHandle
	}

	tb.arena.release(h)
	return &out
}
