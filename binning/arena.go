package binning

import (
	"github.com/biogo/hts/sam"
	"github.com/wtsi-hgi/bridgebuilder/alignio"
)

// handle is a small integer identifying a BinnedRead owned by an arena.
// Per spec.md §9's memory-safe re-architecture of the source's raw
// doubly-linked pointers, mate-chain links are handle references into
// the arena's backing slice rather than pointers, and the sentinel
// noHandle (-1) plays the role of a nil link end.
type handle int32

const noHandle handle = -1

// BinnedRead is the output of the Binner (spec.md §3): an alignment
// together with its tentative bin, the original alignment's coordinates
// (needed by FlushController even when the emitted alignment is the
// bridge's), and the mate-count bookkeeping and chain links
// TemplateBuffer maintains.
type BinnedRead struct {
	Alignment *sam.Record
	Bin       Bin

	OriginalRefID int
	OriginalPos   int

	ExpectedMateCount int
	ObservedMateCount int

	prev, next handle
	id         alignio.TemplateID
}

// arena is the owning store of buffered BinnedReads. Disposal is
// dropping a handle's slot when it's popped; the arena itself is
// discarded in bulk on fatal-error unwind (spec.md §5 "Resource
// acquisition").
type arena struct {
	reads []BinnedRead
	live  []bool
	free  []handle
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) alloc(br BinnedRead) handle {
	br.prev, br.next = noHandle, noHandle
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.reads[h] = br
		a.live[h] = true
		return h
	}
	a.reads = append(a.reads, br)
	a.live = append(a.live, true)
	return handle(len(a.reads) - 1)
}

func (a *arena) get(h handle) *BinnedRead {
	if h == noHandle || !a.live[h] {
		return nil
	}
	return &a.reads[h]
}

// release marks h's slot as free for reuse and forgets its payload so
// the underlying *sam.Record can be garbage-collected.
func (a *arena) release(h handle) {
	if h == noHandle || !a.live[h] {
		return
	}
	a.live[h] = false
	a.reads[h] = BinnedRead{prev: noHandle, next: noHandle}
	a.free = append(a.free, h)
}
