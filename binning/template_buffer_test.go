package binning

import (
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/wtsi-hgi/bridgebuilder/alignio"
)

func TestTemplateBuffer_SingleReadFIFO(t *testing.T) {
	h := testHeader()
	ref := h.Refs()[0]
	tb := NewTemplateBuffer()

	id := alignio.TemplateID{QName: "q1"}
	br := BinnedRead{Alignment: rec("q1", ref, 100, 0, 30), Bin: Unchanged, OriginalPos: 100, ExpectedMateCount: 0}

	assert.False(t, tb.Contains(id))
	assert.NoError(t, tb.Enqueue(br, id))
	assert.True(t, tb.Contains(id))
	assert.Equal(t, 1, tb.Size())

	out := tb.PopFront()
	if assert.NotNil(t, out) {
		assert.Equal(t, "q1", out.Alignment.Name)
	}
	assert.Equal(t, 0, tb.Size())
	assert.False(t, tb.Contains(id))
}

func TestTemplateBuffer_SecondMateLinksIntoChain(t *testing.T) {
	h := testHeader()
	ref := h.Refs()[0]
	tb := NewTemplateBuffer()
	id := alignio.TemplateID{QName: "q1"}

	br1 := BinnedRead{Alignment: rec("q1", ref, 100, sam.Read1, 30), Bin: Unchanged, OriginalPos: 100, ExpectedMateCount: -1}
	br2 := BinnedRead{Alignment: rec("q1", ref, 150, sam.Read2, 30), Bin: Unchanged, OriginalPos: 150, ExpectedMateCount: 1}

	assert.NoError(t, tb.Enqueue(br1, id))
	assert.NoError(t, tb.Enqueue(br2, id))
	assert.Equal(t, 2, tb.Size())

	first := tb.PopFront()
	if assert.NotNil(t, first) {
		// expected_mate_count propagated from br2's definite value.
		assert.Equal(t, 1, first.ExpectedMateCount)
		assert.Equal(t, 1, first.ObservedMateCount)
	}
	assert.True(t, tb.Contains(id))

	second := tb.PopFront()
	if assert.NotNil(t, second) {
		assert.Equal(t, 1, second.ExpectedMateCount)
	}
	assert.False(t, tb.Contains(id))
}

func TestTemplateBuffer_BinDisagreementRewritesChainToRemap(t *testing.T) {
	h := testHeader()
	ref := h.Refs()[0]
	tb := NewTemplateBuffer()
	id := alignio.TemplateID{QName: "q1"}

	br1 := BinnedRead{Alignment: rec("q1", ref, 100, sam.Read1, 30), Bin: Unchanged, OriginalPos: 100, ExpectedMateCount: -1}
	br2 := BinnedRead{Alignment: rec("q1", ref, 150, sam.Read2, 30), Bin: Bridged, OriginalPos: 150, ExpectedMateCount: -1}

	assert.NoError(t, tb.Enqueue(br1, id))
	assert.NoError(t, tb.Enqueue(br2, id))

	first := tb.PopFront()
	second := tb.PopFront()
	assert.Equal(t, Remap, first.Bin)
	assert.Equal(t, Remap, second.Bin)
}

func TestTemplateBuffer_UnexpectedMatesIsFatal(t *testing.T) {
	h := testHeader()
	ref := h.Refs()[0]
	tb := NewTemplateBuffer()
	id := alignio.TemplateID{QName: "q1"}

	br1 := BinnedRead{Alignment: rec("q1", ref, 100, 0, 30), Bin: Unchanged, OriginalPos: 100, ExpectedMateCount: 0}
	assert.NoError(t, tb.Enqueue(br1, id))

	br2 := BinnedRead{Alignment: rec("q1", ref, 150, 0, 30), Bin: Unchanged, OriginalPos: 150, ExpectedMateCount: -1}
	err := tb.Enqueue(br2, id)
	assert.Error(t, err)
	berr, ok := err.(*Error)
	if assert.True(t, ok) {
		assert.Equal(t, ErrUnexpectedMates, berr.Kind)
		assert.Equal(t, 9, berr.ExitCode())
	}
}

func TestTemplateBuffer_DistinctTemplatesDoNotLink(t *testing.T) {
	h := testHeader()
	ref := h.Refs()[0]
	tb := NewTemplateBuffer()

	id1 := alignio.TemplateID{QName: "q1"}
	id2 := alignio.TemplateID{QName: "q2"}
	assert.NoError(t, tb.Enqueue(BinnedRead{Alignment: rec("q1", ref, 100, 0, 30), OriginalPos: 100, ExpectedMateCount: 0}, id1))
	assert.NoError(t, tb.Enqueue(BinnedRead{Alignment: rec("q2", ref, 150, 0, 30), OriginalPos: 150, ExpectedMateCount: 0}, id2))

	assert.Equal(t, 2, tb.Size())
	first := tb.PopFront()
	assert.Equal(t, "q1", first.Alignment.Name)
	assert.False(t, tb.Contains(id1))
	assert.True(t, tb.Contains(id2))
}
