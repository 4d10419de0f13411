package binning

import (
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/assert"
)

func TestBinner_SecondaryIsDiscarded(t *testing.T) {
	h := testHeader()
	o := rec("q1", h.Refs()[0], 100, sam.Paired|sam.Secondary, 30)

	bnr := NewBinner(&Config{})
	br, err := bnr.Bin(o, nil)
	assert.NoError(t, err)
	assert.Nil(t, br)
}

func TestBinner_DecisionTable(t *testing.T) {
	h := testHeader()
	ref := h.Refs()[0]

	cases := []struct {
		name    string
		oFlags  sam.Flags
		oMapQ   byte
		bridge  bool
		bFlags  sam.Flags
		bMapQ   byte
		want    Bin
	}{
		{"unmapped/no-bridge", sam.Paired | sam.Unmapped, 0, false, 0, 0, Unchanged},
		{"unmapped/bridge-unmapped", sam.Paired | sam.Unmapped, 0, true, sam.Unmapped, 0, Unchanged},
		{"unmapped/bridge-mapped", sam.Paired | sam.Unmapped, 0, true, 0, 20, Bridged},

		{"mapq0/no-bridge", sam.Paired, 0, false, 0, 0, Unchanged},
		{"mapq0/bridge-unmapped", sam.Paired, 0, true, sam.Unmapped, 0, Unchanged},
		{"mapq0/bridge-zero", sam.Paired, 0, true, 0, 0, Unchanged},
		{"mapq0/bridge-positive", sam.Paired, 0, true, 0, 10, Remap},

		{"positive/no-bridge", sam.Paired, 30, false, 0, 0, Unchanged},
		{"positive/bridge-unmapped", sam.Paired, 30, true, sam.Unmapped, 0, Unchanged},
		{"positive/bridge-zero", sam.Paired, 30, true, 0, 0, Remap},
		{"positive/bridge-positive", sam.Paired, 30, true, 0, 10, Remap},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := rec("q1", ref, 100, c.oFlags|sam.Read1, c.oMapQ)
			var b *sam.Record
			if c.bridge {
				b = rec("q1", ref, 100, c.bFlags|sam.Read1, c.bMapQ)
			}

			bnr := NewBinner(&Config{})
			br, err := bnr.Bin(o, b)
			assert.NoError(t, err)
			if assert.NotNil(t, br) {
				assert.Equal(t, c.want, br.Bin)
			}
		})
	}
}

func TestBinner_CoordDeletedForcesRemap(t *testing.T) {
	h := testHeader()
	ref := h.Refs()[0]
	o := rec("q1", ref, 100, sam.Paired|sam.Read1, 30)

	cfg := &Config{CoordDeleted: func(*sam.Record) bool { return true }}
	bnr := NewBinner(cfg)
	br, err := bnr.Bin(o, nil)
	assert.NoError(t, err)
	if assert.NotNil(t, br) {
		assert.Equal(t, Remap, br.Bin)
	}
}

func TestBinner_BridgedFixupsCopyFlagsAndFI(t *testing.T) {
	h := testHeader()
	ref := h.Refs()[0]
	o := rec("q1", ref, 100, sam.Paired|sam.Read1|sam.Unmapped, 0)
	o.AuxFields = append(o.AuxFields, newAux("FI", int(1)))

	b := rec("q1", ref, 100, sam.Paired|sam.Read2, 20)

	bnr := NewBinner(&Config{})
	br, err := bnr.Bin(o, b)
	assert.NoError(t, err)
	if assert.NotNil(t, br) {
		assert.Equal(t, Bridged, br.Bin)
		assert.Same(t, b, br.Alignment)
		assert.True(t, br.Alignment.Flags&sam.Read1 != 0)
		assert.True(t, br.Alignment.Flags&sam.Read2 == 0)
		fi, ok := alignioGetInt(br.Alignment, "FI")
		assert.True(t, ok)
		assert.Equal(t, 1, fi)
	}
}

func TestBinner_OriginalCoordinatesAlwaysFromOriginal(t *testing.T) {
	h := testHeader()
	o := rec("q1", h.Refs()[0], 100, sam.Paired|sam.Read1, 0)
	b := rec("q1", h.Refs()[1], 500, sam.Paired|sam.Read2, 20)

	bnr := NewBinner(&Config{})
	br, err := bnr.Bin(o, b)
	assert.NoError(t, err)
	if assert.NotNil(t, br) {
		assert.Equal(t, 0, br.OriginalRefID)
		assert.Equal(t, 100, br.OriginalPos)
	}
}

func TestBinner_SegmentIndexFatal(t *testing.T) {
	h := testHeader()
	o := rec("q1", h.Refs()[0], 100, sam.Paired|sam.Read1|sam.Read2, 30)

	bnr := NewBinner(&Config{})
	_, err := bnr.Bin(o, nil)
	assert.Error(t, err)
	berr, ok := err.(*Error)
	if assert.True(t, ok) {
		assert.Equal(t, ErrSegmentIndex, berr.Kind)
		assert.Equal(t, 7, berr.ExitCode())
	}
}

func TestBinner_UnpairedYieldsZeroExpectedMates(t *testing.T) {
	h := testHeader()
	o := rec("q1", h.Refs()[0], 100, 0, 30) // unpaired: 1 segment, 0 mates expected

	bnr := NewBinner(&Config{})
	br, err := bnr.Bin(o, nil)
	assert.NoError(t, err)
	if assert.NotNil(t, br) {
		assert.Equal(t, 0, br.ExpectedMateCount)
	}
}

func TestBinner_UnknownSegmentCountWarnsAndYieldsUnknownMateCount(t *testing.T) {
	h := testHeader()
	// Paired, but neither READ1 nor READ2 set and no TC tag: segment
	// count is unknowable without being the fatal both-set case.
	o := rec("q1", h.Refs()[0], 100, sam.Paired, 30)

	var warned bool
	cfg := &Config{Warnf: loggerFunc(func(format string, args ...interface{}) { warned = true })}

	bnr := NewBinner(cfg)
	br, err := bnr.Bin(o, nil)
	assert.NoError(t, err)
	if assert.NotNil(t, br) {
		assert.Equal(t, -1, br.ExpectedMateCount)
	}
	assert.True(t, warned)
}

type loggerFunc func(format string, args ...interface{})

func (f loggerFunc) Printf(format string, args ...interface{}) { f(format, args...) }

// alignioGetInt mirrors alignio.GetInt's narrowest-int-width handling,
// kept local so this test doesn't need to import alignio just to read
// back a tag it already knows the shape of.
func alignioGetInt(r *sam.Record, tag string) (int, bool) {
	t := sam.NewTag(tag)
	a, ok := r.Tag(t[:])
	if !ok {
		return 0, false
	}
	switch v := a.Value().(type) {
	case int8:
		return int(v), true
	case uint8:
		return int(v), true
	case int16:
		return int(v), true
	case uint16:
		return int(v), true
	case int32:
		return int(v), true
	case uint32:
		return int(v), true
	default:
		return 0, false
	}
}
