package binning

import (
	"github.com/biogo/hts/sam"
	"github.com/wtsi-hgi/bridgebuilder/alignio"
)

// Binner implements C2: a pure per-read binning decision from an
// original alignment and an optional matched bridge alignment to an
// optional BinnedRead, per spec.md §4.2's decision table.
type Binner struct {
	cfg *Config
}

// NewBinner returns a Binner bound to cfg. cfg must outlive the Binner.
func NewBinner(cfg *Config) *Binner {
	return &Binner{cfg: cfg}
}

// Bin applies the decision table of spec.md §4.2 to (o, b) and returns
// the resulting BinnedRead, or (nil, nil) when the read is discarded
// (secondary alignments). err is non-nil only for the fatal SegmentIndex
// condition.
func (bnr *Binner) Bin(o, b *sam.Record) (*BinnedRead, error) {
	if o.Flags&sam.Unmapped == 0 && o.Flags&sam.Secondary != 0 {
		return nil, nil
	}

	bin := bnr.decide(o, b)

	chosen := o
	if bin == Bridged {
		chosen = b
		applyBridgedFixups(o, b, bnr.cfg.IgnoreRG)
	}

	expected, err := bnr.expectedMateCount(chosen)
	if err != nil {
		return nil, err
	}

	return &BinnedRead{
		Alignment:         chosen,
		Bin:               bin,
		OriginalRefID:     o.Ref.ID(),
		OriginalPos:       o.Pos,
		ExpectedMateCount: expected,
		ObservedMateCount: 0,
		prev:              noHandle,
		next:              noHandle,
	}, nil
}

// decide implements the decision table rows 2-9 of spec.md §4.2 (row 1,
// Discard, is handled by the caller before mq classification matters).
func (bnr *Binner) decide(o, b *sam.Record) Bin {
	if bnr.cfg.coordDeleted(o) {
		return Remap
	}

	oq := alignio.ClassifyMapQ(o)
	bq := alignio.ClassifyMapQ(b)
	bridgeAbsent := b == nil

	switch {
	case oq.IsUnmapped():
		if bridgeAbsent || bq.IsUnmapped() {
			return Unchanged
		}
		return Bridged

	case oq.IsZero():
		if bridgeAbsent || bq.IsUnmapped() || bq.IsZero() {
			return Unchanged
		}
		return Remap

	default: // oq.IsPositive()
		if bridgeAbsent || bq.IsUnmapped() {
			return Unchanged
		}
		return Remap
	}
}

// applyBridgedFixups mutates b in place per spec.md §4.2: PAIRED,
// READ1, READ2 flags are copied from o; FI is copied from o,
// overwriting any pre-existing FI on b; RG is copied from o when
// ignoreRG is set.
func applyBridgedFixups(o, b *sam.Record, ignoreRG bool) {
	alignio.CopyPairingFlags(b, o)
	if fi, ok := alignio.GetInt(o, alignio.FITag); ok {
		_ = alignio.SetIntTag(b, alignio.FITag, fi)
	}
	if ignoreRG {
		if rg, ok := alignio.GetString(o, alignio.RGTag); ok {
			_ = alignio.SetStringTag(b, alignio.RGTag, rg)
		}
	}
}

// expectedMateCount computes (template_segment_count - 1) per spec.md
// §4.2, returning -1 for "unknown" rather than -2, since -1 is the
// data model's sentinel regardless of why the count is unknown.
func (bnr *Binner) expectedMateCount(chosen *sam.Record) (int, error) {
	segments, err := bnr.segmentCount(chosen)
	if err != nil {
		return 0, err
	}
	if segments < 0 {
		return -1, nil
	}
	return segments - 1, nil
}

func (bnr *Binner) segmentCount(r *sam.Record) (int, error) {
	if tc, ok := alignio.GetInt(r, alignio.TCTag); ok {
		return tc, nil
	}
	if r.Flags&sam.Paired == 0 {
		return 1, nil
	}

	read1 := r.Flags&sam.Read1 != 0
	read2 := r.Flags&sam.Read2 != 0
	if read1 != read2 {
		return 2, nil
	}

	if read1 && read2 {
		if _, ok := alignio.GetInt(r, alignio.FITag); !ok {
			rg, _ := alignio.GetString(r, alignio.RGTag)
			return 0, newError(ErrSegmentIndex, rg, r.Name,
				"both READ1 and READ2 set without FI or TC")
		}
	}

	rg, _ := alignio.GetString(r, alignio.RGTag)
	bnr.cfg.warnf("unknown template segment count for %s (rg=%q): neither TC nor an unambiguous READ1/READ2 pairing is present", r.Name, rg)
	return -1, nil
}
