package alignio

import "github.com/biogo/hts/sam"

// MappingQuality is the normalised mapping-quality state the Binner
// switches on. It collapses the raw UNMAP flag and the 0-254/255 MAPQ
// range into the three cases spec.md §3 names.
type MappingQuality struct {
	state mqState
	qual  byte
}

type mqState int8

const (
	mqUnmapped mqState = iota
	mqZero
	mqPositive
)

// Unmapped is the MQ state for an alignment with the UNMAP flag set, or
// with a reported MAPQ of 255 ("unavailable"), which is coerced to
// Unmapped for binning purposes per spec.md §3.
var Unmapped = MappingQuality{state: mqUnmapped}

// Zero is the MQ state for a mapped alignment with reported MAPQ == 0.
var Zero = MappingQuality{state: mqZero}

// Positive returns the MQ state for a mapped alignment with reported
// 0 < MAPQ <= 254.
func Positive(q byte) MappingQuality { return MappingQuality{state: mqPositive, qual: q} }

// IsUnmapped reports whether mq is the Unmapped state.
func (mq MappingQuality) IsUnmapped() bool { return mq.state == mqUnmapped }

// IsZero reports whether mq is the Zero state.
func (mq MappingQuality) IsZero() bool { return mq.state == mqZero }

// IsPositive reports whether mq is the Positive state, and if so returns
// the reported quality.
func (mq MappingQuality) IsPositive() (byte, bool) {
	return mq.qual, mq.state == mqPositive
}

func (mq MappingQuality) String() string {
	switch mq.state {
	case mqUnmapped:
		return "unmapped"
	case mqZero:
		return "zero"
	default:
		return "positive"
	}
}

// ClassifyMapQ computes the MQ abstraction for r. A nil r classifies as
// Unmapped, matching the treatment of an absent bridge record.
func ClassifyMapQ(r *sam.Record) MappingQuality {
	if r == nil || r.Flags&sam.Unmapped != 0 {
		return Unmapped
	}
	if r.MapQ == 255 {
		return Unmapped
	}
	if r.MapQ == 0 {
		return Zero
	}
	return Positive(r.MapQ)
}
