package binning

// Bin is a read's destination output stream (spec.md §3).
type Bin int8

const (
	// Unchanged reads are emitted with their original alignment untouched.
	Unchanged Bin = iota
	// Bridged reads are emitted with the bridge's alignment substituted in,
	// after the tag/flag fix-ups of spec.md §4.2.
	Bridged
	// Remap reads are flagged for downstream re-alignment.
	Remap
)

func (b Bin) String() string {
	switch b {
	case Unchanged:
		return "unchanged"
	case Bridged:
		return "bridged"
	case Remap:
		return "remap"
	default:
		return "invalid"
	}
}
