package binning

import "fmt"

// ErrorKind is the closed taxonomy of fatal conditions the core can
// raise, per spec.md §7. It centralises what the source mixes across
// ad-hoc errx/err/exit(N) calls (spec.md §9 "Dynamic error taxonomy").
type ErrorKind int

const (
	// ErrSegmentIndex: both READ1 and READ2 set without FI/TC (spec.md §4.2).
	ErrSegmentIndex ErrorKind = iota
	// ErrOrigTruncated: bridge stream outlives the original stream (spec.md §4.1, §4.4).
	ErrOrigTruncated
	// ErrUnexpectedMates: a template declared as having no mates gains one (spec.md §4.3).
	ErrUnexpectedMates
	// ErrBamUnsorted: the (refid, pos) sort-order invariant is violated (spec.md §4.4).
	ErrBamUnsorted
	// ErrBufferNotEmpty: the buffer is non-empty after the input stream ends (spec.md §4.4).
	ErrBufferNotEmpty
	// ErrInvalidBin: an internal invariant produced a Bin value outside {Unchanged, Bridged, Remap}.
	ErrInvalidBin
)

// exitCodes mirrors the stable exit-code table of spec.md §6. Only the
// codes the core itself can raise are populated here. The CLI wiring
// layer defines the args, open, read and write codes (1, 2, 3, 5, 6,
// 15); codes 4, 10, 11, 16 and 17 are raised by neither.
var exitCodes = map[ErrorKind]int{
	ErrSegmentIndex:    7,
	ErrOrigTruncated:   8,
	ErrUnexpectedMates: 9,
	ErrBamUnsorted:     13,
	ErrBufferNotEmpty:  12,
	ErrInvalidBin:      14,
}

func (k ErrorKind) String() string {
	switch k {
	case ErrSegmentIndex:
		return "SegmentIndex"
	case ErrOrigTruncated:
		return "OrigTruncated"
	case ErrUnexpectedMates:
		return "UnexpectedMates"
	case ErrBamUnsorted:
		return "BamUnsorted"
	case ErrBufferNotEmpty:
		return "BufferNotEmpty"
	case ErrInvalidBin:
		return "InvalidBin"
	default:
		return "Unknown"
	}
}

// Error is the fatal error type the core returns. It names the
// offending read's template identity, per spec.md §7 category 1's
// "diagnostic naming the offending read's (rg, qname)" requirement, for
// every kind where that's meaningful.
type Error struct {
	Kind    ErrorKind
	ReadGrp string
	QName   string
	Detail  string
}

func (e *Error) Error() string {
	if e.QName != "" {
		return fmt.Sprintf("%s: %s (rg=%q qname=%q)", e.Kind, e.Detail, e.ReadGrp, e.QName)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// ExitCode returns the stable CLI exit code for e's kind (spec.md §6).
func (e *Error) ExitCode() int {
	return exitCodes[e.Kind]
}

func newError(kind ErrorKind, rg, qname, detail string) *Error {
	return &Error{Kind: kind, ReadGrp: rg, QName: qname, Detail: detail}
}
