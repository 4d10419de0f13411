package binning

import "github.com/biogo/hts/sam"

// RecordSource is the external alignment-I/O collaborator's contract
// (spec.md §6): a finite, pre-sorted sequence of records. The core
// never opens, seeks, or closes a file itself — it only calls these
// three methods, which a thin adapter over *bam.Reader
// (github.com/biogo/hts/bam) satisfies.
type RecordSource interface {
	// Next advances to the next record, returning false at end of
	// stream or on error (distinguish via Err).
	Next() bool
	// Record returns the record most recently made current by Next.
	Record() *sam.Record
	// Err returns the first error encountered by Next, if any.
	Err() error
}

// RecordSink is the external alignment-I/O collaborator's contract for
// an output stream (spec.md §6).
type RecordSink interface {
	Write(r *sam.Record) error
}
