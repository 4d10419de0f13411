// Package binning implements binnie's core: the paired-stream
// synchronised processing engine described in spec.md §§2-4. It reads
// an original-reference alignment stream and a derived bridge-reference
// alignment stream in lock-step (StreamPairReader), decides a tentative
// output bin per read (Binner), buffers reads by template identity so
// that mates can be forced into agreement (TemplateBuffer), and drains
// that buffer under a bounded-memory, sort-order-enforcing policy
// (FlushController).
//
// The package is deliberately single-threaded and allocation-light: per
// spec.md §5 there is no concurrency in the core, and per §9's "mate-
// chain linked list" design note, buffered reads live in an arena
// indexed by small integer handles rather than behind raw pointers.
package binning
