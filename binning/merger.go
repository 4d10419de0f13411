package binning

// Merger is the contract brunel's k-way merge would satisfy; binnie
// and brindley never call it. Sketched so the package boundary is
// visible (spec.md §6.4 / SPEC_FULL.md §6.4): brunel is a conventional
// k-way merge over alignment files and is out of scope for this
// module beyond this interface.
type Merger interface {
	Merge(sources []RecordSource, sink RecordSink) error
}
