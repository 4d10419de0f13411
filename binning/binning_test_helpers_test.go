package binning

import (
	"github.com/biogo/hts/sam"
)

// testHeader returns a two-reference header shared by this package's
// tests, mirroring the grailbio-bio/markduplicates test style of
// building minimal SAM fixtures directly rather than parsing text.
func testHeader() *sam.Header {
	chr1, err := sam.NewReference("chr1", "", "", 1000000, nil, nil)
	if err != nil {
		panic(err)
	}
	chr2, err := sam.NewReference("chr2", "", "", 1000000, nil, nil)
	if err != nil {
		panic(err)
	}
	h, err := sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
	if err != nil {
		panic(err)
	}
	return h
}

func newAux(tag string, v interface{}) sam.Aux {
	aux, err := sam.NewAux(sam.NewTag(tag), v)
	if err != nil {
		panic(err)
	}
	return aux
}

// rec builds a minimal, mapped, paired sam.Record for test use.
func rec(name string, ref *sam.Reference, pos int, flags sam.Flags, mapQ byte) *sam.Record {
	return &sam.Record{
		Name:  name,
		Ref:   ref,
		Pos:   pos,
		Flags: flags,
		MapQ:  mapQ,
	}
}

// fakeSource is a RecordSource over an in-memory slice, for tests.
type fakeSource struct {
	records []*sam.Record
	idx     int
	cur     *sam.Record
}

func newFakeSource(records ...*sam.Record) *fakeSource {
	return &fakeSource{records: records, idx: -1}
}

func (f *fakeSource) Next() bool {
	f.idx++
	if f.idx >= len(f.records) {
		f.cur = nil
		return false
	}
	f.cur = f.records[f.idx]
	return true
}

func (f *fakeSource) Record() *sam.Record { return f.cur }
func (f *fakeSource) Err() error          { return nil }

// fakeSink is a RecordSink collecting every written record, for tests.
type fakeSink struct {
	written []*sam.Record
}

func (f *fakeSink) Write(r *sam.Record) error {
	f.written = append(f.written, r)
	return nil
}
