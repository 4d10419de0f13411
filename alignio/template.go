package alignio

import "github.com/biogo/hts/sam"

var rgTag = sam.NewTag("RG")

// TemplateID identifies the template (the set of segments sharing a
// qname) a record belongs to, per spec.md §3: the pair (read group,
// qname), or qname alone when read groups are ignored.
type TemplateID struct {
	ReadGroup string
	QName     string
}

// Identity computes the TemplateID of r. When ignoreRG is true the
// ReadGroup field is always empty, so two records differing only in RG
// are treated as the same template.
func Identity(r *sam.Record, ignoreRG bool) TemplateID {
	if ignoreRG {
		return TemplateID{QName: r.Name}
	}
	return TemplateID{ReadGroup: readGroup(r), QName: r.Name}
}

func readGroup(r *sam.Record) string {
	aux, ok := r.Tag(rgTag[:])
	if !ok {
		return ""
	}
	s, ok := aux.Value().(string)
	if !ok {
		return ""
	}
	return s
}
