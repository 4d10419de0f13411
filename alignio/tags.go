package alignio

import "github.com/biogo/hts/sam"

var (
	// FITag is the one-based segment-index tag.
	FITag = sam.NewTag("FI")
	// TCTag is the template-segment-count tag.
	TCTag = sam.NewTag("TC")
	// RGTag is the read-group tag.
	RGTag = rgTag
)

// GetInt reads an integer-typed aux tag from r, returning ok=false if
// the tag is absent or not one of the integer aux kinds ('c','C','s',
// 'S','i','I'). NewAux always picks the narrowest integer
// representation that fits the value (see biogo/hts/sam.NewAux), so a
// reader must accept any of them.
func GetInt(r *sam.Record, tag sam.Tag) (int, bool) {
	aux, ok := r.Tag(tag[:])
	if !ok {
		return 0, false
	}
	switch v := aux.Value().(type) {
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

// GetString reads a 'Z' (text) aux tag from r.
func GetString(r *sam.Record, tag sam.Tag) (string, bool) {
	aux, ok := r.Tag(tag[:])
	if !ok {
		return "", false
	}
	s, ok := aux.Value().(string)
	return s, ok
}

// SetIntTag overwrites (or appends) an integer aux tag on r, per
// spec.md §4.2's "copies the FI tag value (overwriting any pre-existing
// FI on the bridge)" fix-up rule.
func SetIntTag(r *sam.Record, tag sam.Tag, value int) error {
	aux, err := sam.NewAux(tag, value)
	if err != nil {
		return err
	}
	return setAux(r, aux)
}

// SetStringTag overwrites (or appends) a 'Z' aux tag on r.
func SetStringTag(r *sam.Record, tag sam.Tag, value string) error {
	aux, err := sam.NewAux(tag, value)
	if err != nil {
		return err
	}
	return setAux(r, aux)
}

func setAux(r *sam.Record, aux sam.Aux) error {
	t := aux.Tag()
	for i, existing := range r.AuxFields {
		if existing.Tag() == t {
			r.AuxFields[i] = aux
			return nil
		}
	}
	r.AuxFields = append(r.AuxFields, aux)
	return nil
}

// flagMask is the subset of flag bits the Bridged fix-up copies from
// the original record onto the bridge record: PAIRED, READ1, READ2.
const flagMask = sam.Paired | sam.Read1 | sam.Read2

// CopyPairingFlags sets PAIRED/READ1/READ2 on dst to match src, leaving
// every other flag bit of dst untouched, per spec.md §4.2.
func CopyPairingFlags(dst, src *sam.Record) {
	dst.Flags = (dst.Flags &^ flagMask) | (src.Flags & flagMask)
}
