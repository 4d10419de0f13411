// Package alignio binds the binning core's data model (spec §3) to
// concrete *sam.Record fields: mapping-quality classification, template
// identity, and the handful of auxiliary-tag helpers the Binner needs
// to read FI/TC/RG and to rewrite them during a Bridged fix-up.
package alignio
