// Package coordmap implements CoordMap (C5): a keyed collection of
// balanced interval trees answering point-to-point coordinate
// translation between a reference and a derived reference, per
// spec.md §4.5. It is independent of the binning package and is built
// once from a liftover file, then queried read-only by the brindley
// tool.
package coordmap
