package format

import "sort"

// Edit is a single byte-range splice into an original source string: the
// half-open range [Start, End) is replaced with Replacement.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// RenderWithEdits applies edits to src and returns the result. Edits may be
// given in any order; they are sorted by Start and spliced in left to right
// against src's original offsets, and an edit that overlaps an earlier one
// is skipped. Everything outside an edit's range is copied through
// byte-for-byte, which is what lets a rename land on the caller's original
// source without disturbing its layout, indentation, or comments.
func RenderWithEdits(src string, edits []Edit) string {
	if len(edits) == 0 {
		return src
	}
	sorted := append([]Edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []byte
	pos := 0
	for _, e := range sorted {
		if e.Start < pos {
			// Overlapping edit: skip rather than corrupt already-emitted output.
			continue
		}
		out = append(out, src[pos:e.Start]...)
		out = append(out, e.Replacement...)
		pos = e.End
	}
	out = append(out, src[pos:]...)
	return string(out)
}
