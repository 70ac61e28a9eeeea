package host

import "github.com/rivo/uniseg"

// NextGrapheme returns the offset just past the grapheme cluster starting
// at off. It never crosses the end of the line containing off.
func NextGrapheme(r Reader, off Offset) Offset {
	end := r.LineEnd(LineOf(r, off))
	if off >= end {
		return off
	}
	s, err := r.TextRange(off, end)
	if err != nil || s == "" {
		return off
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	if cluster == "" {
		return off
	}
	return off + len(cluster)
}

// PrevGrapheme returns the start of the grapheme cluster ending at off. It
// never crosses the start of the line containing off.
func PrevGrapheme(r Reader, off Offset) Offset {
	start := r.LineStart(LineOf(r, off))
	if off <= start {
		return off
	}
	s, err := r.TextRange(start, off)
	if err != nil {
		return off
	}
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last, _ = g.Positions()
	}
	return start + last
}

// LastGrapheme returns the start of the last grapheme cluster of line, or
// the line start for an empty line. It is where Normal mode puts the
// cursor for "end of line".
func LastGrapheme(r Reader, line int) Offset {
	return PrevGrapheme(r, r.LineEnd(line))
}
