package commit

import "strings"

// SegmentKind tells a hunk header from the lines under it.
type SegmentKind int

const (
	SegmentHeader SegmentKind = iota
	SegmentBody
)

// Segment is one piece of a split patch.
type Segment struct {
	Kind SegmentKind
	Text string
}

const hunkMarker = "@@"

// SplitPatch splits unified diff text at its hunk header lines into
// alternating header and body segments: [h0, b0, h1, b1, ...]. A patch with
// no hunk headers comes back as a single body segment. Text before the first
// header is dropped. CRLF line endings are read as LF.
func SplitPatch(patch string) []Segment {
	patch = normalizeNewlines(patch)
	lines := strings.Split(patch, "\n")

	var segments []Segment
	var body []string
	inHunk := false

	flush := func() {
		segments = append(segments, Segment{Kind: SegmentBody, Text: strings.Join(body, "\n")})
		body = body[:0]
	}

	for _, line := range lines {
		if isHunkHeader(line) {
			if inHunk {
				flush()
			}
			segments = append(segments, Segment{Kind: SegmentHeader, Text: line})
			inHunk = true
			continue
		}
		if inHunk {
			body = append(body, line)
		}
	}

	if !inHunk {
		return []Segment{{Kind: SegmentBody, Text: patch}}
	}
	if len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	flush()
	return segments
}

// CountHunks returns the number of hunk headers in patch.
func CountHunks(patch string) int {
	count := 0
	for _, line := range strings.Split(patch, "\n") {
		if isHunkHeader(line) {
			count++
		}
	}
	return count
}

// LineStats counts added and removed lines inside hunks.
func LineStats(patch string) (additions, deletions int) {
	if CountHunks(patch) == 0 {
		return 0, 0
	}
	for _, seg := range SplitPatch(patch) {
		if seg.Kind != SegmentBody {
			continue
		}
		for _, line := range strings.Split(seg.Text, "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				additions++
			case strings.HasPrefix(line, "-"):
				deletions++
			}
		}
	}
	return additions, deletions
}

func normalizeNewlines(patch string) string {
	return strings.ReplaceAll(patch, "\r\n", "\n")
}

func isHunkHeader(line string) bool {
	return strings.HasPrefix(line, hunkMarker) && len(line) > len(hunkMarker)
}

// stripPreamble drops everything before the first hunk header.
func stripPreamble(patch string) string {
	lines := strings.Split(patch, "\n")
	for i, line := range lines {
		if isHunkHeader(line) {
			return strings.Join(lines[i:], "\n")
		}
	}
	return ""
}
