package format

import (
	"fmt"
	"strings"

	"github.com/gndm/ytTranscripts/internal/transcript"
)

// Text renders segments as plain text, one cue per line.
func Text(segments []transcript.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// SRT renders segments as a SubRip document. Cue end times are
// derived from start + duration.
func SRT(segments []transcript.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n",
			i+1, srtTimestamp(seg.Start), srtTimestamp(seg.Start+seg.Duration), seg.Text)
	}
	return b.String()
}

// srtTimestamp formats seconds as HH:MM:SS,mmm.
func srtTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(seconds*1000 + 0.5)
	h := millis / 3600000
	m := millis % 3600000 / 60000
	s := millis % 60000 / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
