package transcript

import (
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strconv"
)

// inlineTag matches inline formatting markup left in cue text after
// entity decoding (YouTube escapes it into the character data).
var inlineTag = regexp.MustCompile(`(?i)<[^>]*>`)

// timedTextDoc accepts any root element and collects every direct
// child as a cue, matching the shape of the timedtext response.
type timedTextDoc struct {
	Cues []timedTextCue `xml:",any"`
}

type timedTextCue struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// Parse converts a raw timedtext XML document into ordered segments.
// Cues without character data are dropped; for the rest the text is
// entity-decoded and stripped of inline markup. Malformed XML or a
// missing or non-numeric start/dur attribute on a kept cue is an
// error.
func Parse(data string) ([]Segment, error) {
	var doc timedTextDoc
	if err := xml.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing timedtext XML: %w", err)
	}

	segments := make([]Segment, 0, len(doc.Cues))
	for _, cue := range doc.Cues {
		if cue.Text == "" {
			continue
		}

		start, err := strconv.ParseFloat(cue.Start, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid start attribute %q: %w", cue.Start, err)
		}
		dur, err := strconv.ParseFloat(cue.Dur, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dur attribute %q: %w", cue.Dur, err)
		}

		text := inlineTag.ReplaceAllString(html.UnescapeString(cue.Text), "")
		segments = append(segments, Segment{
			Text:     text,
			Start:    start,
			Duration: dur,
		})
	}
	return segments, nil
}
