package format

import (
	"strings"
	"testing"

	"github.com/gndm/ytTranscripts/internal/transcript"
)

var sample = []transcript.Segment{
	{Text: "Hey there", Start: 0, Duration: 1.54},
	{Text: "how are you", Start: 1.54, Duration: 4.16},
}

func TestText(t *testing.T) {
	got := Text(sample)
	want := "Hey there\nhow are you\n"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestTextEmpty(t *testing.T) {
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}

func TestSRT(t *testing.T) {
	got := SRT(sample)
	want := "1\n00:00:00,000 --> 00:00:01,540\nHey there\n" +
		"\n2\n00:00:01,540 --> 00:00:05,700\nhow are you\n"
	if got != want {
		t.Errorf("SRT() = %q, want %q", got, want)
	}
}

func TestSRTLongTimestamp(t *testing.T) {
	got := SRT([]transcript.Segment{{Text: "end", Start: 3661.25, Duration: 2}})
	if !strings.Contains(got, "01:01:01,250 --> 01:01:03,250") {
		t.Errorf("SRT() = %q, want hour-scale timestamps", got)
	}
}
