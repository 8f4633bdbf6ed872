package youtube

import (
	"regexp"
	"strings"
)

// timedtextMarker precedes each embedded caption track URL in the watch
// page markup. Reverse-engineered from observed page data; YouTube may
// change it without notice.
const timedtextMarker = "timedtext?v="

// nameParam matches the name= query segment of a caption track URL.
// Named tracks are alternate variants (auto-generated, dialects).
var nameParam = regexp.MustCompile(`&name=.*?(&)|&name=.*`)

// TrackLocator picks the best caption track URL fragment out of raw
// watch page markup for an ordered list of language codes. The second
// return value is false when no track matches any requested language.
type TrackLocator interface {
	Locate(page string, languages []string) (string, bool)
}

// SplitLocator implements TrackLocator by scanning the page for the
// timedtext marker. It is the default strategy used by HTTPClient.
type SplitLocator struct{}

// Locate returns the decoded URL fragment of the best matching track.
//
// Candidates are filtered by language in priority order: the first
// language with at least one match wins, lower-priority languages are
// never considered after that. Among several variants for the same
// language the structurally shortest fragment (ignoring the name=
// parameter) is picked, which prefers the primary track over
// auto-generated or dialect variants. Ties keep the first candidate
// in page order.
func (SplitLocator) Locate(page string, languages []string) (string, bool) {
	splits := strings.Split(page, timedtextMarker)
	if len(splits) < 2 {
		return "", false
	}
	// splits[0] is page content before the first track.
	fragments := make([]string, 0, len(splits)-1)
	for _, split := range splits[1:] {
		fragments = append(fragments, decodeFragment(split))
	}

	var matched []string
	for _, language := range languages {
		for _, fragment := range fragments {
			if strings.Contains(fragment, "&lang="+language) {
				matched = append(matched, fragment)
			}
		}
		if len(matched) > 0 {
			break
		}
	}
	if len(matched) == 0 {
		return "", false
	}

	best := matched[0]
	bestLen := strippedLen(best)
	for _, fragment := range matched[1:] {
		if l := strippedLen(fragment); l < bestLen {
			best, bestLen = fragment, l
		}
	}
	return best, true
}

// decodeFragment truncates a marker split at the closing quote and
// undoes the escaping applied to URLs embedded in page scripts: the
// unicode-escaped ampersand becomes a literal & and backslash escapes
// are dropped.
func decodeFragment(split string) string {
	if idx := strings.Index(split, `"`); idx >= 0 {
		split = split[:idx]
	}
	split = strings.ReplaceAll(split, `\u0026`, "&")
	return strings.ReplaceAll(split, `\`, "")
}

// strippedLen is the fragment length with any name= segment removed,
// so variable-length track names do not bias variant selection.
func strippedLen(fragment string) int {
	return len(nameParam.ReplaceAllString(fragment, "$1"))
}
