package transcript

// Segment is a single timed caption cue.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// BatchResult holds the outcome of a multi-video retrieval: the
// transcripts that could be fetched, keyed by video id, and the ids
// that could not, in input order.
type BatchResult struct {
	Transcripts map[string][]Segment `json:"transcripts"`
	Failed      []string             `json:"failed"`
}
