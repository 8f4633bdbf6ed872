package transcript

import "fmt"

// RetrievalError is the only error kind returned by the Service. It
// deliberately hides which stage failed: by the time a caller sees
// it, the distinction between a missing track, a network problem and
// a malformed document is not actionable.
type RetrievalError struct {
	VideoID string
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf(
		"could not get the transcript for video %s. This usually means one of: "+
			"subtitles are disabled for the video, none of the requested language "+
			"codes are available, or the video is no longer available", e.VideoID)
}
