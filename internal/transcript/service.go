package transcript

import (
	"context"
	"log"

	"github.com/gndm/ytTranscripts/internal/youtube"
)

// Service retrieves and parses transcripts. It is the only surface
// intended for callers outside this package tree.
type Service struct {
	ytClient youtube.Client
}

// NewService creates a Service backed by the given YouTube client.
func NewService(yt youtube.Client) *Service {
	return &Service{ytClient: yt}
}

// GetTranscript fetches the transcript for a single video in the
// first available language from languages (priority order). A nil
// languages slice defaults to English. Every internal failure is
// collapsed into *RetrievalError carrying the video id.
func (s *Service) GetTranscript(ctx context.Context, videoID string, languages []string, proxies *youtube.ProxyConfig) ([]Segment, error) {
	if languages == nil {
		languages = []string{"en"}
	}

	raw, err := s.ytClient.FetchTimedText(ctx, videoID, languages, proxies)
	if err != nil {
		log.Printf("[transcript] fetch failed for video %s: %v", videoID, err)
		return nil, &RetrievalError{VideoID: videoID}
	}

	segments, err := Parse(raw)
	if err != nil {
		log.Printf("[transcript] parse failed for video %s: %v", videoID, err)
		return nil, &RetrievalError{VideoID: videoID}
	}
	return segments, nil
}

// GetTranscripts fetches transcripts for several videos sequentially,
// in input order. When continueAfterError is false the first failure
// aborts the whole batch and no partial result is returned; when true
// the failing id is recorded and iteration continues.
func (s *Service) GetTranscripts(ctx context.Context, videoIDs []string, languages []string, continueAfterError bool, proxies *youtube.ProxyConfig) (BatchResult, error) {
	result := BatchResult{
		Transcripts: make(map[string][]Segment),
		Failed:      []string{},
	}

	for _, videoID := range videoIDs {
		segments, err := s.GetTranscript(ctx, videoID, languages, proxies)
		if err != nil {
			if !continueAfterError {
				return BatchResult{}, err
			}
			result.Failed = append(result.Failed, videoID)
			continue
		}
		result.Transcripts[videoID] = segments
	}
	return result, nil
}
