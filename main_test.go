package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gndm/ytTranscripts/internal/transcript"
	"github.com/gndm/ytTranscripts/internal/youtube"
)

// mockYT serves a canned timedtext document for known video ids.
type mockYT struct {
	docs map[string]string
}

func (m *mockYT) FetchTimedText(_ context.Context, videoID string, _ []string, _ *youtube.ProxyConfig) (string, error) {
	doc, ok := m.docs[videoID]
	if !ok {
		return "", youtube.ErrNoTrack
	}
	return doc, nil
}

const testXML = `<transcript><text start="0" dur="1.5">hello world</text></transcript>`

func testService() *transcript.Service {
	return transcript.NewService(&mockYT{docs: map[string]string{"abc": testXML}})
}

func TestHandleTranscriptJSON(t *testing.T) {
	handler := handleTranscript(testService(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/transcript/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var segments []transcript.Segment
	if err := json.NewDecoder(w.Body).Decode(&segments); err != nil {
		t.Fatal(err)
	}
	if len(segments) != 1 || segments[0].Text != "hello world" {
		t.Errorf("segments = %+v, want one hello world cue", segments)
	}
}

func TestHandleTranscriptSRT(t *testing.T) {
	handler := handleTranscript(testService(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/transcript/abc?format=srt", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "00:00:00,000 --> 00:00:01,500") {
		t.Errorf("body = %q, want SRT timing line", body)
	}
}

func TestHandleTranscriptNotFound(t *testing.T) {
	handler := handleTranscript(testService(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/transcript/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["video_id"] != "missing" {
		t.Errorf("video_id = %q, want %q", resp["video_id"], "missing")
	}
}

func TestHandleTranscriptsBatch(t *testing.T) {
	handler := handleTranscripts(testService(), nil)

	body := `{"video_ids":["bad","abc"],"continue_after_error":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/transcripts", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var result transcript.BatchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if _, ok := result.Transcripts["abc"]; !ok {
		t.Error("missing transcript for abc")
	}
	if len(result.Failed) != 1 || result.Failed[0] != "bad" {
		t.Errorf("Failed = %v, want [bad]", result.Failed)
	}
}

func TestHandleTranscriptsBatchAborts(t *testing.T) {
	handler := handleTranscripts(testService(), nil)

	body := `{"video_ids":["bad","abc"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/transcripts", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestHandleTranscriptsBadRequest(t *testing.T) {
	handler := handleTranscripts(testService(), nil)

	for _, body := range []string{"not json", `{"video_ids":[]}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/transcripts", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestParseLanguages(t *testing.T) {
	tests := []struct {
		param string
		want  []string
	}{
		{"", nil},
		{"en", []string{"en"}},
		{"de, en", []string{"de", "en"}},
		{"de,,en", []string{"de", "en"}},
	}
	for _, tt := range tests {
		got := parseLanguages(tt.param)
		if len(got) != len(tt.want) {
			t.Errorf("parseLanguages(%q) = %v, want %v", tt.param, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseLanguages(%q) = %v, want %v", tt.param, got, tt.want)
			}
		}
	}
}

func TestHandleStats(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()

	handleStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var stats statsResponse
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Goroutines < 1 {
		t.Errorf("Goroutines = %d, want >= 1", stats.Goroutines)
	}
}
