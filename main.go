package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/gndm/ytTranscripts/internal/format"
	"github.com/gndm/ytTranscripts/internal/transcript"
	"github.com/gndm/ytTranscripts/internal/youtube"
)

var startTime = time.Now()

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// PROXY_SERVER routes all outbound YouTube traffic through a
	// single proxy endpoint for both schemes.
	var proxies *youtube.ProxyConfig
	if proxy := os.Getenv("PROXY_SERVER"); proxy != "" {
		proxies = &youtube.ProxyConfig{HTTP: proxy, HTTPS: proxy}
		log.Printf("Using proxy %s for YouTube requests", proxy)
	}

	ytClient := youtube.NewClient()
	svc := transcript.NewService(ytClient)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transcript/{id}", handleTranscript(svc, proxies))
	mux.HandleFunc("POST /api/transcripts", handleTranscripts(svc, proxies))
	mux.HandleFunc("GET /api/stats", handleStats)
	mux.Handle("GET /", staticHandler())

	log.Printf("Starting server on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}

// handleTranscript serves a single video transcript. Languages come
// from the lang query parameter as a comma-separated priority list,
// the response format from the format parameter (json, text or srt).
func handleTranscript(svc *transcript.Service, proxies *youtube.ProxyConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := r.PathValue("id")
		languages := parseLanguages(r.URL.Query().Get("lang"))

		segments, err := svc.GetTranscript(r.Context(), videoID, languages, proxies)
		if err != nil {
			writeRetrievalError(w, err)
			return
		}

		switch r.URL.Query().Get("format") {
		case "text":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte(format.Text(segments)))
		case "srt":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte(format.SRT(segments)))
		default:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(segments)
		}
	}
}

type batchRequest struct {
	VideoIDs           []string `json:"video_ids"`
	Languages          []string `json:"languages"`
	ContinueAfterError bool     `json:"continue_after_error"`
}

func handleTranscripts(svc *transcript.Service, proxies *youtube.ProxyConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if len(req.VideoIDs) == 0 {
			http.Error(w, `{"error":"video_ids is required"}`, http.StatusBadRequest)
			return
		}

		result, err := svc.GetTranscripts(r.Context(), req.VideoIDs, req.Languages, req.ContinueAfterError, proxies)
		if err != nil {
			writeRetrievalError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// parseLanguages splits a comma-separated priority list. An absent
// parameter yields nil so the service applies its default.
func parseLanguages(param string) []string {
	if param == "" {
		return nil
	}
	var languages []string
	for _, code := range strings.Split(param, ",") {
		if code = strings.TrimSpace(code); code != "" {
			languages = append(languages, code)
		}
	}
	return languages
}

func writeRetrievalError(w http.ResponseWriter, err error) {
	var retrievalErr *transcript.RetrievalError
	if errors.As(err, &retrievalErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":    retrievalErr.Error(),
			"video_id": retrievalErr.VideoID,
		})
		return
	}
	http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
}

type statsResponse struct {
	MemoryMB   float64 `json:"memory_mb"`
	Goroutines int     `json:"goroutines"`
	UptimeSec  float64 `json:"uptime_sec"`
}

func handleStats(w http.ResponseWriter, _ *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := statsResponse{
		MemoryMB:   float64(m.Alloc) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
		UptimeSec:  time.Since(startTime).Seconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
