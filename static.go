package main

import (
	"bytes"
	"compress/gzip"
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed static/*
var staticFS embed.FS

// asset is a static file prepared for serving: minified, with a
// pre-gzipped variant for clients that accept it.
type asset struct {
	content     []byte
	gzipped     []byte
	contentType string
}

// buildAssets minifies and gzips every embedded static file once at
// startup. Assets are immutable afterwards, so no locking is needed
// on the returned map.
func buildAssets() map[string]*asset {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("application/javascript", js.Minify)

	assets := make(map[string]*asset)
	err := fs.WalkDir(staticFS, "static", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		data, err := staticFS.ReadFile(filePath)
		if err != nil {
			return err
		}

		contentType := mime.TypeByExtension(filepath.Ext(filePath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		minified := data
		mediaType := strings.Split(contentType, ";")[0]
		if _, _, fn := m.Match(mediaType); fn != nil {
			var buf bytes.Buffer
			if err := m.Minify(mediaType, &buf, bytes.NewReader(data)); err != nil {
				log.Printf("[static] failed to minify %s: %v (using original)", filePath, err)
			} else {
				minified = buf.Bytes()
			}
		}

		var gzBuf bytes.Buffer
		gz, _ := gzip.NewWriterLevel(&gzBuf, gzip.BestCompression)
		gz.Write(minified)
		gz.Close()

		assets[strings.TrimPrefix(filePath, "static/")] = &asset{
			content:     minified,
			gzipped:     gzBuf.Bytes(),
			contentType: contentType,
		}
		return nil
	})
	if err != nil {
		log.Printf("[static] warning: failed to process embedded assets: %v", err)
	}

	log.Printf("[static] prepared %d embedded assets", len(assets))
	return assets
}

// staticHandler serves the embedded viewer UI. With DEV=1 it serves
// straight from disk instead, so the UI can be edited without a
// rebuild.
func staticHandler() http.Handler {
	if os.Getenv("DEV") == "1" {
		log.Println("[static] development mode: serving from disk")
		return http.FileServer(http.Dir("static"))
	}

	assets := buildAssets()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if urlPath == "" || urlPath == "." {
			urlPath = "index.html"
		}

		a, ok := assets[urlPath]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", a.contentType)
		w.Header().Set("Vary", "Accept-Encoding")

		if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") && len(a.gzipped) > 0 {
			w.Header().Set("Content-Encoding", "gzip")
			w.Write(a.gzipped)
			return
		}
		w.Write(a.content)
	})
}
