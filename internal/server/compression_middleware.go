package server

import (
	"net/http"
	"slices"

	"github.com/klauspost/compress/gzhttp"
)

// CompressionConfig controls gzip for the timetable page and the schedule
// document.
type CompressionConfig struct {
	// MinSize is the smallest body worth compressing. A page with a single
	// status line stays below it.
	MinSize int
	// Level is the gzip level, 1-9.
	Level int
	// ContentTypes are the media types that are compressed.
	ContentTypes []string
	// SkipPaths are served uncompressed regardless of size.
	SkipPaths []string
}

func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:      1024,
		Level:        6,
		ContentTypes: []string{"text/html", "application/json"},
		SkipPaths:    []string{"/healthz"},
	}
}

// NewCompressionMiddleware gzips responses whose type is listed in config.
func NewCompressionMiddleware(config CompressionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapper, err := gzhttp.NewWrapper(
			gzhttp.MinSize(config.MinSize),
			gzhttp.CompressionLevel(config.Level),
			gzhttp.ContentTypes(config.ContentTypes),
		)
		if err != nil {
			wrapper = gzhttp.GzipHandler
		}
		compressed := wrapper(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(config.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			compressed.ServeHTTP(w, r)
		})
	}
}

// CompressionMiddleware applies DefaultCompressionConfig.
func CompressionMiddleware(next http.Handler) http.Handler {
	return NewCompressionMiddleware(DefaultCompressionConfig())(next)
}
