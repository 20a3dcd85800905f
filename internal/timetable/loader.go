package timetable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"

	"golang.org/x/net/html/charset"

	"horaris.manresa.cat/internal/logging"
	"horaris.manresa.cat/internal/schedule"
)

// rawDocument reads the schedule document from a local file or with a single
// uncached HTTP request.
func rawDocument(ctx context.Context, config Config, logger *slog.Logger) ([]byte, error) {
	if config.isLocalFile() {
		b, err := os.ReadFile(config.Source)
		if err != nil {
			return nil, &schedule.FetchFailure{Source: config.Source, Err: fmt.Errorf("error reading local schedule file: %w", err)}
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.Source, nil)
	if err != nil {
		return nil, &schedule.FetchFailure{Source: config.Source, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := config.httpClient().Do(req)
	if err != nil {
		return nil, &schedule.FetchFailure{Source: config.Source, Err: fmt.Errorf("error downloading schedule: %w", err)}
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "schedule_response_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &schedule.FetchFailure{Source: config.Source, StatusCode: resp.StatusCode}
	}

	body, err := decodedBody(resp)
	if err != nil {
		return nil, &schedule.FetchFailure{Source: config.Source, Err: fmt.Errorf("error reading schedule: %w", err)}
	}
	return body, nil
}

// decodedBody converts the response to UTF-8 following the charset declared
// in Content-Type. Bodies with an unknown charset are read as they are.
func decodedBody(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return raw, nil
	}

	reader, err := charset.NewReaderLabel(charsetLabel(contentType), bytes.NewReader(raw))
	if err != nil {
		return raw, nil
	}
	return io.ReadAll(reader)
}

// charsetLabel extracts the charset parameter of a Content-Type header,
// defaulting to UTF-8.
func charsetLabel(contentType string) string {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" {
		return "utf-8"
	}
	return params["charset"]
}

// LoadDocument fetches, parses and validates the schedule document.
func LoadDocument(ctx context.Context, config Config, logger *slog.Logger) (*schedule.Document, error) {
	b, err := rawDocument(ctx, config, logger)
	if err != nil {
		return nil, err
	}
	return schedule.Parse(b)
}
