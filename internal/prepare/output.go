package prepare

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"horaris.manresa.cat/internal/logging"
	"horaris.manresa.cat/internal/schedule"
)

// WriteDocument writes doc as indented UTF-8 JSON.
func WriteDocument(w io.Writer, doc *schedule.Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// WriteDocumentFile writes doc to path, replacing any existing file.
func WriteDocumentFile(path string, doc *schedule.Document, logger *slog.Logger) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer logging.HandleDeferredError(&err, f.Close, logger, "close output file")

	return WriteDocument(f, doc)
}
