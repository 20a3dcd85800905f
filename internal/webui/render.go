package webui

import (
	"bytes"
	"embed"
	"html/template"

	"horaris.manresa.cat/internal/schedule"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	pageTemplate  = template.Must(template.ParseFS(templateFS, "templates/page.html"))
	debugTemplate = template.Must(template.ParseFS(templateFS, "templates/debug_index.html"))
)

// RenderPage executes the page template. Nothing is returned unless the whole
// page rendered, so a failure never leaves half a document behind.
func RenderPage(page Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, &schedule.RenderFailure{Err: err}
	}
	return buf.Bytes(), nil
}

// StatusPage is a page that only carries a message in the live region.
func StatusPage(title, message string) Page {
	return Page{Title: title, Status: message}
}
