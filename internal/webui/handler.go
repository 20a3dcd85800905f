package webui

import (
	"fmt"
	"log/slog"
	"net/http"

	"horaris.manresa.cat/internal/logging"
	"horaris.manresa.cat/internal/schedule"
	"horaris.manresa.cat/internal/selection"
	"horaris.manresa.cat/internal/timetable"
)

// WebUI serves the timetable page and the debug dump.
type WebUI struct {
	Manager *timetable.Manager
	Options Options
	Title   string
	Logger  *slog.Logger
}

func (webUI *WebUI) logger(r *http.Request) *slog.Logger {
	if webUI.Logger != nil {
		return webUI.Logger
	}
	return logging.FromContext(r.Context())
}

// PageHandler renders the page for the selection carried in the query string.
func (webUI *WebUI) PageHandler(w http.ResponseWriter, r *http.Request) {
	snap := webUI.Manager.Snapshot()

	body, err := webUI.render(snap, r)
	if err != nil {
		logging.LogError(webUI.logger(r), "failed to render timetable page", err,
			slog.String("component", "webui"),
			slog.String("query", r.URL.RawQuery))
		webUI.renderFailure(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

func (webUI *WebUI) render(snap timetable.Snapshot, r *http.Request) (body []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			body = nil
			err = &schedule.RenderFailure{Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	var state selection.State
	if snap.State == timetable.Ready {
		state = snap.Controller.Apply(r.URL.Query())
	}

	return RenderPage(BuildPage(webUI.Title, snap, state, webUI.Options))
}

func (webUI *WebUI) renderFailure(w http.ResponseWriter, r *http.Request) {
	body, err := RenderPage(StatusPage(webUI.Title, schedule.MessageRenderError))
	if err != nil {
		http.Error(w, schedule.MessageRenderError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(body)
}
