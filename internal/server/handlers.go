package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"horaris.manresa.cat/internal/logging"
	"horaris.manresa.cat/internal/schedule"
	"horaris.manresa.cat/internal/timetable"
)

// dataHandler serves the loaded document as JSON.
func (srv *Server) dataHandler(w http.ResponseWriter, r *http.Request) {
	snap := srv.Timetable.Snapshot()

	switch snap.State {
	case timetable.Loading:
		w.Header().Set("Retry-After", "2")
		srv.errorResponse(w, r, http.StatusServiceUnavailable, schedule.MessageLoading)
		return
	case timetable.Errored:
		srv.errorResponse(w, r, http.StatusServiceUnavailable, schedule.StatusMessage(snap.Err))
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	if !snap.LastUpdated.IsZero() {
		w.Header().Set("Last-Modified", snap.LastUpdated.UTC().Format(http.TimeFormat))
	}
	srv.sendJSON(w, r, http.StatusOK, snap.Document)
}

type healthResponse struct {
	State       string     `json:"state"`
	Sections    int        `json:"sections"`
	Panels      int        `json:"panels"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// healthzHandler reports the load state. The server is healthy while it
// serves pages, so every state answers 200.
func (srv *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	snap := srv.Timetable.Snapshot()

	response := healthResponse{State: snap.State.String()}
	if snap.Document != nil {
		response.Sections = len(snap.Document.Sections)
		response.Panels = snap.Document.PanelCount()
	}
	if !snap.LastUpdated.IsZero() {
		updated := snap.LastUpdated.UTC()
		response.LastUpdated = &updated
	}
	if snap.Err != nil {
		response.Error = schedule.StatusMessage(snap.Err)
	}

	srv.sendJSON(w, r, http.StatusOK, response)
}

func (srv *Server) sendJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode response", err,
			slog.String("path", r.URL.Path))
	}
}
