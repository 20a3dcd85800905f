package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"horaris.manresa.cat/internal/logging"
)

type errorBody struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

func (srv *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, text string) {
	srv.sendJSON(w, r, status, errorBody{Code: status, Text: text})
}

func (srv *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	srv.errorResponse(w, r, http.StatusNotFound, "not found")
}

func (srv *Server) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	srv.errorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (srv *Server) panicResponse(w http.ResponseWriter, r *http.Request, rec interface{}) {
	logging.LogError(logging.FromContext(r.Context()), "panic while serving request", fmt.Errorf("%v", rec),
		slog.String("path", r.URL.Path))
	srv.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}
