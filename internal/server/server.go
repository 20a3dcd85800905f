// Package server exposes the timetable page and its supporting endpoints
// over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"horaris.manresa.cat/internal/app"
	"horaris.manresa.cat/internal/webui"
)

type Server struct {
	*app.Application
	WebUI       *webui.WebUI
	rateLimiter *RateLimitMiddleware
}

// NewServer creates a new Server instance with initialized rate limiter
func NewServer(application *app.Application) *Server {
	return &Server{
		Application: application,
		WebUI: &webui.WebUI{
			Manager: application.Timetable,
			Options: webui.OptionsFromConfig(application.Config),
			Title:   application.Config.PageTitle,
			Logger:  application.Logger,
		},
		rateLimiter: NewRateLimitMiddleware(application.Config.RateLimit, time.Second, application.ClientKey),
	}
}

// Routes returns the fully wrapped handler. Middleware order, outermost
// first: request logging, security headers, compression, rate limiting.
func (srv *Server) Routes() http.Handler {
	router := httprouter.New()
	router.RedirectTrailingSlash = true

	router.HandlerFunc(http.MethodGet, "/", srv.WebUI.PageHandler)
	router.HandlerFunc(http.MethodGet, "/data.json", srv.dataHandler)
	router.HandlerFunc(http.MethodGet, "/healthz", srv.healthzHandler)
	if srv.Config.DebugEnabled() {
		router.HandlerFunc(http.MethodGet, "/debug/", srv.WebUI.DebugIndexHandler)
	}

	router.NotFound = http.HandlerFunc(srv.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(srv.methodNotAllowedResponse)
	router.PanicHandler = srv.panicResponse

	var handler http.Handler = router
	handler = srv.rateLimiter.Handler(handler)
	handler = CompressionMiddleware(handler)
	handler = securityHeaders(handler)
	handler = NewRequestLoggingMiddleware(srv.Logger)(handler)

	return handler
}

// Close releases the background resources held by the middleware.
func (srv *Server) Close() {
	srv.rateLimiter.Stop()
}
