package app

import (
	"log/slog"

	"horaris.manresa.cat/internal/appconf"
	"horaris.manresa.cat/internal/timetable"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Timetable *timetable.Manager
}
