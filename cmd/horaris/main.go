package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"horaris.manresa.cat/internal/app"
	"horaris.manresa.cat/internal/appconf"
	"horaris.manresa.cat/internal/logging"
	"horaris.manresa.cat/internal/server"
	"horaris.manresa.cat/internal/timetable"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

// parseConfig reads the command line. Every flag defaults to an
// environment variable, which in turn may come from a .env file.
func parseConfig(args []string, getenv func(string) string) (appconf.Config, error) {
	var cfg appconf.Config
	var env string

	fs := flag.NewFlagSet("horaris", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", envInt(getenv, "HORARIS_PORT", 4000), "HTTP server port")
	fs.StringVar(&env, "env", envString(getenv, "HORARIS_ENV", "development"), "Environment (development|test|production)")
	fs.StringVar(&cfg.DataURL, "data", envString(getenv, "HORARIS_DATA", "data.json"), "URL or local path of the schedule document")
	fs.StringVar(&cfg.PageTitle, "title", envString(getenv, "HORARIS_TITLE", "Horaris d'autobús Manresa ⇄ Barcelona"), "Page title")
	fs.IntVar(&cfg.RateLimit, "rate-limit", envInt(getenv, "HORARIS_RATE_LIMIT", 20), "Requests per second per client (negative disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", envString(getenv, "HORARIS_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", envBool(getenv, "HORARIS_TRUST_PROXY", false), "Key rate limits by X-Forwarded-For")
	fs.BoolVar(&cfg.ExpandableTrips, "expandable-trips", envBool(getenv, "HORARIS_EXPANDABLE_TRIPS", true), "Hide routes behind per-trip toggles")
	fs.BoolVar(&cfg.ServiceFilter, "service-filter", envBool(getenv, "HORARIS_SERVICE_FILTER", false), "Show one service type per panel")
	fs.BoolVar(&cfg.StopList, "stop-list", envBool(getenv, "HORARIS_STOP_LIST", false), "Add a stop-by-stop list to each trip")
	fs.BoolVar(&cfg.Table, "table", envBool(getenv, "HORARIS_TABLE", false), "Add a trips × stops table per service type")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(env)
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DataURL == "" {
		return cfg, errors.New("a schedule document is required (-data)")
	}

	return cfg, nil
}

func envString(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(getenv func(string) string, key string, fallback int) int {
	if v, err := strconv.Atoi(getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envBool(getenv func(string) string, key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getenv(key)); err == nil {
		return v
	}
	return fallback
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	timetableConfig := timetable.Config{
		Source:  cfg.DataURL,
		Verbose: cfg.LogLevel == "debug",
		Client:  &http.Client{},
	}

	manager := timetable.InitManager(timetableConfig, logger)
	defer manager.Shutdown()

	application := &app.Application{
		Config:    cfg,
		Logger:    logger,
		Timetable: manager,
	}

	api := server.NewServer(application)
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "data", cfg.DataURL)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
