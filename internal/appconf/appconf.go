// Package appconf holds the configuration shared by the timetable server's
// components.
package appconf

import "strings"

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag to an Environment. Anything that
// is not recognised is treated as development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds all the configuration settings for the server.
type Config struct {
	Port      int
	Env       Environment
	DataURL   string
	PageTitle string
	RateLimit int
	LogLevel  string

	// TrustProxy makes the rate limiter key clients by X-Forwarded-For.
	TrustProxy bool

	// Page variants.
	ExpandableTrips bool
	ServiceFilter   bool
	StopList        bool
	Table           bool
}

// DebugEnabled reports whether the debug dump page is served.
func (c Config) DebugEnabled() bool {
	return c.Env != Production
}
