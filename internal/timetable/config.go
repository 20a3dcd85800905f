package timetable

import (
	"net/http"
	"strings"
)

type Config struct {
	// Source is the schedule document: an http(s) URL or a local file path.
	Source  string
	Verbose bool
	// Client performs the fetch. http.DefaultClient is used when nil.
	Client *http.Client
}

func (config Config) isLocalFile() bool {
	return !strings.HasPrefix(config.Source, "http://") && !strings.HasPrefix(config.Source, "https://")
}

func (config Config) httpClient() *http.Client {
	if config.Client != nil {
		return config.Client
	}
	return http.DefaultClient
}
