package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"horaris.manresa.cat/internal/appconf"
)

func TestClientKey(t *testing.T) {
	testCases := []struct {
		name       string
		trustProxy bool
		remoteAddr string
		forwarded  string
		expected   string
	}{
		{"remote address", false, "192.0.2.1:1234", "", "192.0.2.1"},
		{"forwarded header ignored", false, "192.0.2.1:1234", "198.51.100.7", "192.0.2.1"},
		{"forwarded header trusted", true, "10.0.0.1:1234", "198.51.100.7, 10.0.0.1", "198.51.100.7"},
		{"empty forwarded header", true, "10.0.0.1:1234", " ", "10.0.0.1"},
		{"address without port", false, "192.0.2.9", "", "192.0.2.9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			application := &Application{Config: appconf.Config{TrustProxy: tc.trustProxy}}

			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}

			assert.Equal(t, tc.expected, application.ClientKey(req))
		})
	}
}
