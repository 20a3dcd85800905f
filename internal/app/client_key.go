package app

import (
	"net"
	"net/http"
	"strings"
)

// ClientKey identifies the client a request is accounted to. Forwarding
// headers are only honoured when the server runs behind a trusted proxy.
func (app *Application) ClientKey(r *http.Request) string {
	if app.Config.TrustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
