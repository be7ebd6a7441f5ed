package httpserver

import (
	"net/http"
	"time"
)

// New builds the gateway's HTTP server. The read-header timeout bounds
// slow-header clients; per-request deadlines are the handlers' concern.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
