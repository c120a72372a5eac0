package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/feed"
)

// NewServer creates and returns a configured *http.Server for the game API.
func NewServer(port uint16, svc Services, hub *feed.Hub) *http.Server {
	mux := NewRouter(svc, hub)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
