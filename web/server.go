package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Server exposes the liveness endpoint that hosting platforms ping to keep
// the bot process awake.
type Server struct {
	http *http.Server
}

func NewServer(addr string) *Server {
	r := mux.NewRouter()
	r.HandleFunc("/", handleRoot).Methods(http.MethodGet)

	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// Start runs the HTTP listener until Shutdown is called
func (s *Server) Start() error {
	log.WithField("addr", s.http.Addr).Info("Health server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("GachaBot is alive 💚")); err != nil {
		log.WithError(err).Debug("Failed to write health response")
	}
}
