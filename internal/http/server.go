// Package http exposes the bookkeeping API. Routes are registered on a
// standard ServeMux with method patterns, wrapped with request logging
// and panic recovery.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/making/webfluxfn-handson/internal/backend"
	"github.com/making/webfluxfn-handson/internal/log"
)

type Server struct {
	http.Server

	backend      *backend.Backend
	logger       *log.Logger
	shutdownOnce sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, b *backend.Backend, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	mux := http.NewServeMux()

	s := &Server{
		backend: b,
		logger:  logger.WithComponent("http"),
	}

	mux.HandleFunc("GET /expenditures", s.handleListExpenditures)
	mux.HandleFunc("POST /expenditures", s.handleCreateExpenditure)
	mux.HandleFunc("GET /expenditures/{expenditureId}", s.handleGetExpenditure)
	mux.HandleFunc("DELETE /expenditures/{expenditureId}", s.handleDeleteExpenditure)

	mux.HandleFunc("GET /incomes", s.handleListIncomes)
	mux.HandleFunc("POST /incomes", s.handleCreateIncome)
	mux.HandleFunc("GET /incomes/{incomeId}", s.handleGetIncome)
	mux.HandleFunc("DELETE /incomes/{incomeId}", s.handleDeleteIncome)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	handler := log.Middleware(s.logger)(s.recoverPanics(mux))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the full middleware chain. Intended for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.ErrorContext(r.Context(), "Handler panicked",
					"path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}
