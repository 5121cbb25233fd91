package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"relink/internal/action"
	"relink/internal/config"
	"relink/internal/logging"
	"relink/internal/services"
	"relink/internal/status"
)

// apiServer exposes the four logical operations over loopback HTTP:
// status snapshot, per-service reconnect, reconnect-all, and the dashboard.
// The loopback bind is the trust boundary; there is no authentication.
type apiServer struct {
	bind        string
	remoteHost  string
	logger      *slog.Logger
	aggregator  *status.Aggregator
	coordinator *action.Coordinator

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, agg *status.Aggregator, coord *action.Coordinator, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:        cfg.Paths.APIBind,
		remoteHost:  cfg.Remote.Host,
		logger:      logger,
		aggregator:  agg,
		coordinator: coord,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleDashboard)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/reconnect/", srv.handleReconnect)

	srv.server = &http.Server{
		Handler:           srv.withRequestID(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Reconnect handlers block on their probes; the slowest path is the
		// barrier remediator at ~25s of summed probe timeouts.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// withRequestID assigns a correlation ID to every request, carries it in
// the context, and echoes it back to the client.
func (s *apiServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := services.WithRequestID(r.Context(), id)
		s.log().Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap := s.aggregator.Snapshot(r.Context())
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *apiServer) handleReconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	target := strings.TrimPrefix(r.URL.Path, "/api/reconnect/")
	if target == "all" {
		s.writeJSON(w, http.StatusOK, s.coordinator.ReconnectAll(r.Context()))
		return
	}
	id, ok := services.ParseIdentity(target)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown service")
		return
	}
	s.writeJSON(w, http.StatusOK, s.coordinator.Reconnect(r.Context(), id))
}

func (s *apiServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(s.renderDashboard())); err != nil {
		s.log().Error("failed to write dashboard", logging.Error(err))
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	return logging.NewComponentLogger(s.logger, "api-server")
}
