package http

import (
	"net/http"
	"runtime"
	"time"

	"github.com/vidly-dev/vidly/pkg/utils/logging"
)

type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      float64   `json:"uptime"`
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
	Runtime     string    `json:"runtime"`
}

type databaseCheck struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

type readyResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Checks    struct {
		Database databaseCheck `json:"database"`
	} `json:"checks"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) error {
	now := s.now()
	writeJSON(r.Context(), w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Timestamp:   now.UTC(),
		Uptime:      now.Sub(s.startedAt).Seconds(),
		Environment: s.env.String(),
		Version:     s.version,
		Runtime:     runtime.Version(),
	})
	return nil
}

// ready reports 503 while the repository cannot be reached.
func (s *Server) ready(w http.ResponseWriter, r *http.Request) error {
	repo := s.uc.Repository()

	resp := readyResponse{Status: "ready", Timestamp: s.now().UTC()}
	resp.Checks.Database = databaseCheck{Status: "healthy", Backend: repo.Backend()}

	status := http.StatusOK
	if err := repo.Ping(r.Context()); err != nil {
		logging.From(r.Context()).Warn("readiness check failed", "error", err.Error(), "backend", repo.Backend())
		status = http.StatusServiceUnavailable
		resp.Status = "not ready"
		resp.Checks.Database.Status = "unhealthy"
		resp.Checks.Database.Error = err.Error()
	}

	writeJSON(r.Context(), w, status, resp)
	return nil
}
