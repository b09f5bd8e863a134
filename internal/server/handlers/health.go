package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/fulmenhq/gofulmen/errors"

	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/metrics"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
	statusTimeout   = "timeout"
)

// HealthResponse represents the aggregate health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ProbeResponse represents individual probe response
type ProbeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthChecker is implemented by the store and the redis leaderboard.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// HealthManager runs registered checks for the health endpoints. Optional
// checks degrade the status instead of failing it.
type HealthManager struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	optional map[string]bool
	version  string
}

// NewHealthManager creates a new health manager
func NewHealthManager(version string) *HealthManager {
	return &HealthManager{
		checkers: make(map[string]HealthChecker),
		optional: make(map[string]bool),
		version:  version,
	}
}

// RegisterChecker registers a check whose failure makes the service unhealthy.
func (hm *HealthManager) RegisterChecker(name string, checker HealthChecker) {
	hm.register(name, checker, false)
}

// RegisterOptionalChecker registers a check whose failure only degrades the service.
func (hm *HealthManager) RegisterOptionalChecker(name string, checker HealthChecker) {
	hm.register(name, checker, true)
}

func (hm *HealthManager) register(name string, checker HealthChecker, optional bool) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.checkers[name] = checker
	hm.optional[name] = optional
}

func (hm *HealthManager) runHealthChecks(ctx context.Context) map[string]string {
	hm.mu.RLock()
	names := make([]string, 0, len(hm.checkers))
	for name := range hm.checkers {
		names = append(names, name)
	}
	hm.mu.RUnlock()
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			checks[name] = statusTimeout
			continue
		}

		hm.mu.RLock()
		checker, optional := hm.checkers[name], hm.optional[name]
		hm.mu.RUnlock()

		status := statusHealthy
		if err := checker.CheckHealth(ctx); err != nil {
			status = statusUnhealthy
			if optional {
				status = statusDegraded
			}
		}
		metrics.RecordHealthCheck(name, status == statusHealthy)
		checks[name] = status
	}
	return checks
}

func overallStatus(checks map[string]string) string {
	degraded := false
	for _, status := range checks {
		switch status {
		case statusUnhealthy:
			return statusUnhealthy
		case statusDegraded, statusTimeout:
			degraded = true
		}
	}
	if degraded {
		return statusDegraded
	}
	return statusHealthy
}

// HealthHandler handles GET /health.
func (hm *HealthManager) HealthHandler(w http.ResponseWriter, r *http.Request) {
	checks, status, ok := hm.evaluate(w, r, "aggregate", 5*time.Second)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Version:   hm.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// LivenessHandler handles GET /health/live. It reports the process only.
func (hm *HealthManager) LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ProbeResponse{Status: statusHealthy, Timestamp: time.Now().UTC()})
}

// ReadinessHandler handles GET /health/ready.
func (hm *HealthManager) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	hm.probe(w, r, "ready", 5*time.Second)
}

// StartupHandler handles GET /health/startup.
func (hm *HealthManager) StartupHandler(w http.ResponseWriter, r *http.Request) {
	hm.probe(w, r, "startup", 3*time.Second)
}

func (hm *HealthManager) probe(w http.ResponseWriter, r *http.Request, name string, timeout time.Duration) {
	_, status, ok := hm.evaluate(w, r, name, timeout)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ProbeResponse{Status: status, Timestamp: time.Now().UTC()})
}

// evaluate runs the checks and writes a 503 envelope when unhealthy.
func (hm *HealthManager) evaluate(w http.ResponseWriter, r *http.Request, probe string, timeout time.Duration) (map[string]string, string, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := hm.runHealthChecks(ctx)
	status := overallStatus(checks)
	if status == statusUnhealthy {
		envelope := apperrors.NewUnavailableError(probe + " health check failed")
		respondWithError(w, r, enrichHealthEnvelope(envelope, probe, status, checks))
		return checks, status, false
	}
	return checks, status, true
}

func enrichHealthEnvelope(envelope *errors.ErrorEnvelope, probe, status string, checks map[string]string) *errors.ErrorEnvelope {
	details := map[string]interface{}{
		"status": status,
		"probe":  probe,
	}
	if len(checks) > 0 {
		details["checks"] = checks
	}
	envelope = envelope.WithDetails(details)

	var failing []string
	for name, result := range checks {
		if result != statusHealthy {
			failing = append(failing, name)
		}
	}
	if len(failing) == 0 {
		return envelope
	}
	sort.Strings(failing)
	updated, err := envelope.WithContext(map[string]interface{}{"unhealthy_checks": failing})
	if err != nil {
		return envelope
	}
	return updated
}
