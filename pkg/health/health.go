package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// Pinger is implemented by pgxpool.Pool and the kafka producer.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FromPinger adapts a Pinger to a Checker.
func FromPinger(p Pinger) Checker {
	return p.Ping
}

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the body of both health endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

type CheckResult struct {
	Status  Status `json:"status"`
	Latency string `json:"latency"`
	Error   string `json:"error,omitempty"`
}

const checkTimeout = 3 * time.Second

// Handler serves /health/live and /health/ready.
type Handler struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

func NewHandler() *Handler {
	return &Handler{checkers: make(map[string]Checker)}
}

// Register adds or replaces a named readiness check.
func (h *Handler) Register(name string, c Checker) {
	h.mu.Lock()
	h.checkers[name] = c
	h.mu.Unlock()
}

// LivenessHandler answers 200 while the process is serving.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusOK, Response{Status: StatusUp, Timestamp: time.Now().UTC()})
	}
}

// ReadinessHandler runs every check in parallel and answers 503 if any fails.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		h.mu.RLock()
		snapshot := make(map[string]Checker, len(h.checkers))
		for name, c := range h.checkers {
			snapshot[name] = c
		}
		h.mu.RUnlock()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			results = make(map[string]CheckResult, len(snapshot))
		)
		for name, c := range snapshot {
			wg.Add(1)
			go func(name string, c Checker) {
				defer wg.Done()
				start := time.Now()
				res := CheckResult{Status: StatusUp}
				if err := c(ctx); err != nil {
					res = CheckResult{Status: StatusDown, Error: err.Error()}
				}
				res.Latency = time.Since(start).String()
				mu.Lock()
				results[name] = res
				mu.Unlock()
			}(name, c)
		}
		wg.Wait()

		overall, code := StatusUp, http.StatusOK
		for _, res := range results {
			if res.Status == StatusDown {
				overall, code = StatusDown, http.StatusServiceUnavailable
				break
			}
		}

		write(w, code, Response{Status: overall, Timestamp: time.Now().UTC(), Checks: results})
	}
}

func write(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
