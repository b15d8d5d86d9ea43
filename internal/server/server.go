package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dreamware/axisremap/internal/api"
	"github.com/dreamware/axisremap/internal/health"
	"github.com/dreamware/axisremap/internal/remap"
)

// Server exposes an attached Remapper over HTTP.
//
// Every request holds the read lock while it talks to the remapper; Detach
// takes the write lock, so no call is in flight while the shards are
// released.
type Server struct {
	mu       sync.RWMutex
	remap    *remap.Remapper
	logger   *zap.Logger
	gatherer prometheus.Gatherer
	monitor  *health.Monitor
}

// New wraps r. A nil gatherer disables /metrics.
func New(r *remap.Remapper, logger *zap.Logger, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{remap: r, logger: logger, gatherer: gatherer}
}

// WatchHealth publishes m's records on /health/shards. It must be called
// before Handler.
func (s *Server) WatchHealth(m *health.Monitor) { s.monitor = m }

// Ping probes every shard under the read lock. It satisfies
// health.CheckFunc.
func (s *Server) Ping(context.Context) (map[string]error, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remap.Ping()
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if s.monitor != nil {
		mux.HandleFunc("GET /health/shards", s.handleShardHealth)
	}
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /axes", s.handleAxes)
	mux.HandleFunc("GET /shards", s.handleShards)
	mux.HandleFunc("GET /stamp", s.handleStamp)

	mux.HandleFunc("GET /quantities", s.handleListQuantities)
	mux.HandleFunc("GET /quantities/{name}", s.handleGetQuantity)
	mux.HandleFunc("PUT /quantities/{name}", s.handleSetQuantity)
	mux.HandleFunc("POST /move/relative", s.handleRelativeMove)
	mux.HandleFunc("POST /stop", s.handleStop)
	mux.HandleFunc("GET /motion", s.handleMotionDone)

	mux.HandleFunc("GET /modes", s.handleGetModes)
	mux.HandleFunc("PUT /modes", s.handleSetModes)

	mux.HandleFunc("GET /variables", s.handleListVariables)
	mux.HandleFunc("GET /variables/{key}", s.handleGetVariable)
	mux.HandleFunc("PUT /variables/{key}", s.handleSetVariable)

	mux.HandleFunc("POST /calibration/{action}", s.handleCalibration)
	mux.HandleFunc("POST /detach", s.handleDetach)

	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return s.logRequests(mux)
}

// Detach releases the remapper's shards once in-flight requests finish.
func (s *Server) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remap.Detach()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps remapper errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("request failed",
			zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, api.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var (
		shardErr *remap.ShardError
		axisErr  *remap.AxisError
	)
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, remap.ErrLengthMismatch),
		errors.Is(err, remap.ErrAxisOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, remap.ErrNotAttached):
		return http.StatusServiceUnavailable
	case remap.IsUnavailable(err):
		return http.StatusNotImplemented
	case errors.As(err, &shardErr), errors.As(err, &axisErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
