package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/speedrun-hq/romanizer/pkg/config"
	"github.com/speedrun-hq/romanizer/pkg/logger"
	"github.com/speedrun-hq/romanizer/pkg/metrics"
	"github.com/speedrun-hq/romanizer/pkg/roman"
)

// Conversion is the JSON body returned for a single decimal
type Conversion struct {
	Decimal int           `json:"decimal"`
	Roman   roman.Numeral `json:"roman"`
	Present bool          `json:"present"`
}

// Server exposes conversions, health checks and metrics over HTTP
type Server struct {
	port            string
	maxRange        int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	metricsAPIKey   string
	converter       roman.Converter
	logger          logger.Logger
	ready           atomic.Bool
}

// NewServer creates a new server from the service configuration
func NewServer(cfg *config.Config, log logger.Logger) *Server {
	return &Server{
		port:            cfg.Port,
		maxRange:        cfg.MaxRange,
		readTimeout:     cfg.ReadTimeout,
		writeTimeout:    cfg.WriteTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
		metricsAPIKey:   cfg.MetricsAPIKey,
		converter:       roman.Greedy{},
		logger:          log,
	}
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /roman/{decimal}", s.instrument("convert", http.HandlerFunc(s.handleConvert)))
	mux.Handle("GET /roman", s.instrument("range", http.HandlerFunc(s.handleRange)))

	mux.Handle("GET /health", s.instrument("health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})))

	mux.Handle("GET /ready", s.instrument("ready", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Ready"))
	})))

	// Expose Prometheus metrics with API key authentication
	mux.Handle("GET /metrics", s.metricsAuthMiddleware(promhttp.Handler()))

	return mux
}

// Start listens on the configured port and serves until ctx is canceled
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	s.ready.Store(true)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("Serving conversions on %s", ln.Addr())

	select {
	case err := <-errCh:
		s.ready.Store(false)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.ready.Store(false)
	s.logger.Notice("Shutting down server, waiting up to %s for in-flight requests", s.shutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	<-errCh

	return nil
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("decimal")
	decimal, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid decimal: %q", raw), http.StatusBadRequest)
		return
	}

	c := s.convert(decimal)
	status := http.StatusOK
	if !c.Present {
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, c)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	from, err := queryInt(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := queryInt(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if from > to {
		http.Error(w, fmt.Sprintf("from (%d) must not be greater than to (%d)", from, to), http.StatusBadRequest)
		return
	}

	// unsigned difference cannot overflow once from <= to
	if uint64(to)-uint64(from) >= uint64(s.maxRange) {
		http.Error(w, fmt.Sprintf("range exceeds %d entries", s.maxRange), http.StatusBadRequest)
		return
	}

	out := make([]Conversion, 0, to-from+1)
	for decimal := from; ; decimal++ {
		out = append(out, s.convert(decimal))
		if decimal == to {
			break
		}
	}
	metrics.RangeSize.Observe(float64(len(out)))

	s.writeJSON(w, http.StatusOK, out)
}

// convert runs a single conversion and records it
func (s *Server) convert(decimal int) Conversion {
	start := time.Now()
	numeral := s.converter.Convert(decimal)
	metrics.ConversionTime.Observe(time.Since(start).Seconds())
	metrics.Conversions.WithLabelValues(metrics.ResultLabel(numeral.IsPresent())).Inc()

	s.logger.Debug("Converted %d to %s", decimal, numeral)

	return Conversion{
		Decimal: decimal,
		Roman:   numeral,
		Present: numeral.IsPresent(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Error encoding response JSON: %v", err)
	}
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, fmt.Errorf("missing %s parameter", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", key, raw)
	}
	return n, nil
}
