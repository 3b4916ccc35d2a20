// Package server exposes the equity, partition and chart operations over
// HTTP and a WebSocket for streamed simulations. It owns request validation
// and JSON shaping; the core packages assume validated input.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/charts"
	"github.com/lox/pokerequity/internal/config"
)

// Server serves the HTTP API.
type Server struct {
	cfg      *config.Config
	charts   *charts.Charts
	logger   zerolog.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithClock sets the clock used for request timing and WebSocket deadlines.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithCharts replaces the built-in preflop charts.
func WithCharts(c *charts.Charts) Option {
	return func(s *Server) { s.charts = c }
}

// New creates a server for cfg.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		logger: zerolog.Nop(),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.charts == nil {
		s.charts = charts.Default()
	}

	origins := cfg.Server.AllowedOrigins
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(origins, r.Header.Get("Origin"))
		},
	}

	s.handler = s.buildHandler()
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) buildHandler() http.Handler {
	r := mux.NewRouter()
	r.Use(traceRoute)

	r.Methods(http.MethodGet).Path("/health").Handler(s.getHealth())
	r.Methods(http.MethodGet).Path("/ws/equity").Handler(s.getEquityWS())

	api := r.PathPrefix("/api").Subrouter()
	api.Methods(http.MethodPost).Path("/equity").Handler(s.postEquity())
	api.Methods(http.MethodPost).Path("/range-equity").Handler(s.postRangeEquity())
	api.Methods(http.MethodPost).Path("/partition").Handler(s.postPartition())
	api.Methods(http.MethodPost).Path("/board-filter").Handler(s.postBoardFilter())
	api.Methods(http.MethodPost).Path("/draws").Handler(s.postDraws())
	api.Methods(http.MethodPost).Path("/evaluate").Handler(s.postEvaluate())
	api.Methods(http.MethodPost).Path("/filter").Handler(s.postFilter())
	api.Methods(http.MethodGet).Path("/charts").Handler(s.getCharts())
	api.Methods(http.MethodGet).Path("/charts/{position}/{action}").Handler(s.getChart())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, r, http.StatusNotFound, "", nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, r, http.StatusMethodNotAllowed, "", nil)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		ExposedHeaders: []string{requestIDHeader},
	})

	return c.Handler(s.withRequestContext(s.withAccessLog(s.withRecovery(r))))
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddress(),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("Starting equity server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down equity server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// simulator builds a simulator for one request. Progress, when non-nil,
// receives batch updates.
func (s *Server) simulator(logger zerolog.Logger, progress func(analysis.Progress)) *analysis.Simulator {
	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithClock(s.clock),
		analysis.WithBatchSize(s.cfg.Simulation.BatchSize),
	}
	if s.cfg.Simulation.Workers > 0 {
		opts = append(opts, analysis.WithWorkers(s.cfg.Simulation.Workers))
	}
	if progress != nil {
		opts = append(opts, analysis.WithProgress(progress))
	}
	return analysis.NewSimulator(opts...)
}

type healthResponse struct {
	Status string `json:"status"`
	Charts int    `json:"charts"`
}

func (s *Server) getHealth() http.HandlerFunc {
	payload := healthResponse{Status: "OK", Charts: len(s.charts.Keys())}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, payload)
	}
}
