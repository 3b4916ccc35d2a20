package main

import (
	"context"
	"time"

	"github.com/lox/pokerequity/internal/server"
	"github.com/lox/pokerequity/internal/tracing"
)

// ServeCmd runs the HTTP and WebSocket API.
type ServeCmd struct {
	Address string `help:"Listen address (default from config)"`
	Port    int    `help:"Listen port (default from config)"`
}

func (c *ServeCmd) Run(a *app) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	if c.Address != "" {
		cfg.Server.Address = c.Address
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := a.logger(cfg)
	if err != nil {
		return err
	}
	book, err := a.charts(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.Enabled)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to flush traces")
		}
	}()

	logger.Info().
		Str("address", cfg.ListenAddress()).
		Strs("allowed_origins", cfg.Server.AllowedOrigins).
		Int("min_trials", cfg.Server.MinTrials).
		Int("max_trials", cfg.Server.MaxTrials).
		Int("charts", len(book.Keys())).
		Bool("tracing", cfg.Tracing.Enabled).
		Msg("Starting pokerequity server")

	s := server.New(cfg, server.WithLogger(logger), server.WithCharts(book))
	return s.ListenAndServe(ctx)
}
