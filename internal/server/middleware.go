package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lox/pokerequity/internal/tracing"
)

const requestIDHeader = "X-Request-ID"

type ctxKey int

const ctxStartKey ctxKey = iota

// withRequestContext assigns a request ID, echoing a well-formed one sent by
// the client, and attaches a request-scoped logger and start time.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		r.Header.Set(requestIDHeader, id)
		w.Header().Set(requestIDHeader, id)

		logger := s.logger.With().Str("request_id", id).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = context.WithValue(ctx, ctxStartKey, s.clock.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withAccessLog logs one line per request once the response is written.
func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
		ctx := p.Request.Context()
		var elapsed time.Duration
		if start, ok := ctx.Value(ctxStartKey).(time.Time); ok {
			elapsed = s.clock.Since(start)
		}

		event := zerolog.Ctx(ctx).Info()
		if p.StatusCode >= 500 {
			event = zerolog.Ctx(ctx).Error()
		}
		event.
			Str("method", p.Request.Method).
			Str("path", p.URL.Path).
			Int("status", p.StatusCode).
			Int("size", p.Size).
			Dur("elapsed", elapsed).
			Msg("request")
	})
}

// withRecovery turns handler panics into 500 responses.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.logger}),
		handlers.PrintRecoveryStack(false),
	)(next)
}

type recoveryLogger struct {
	logger zerolog.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.logger.Error().Msg(fmt.Sprint(v...))
}

// traceRoute opens a span named after the matched route template.
func traceRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				name = tpl
			}
		}

		ctx, span := tracing.Tracer().Start(r.Context(), r.Method+" "+name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", name),
				attribute.String("request.id", r.Header.Get(requestIDHeader)),
			),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// recordError marks the request span as failed.
func recordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
