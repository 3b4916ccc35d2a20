package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetupNoopWhenDisabled(t *testing.T) {
	for _, tc := range []struct {
		name     string
		endpoint string
		enabled  bool
	}{
		{"no endpoint", "", true},
		{"disabled", "http://localhost:4318", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := Setup(context.Background(), "test", tc.endpoint, tc.enabled)
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			require.NoError(t, shutdown(ctx))
		})
	}
}

func TestSetupCreatesProvider(t *testing.T) {
	// Non-routable address; no spans are recorded so shutdown has nothing to flush.
	shutdown, err := Setup(context.Background(), "test", "http://192.0.2.1:4318", true)
	require.NoError(t, err)

	require.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())

	require.NoError(t, shutdown(context.Background()))
}
