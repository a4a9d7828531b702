package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	p, err := Setup(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Shutdown(context.Background()))

	_, span := Tracer("test").Start(context.Background(), "noop")
	defer span.End()
	assert.False(t, span.SpanContext().IsValid())
}

func TestSetupWithEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "127.0.0.1:4318")
	t.Setenv("OTEL_SERVICE_NAME", "pyrx-test")

	p, err := Setup(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p)

	_, span := Tracer("test").Start(context.Background(), "export")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// nothing listens on the endpoint; shutdown must still return
	_ = p.Shutdown(ctx)
}
