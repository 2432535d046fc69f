package tracing

import (
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotation_bot/pkg/logger"
)

func TestInitTracerDisabled(t *testing.T) {
	tracer, closer, err := InitTracer(Config{})
	require.NoError(t, err)
	assert.IsType(t, opentracing.NoopTracer{}, tracer)
	assert.NotPanics(t, closer)
}

func TestInitTracerEnabled(t *testing.T) {
	_, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	old := SetServiceName("rotation_bot_test")
	defer SetServiceName(old)

	tracer, closer, err := InitTracer(Config{Enabled: true, Host: "127.0.0.1", Port: 6831})
	require.NoError(t, err)
	defer closer()

	span := tracer.StartSpan("rotation.cycle")
	span.SetTag("cycle_id", "test")
	span.Finish()
	assert.Equal(t, tracer, opentracing.GlobalTracer())
}
