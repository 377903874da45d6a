package obs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobal() {
	globalMu.Lock()
	globalObs = nil
	globalMu.Unlock()
}

func TestInit(t *testing.T) {
	ctx := context.Background()
	resetGlobal()

	config := DefaultConfig()
	config.ServiceName = "interrogation-room"
	config.Environment = "test"

	obs, err := Init(ctx, config)
	require.NoError(t, err)
	require.NotNil(t, obs)
	defer obs.Shutdown(ctx)

	assert.Equal(t, "interrogation-room", obs.Config().ServiceName)
	assert.NotNil(t, obs.Logger())
	assert.NotNil(t, obs.TracingProvider())
	assert.NotNil(t, obs.MetricsProvider())
	assert.Same(t, obs, Global())

	// A second Init returns the existing instance.
	again, err := Init(ctx, config)
	require.NoError(t, err)
	assert.Same(t, obs, again)
}

func TestInitInvalidConfig(t *testing.T) {
	ctx := context.Background()
	resetGlobal()

	config := DefaultConfig()
	config.ServiceName = ""

	obs, err := Init(ctx, config)
	assert.ErrorIs(t, err, ErrInvalidServiceName)
	assert.Nil(t, obs)
}

func TestShutdownWithoutInit(t *testing.T) {
	resetGlobal()

	err := Shutdown(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestTracerAndMeterFallbacks(t *testing.T) {
	resetGlobal()

	assert.NotNil(t, Tracer("fallback-tracer"))
	assert.NotNil(t, Meter("fallback-meter"))
}

func TestShutdownIdempotent(t *testing.T) {
	ctx := context.Background()
	resetGlobal()

	config := DefaultConfig()
	config.ServiceName = "interrogation-room"

	obs, err := Init(ctx, config)
	require.NoError(t, err)

	assert.NoError(t, obs.Shutdown(ctx))
	assert.NoError(t, obs.Shutdown(ctx))
}
