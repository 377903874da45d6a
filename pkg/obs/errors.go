package obs

import "errors"

var (
	ErrInvalidServiceName = errors.New("service name cannot be empty")
	ErrInvalidSampleRatio = errors.New("tracing sample ratio must be between 0 and 1")
	ErrInvalidMetricsPort = errors.New("metrics port must be between 1 and 65535")
	ErrNotInitialized     = errors.New("observability not initialized")
	ErrTracingInitFailed  = errors.New("failed to initialize tracing")
	ErrMetricsInitFailed  = errors.New("failed to initialize metrics")
	ErrLoggingInitFailed  = errors.New("failed to initialize logging")
	ErrShutdownFailed     = errors.New("shutdown failed")
)
