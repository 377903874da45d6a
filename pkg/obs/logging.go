package obs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const (
	traceIDKey       contextKey = "trace_id"
	spanIDKey        contextKey = "span_id"
	correlationIDKey contextKey = "correlation_id"
	eventTypeKey     contextKey = "event_type"
	fileIDKey        contextKey = "file_id"
	datasetIDKey     contextKey = "dataset_id"
	userIDKey        contextKey = "user_id"

	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"

	ErrKindValidation   = "validation"
	ErrKindNotFound     = "not_found"
	ErrKindUnauthorized = "unauthorized"
	ErrKindConflict     = "conflict"
	ErrKindTimeout      = "timeout"
	ErrKindInternal     = "internal"
	ErrKindKafka        = "kafka"
	ErrKindHTTP         = "http"
)

// Event payloads in this fleet routinely carry recipient emails, submitter
// keys, and access-token material. These patterns scrub them from free-text
// log output when redaction is enabled.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password|secret|token|key|credential)\s*[:=]\s*["']?[^"'\s]+["']?`),
	regexp.MustCompile(`[^\s"'@]+@[^\s"']+\.[^\s"']+`),
	regexp.MustCompile(`(?i)(submitter_public_key|decryption_secret_id)\s*[:=]\s*["']?[^"'\s]+["']?`),
}

// Logger is a slog-based structured logger carrying the service identity and
// optional PII redaction.
type Logger struct {
	*slog.Logger
	redactPII bool
}

func initLogger(config Config) *Logger {
	level := parseLogLevel(config.LogLevel)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	if config.LogPretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	hostname, _ := os.Hostname()

	logger := slog.New(handler).With(
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"env", config.Environment,
		"hostname", hostname,
	)

	return &Logger{Logger: logger, redactPII: config.LogRedactPII}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithCorrelation stores event correlation identifiers on the context so that
// every log line emitted while handling the event carries them.
func WithCorrelation(ctx context.Context, correlationID, eventType string) context.Context {
	if correlationID != "" {
		ctx = context.WithValue(ctx, correlationIDKey, correlationID)
	}
	if eventType != "" {
		ctx = context.WithValue(ctx, eventTypeKey, eventType)
	}
	return ctx
}

// WithFileID attaches the file ID under work to the context.
func WithFileID(ctx context.Context, fileID string) context.Context {
	if fileID == "" {
		return ctx
	}
	return context.WithValue(ctx, fileIDKey, fileID)
}

// WithDatasetID attaches the dataset accession under work to the context.
func WithDatasetID(ctx context.Context, datasetID string) context.Context {
	if datasetID == "" {
		return ctx
	}
	return context.WithValue(ctx, datasetIDKey, datasetID)
}

// WithUserID attaches the acting user to the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey, userID)
}

func (l *Logger) withContext(ctx context.Context) *Logger {
	attrs := []any{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		attrs = append(attrs,
			"trace_id", span.SpanContext().TraceID().String(),
			"span_id", span.SpanContext().SpanID().String(),
		)
	}

	for _, key := range []contextKey{correlationIDKey, eventTypeKey, fileIDKey, datasetIDKey, userIDKey} {
		if value, ok := ctx.Value(key).(string); ok && value != "" {
			attrs = append(attrs, string(key), value)
		}
	}

	if len(attrs) == 0 {
		return l
	}
	return &Logger{Logger: l.With(attrs...), redactPII: l.redactPII}
}

func (l *Logger) redact(msg string) string {
	if !l.redactPII {
		return msg
	}
	redacted := msg
	for _, pattern := range piiPatterns {
		redacted = pattern.ReplaceAllStringFunc(redacted, func(match string) string {
			hash := sha256.Sum256([]byte(match))
			return fmt.Sprintf("[REDACTED:%s]", hex.EncodeToString(hash[:8]))
		})
	}
	return redacted
}

func (l *Logger) processAttrs(attrs []any) []any {
	if !l.redactPII {
		return attrs
	}

	processed := make([]any, len(attrs))
	copy(processed, attrs)

	for i := 1; i < len(processed); i += 2 {
		value, ok := processed[i].(string)
		if !ok {
			continue
		}
		for _, pattern := range piiPatterns {
			if pattern.MatchString(value) {
				hash := sha256.Sum256([]byte(value))
				processed[i] = fmt.Sprintf("[REDACTED:%s]", hex.EncodeToString(hash[:8]))
				break
			}
		}
	}
	return processed
}

func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	msg = l.redact(msg)
	attrs = l.processAttrs(attrs)
	l.Logger.Log(ctx, level, msg, attrs...)
}

func (l *Logger) Debug(ctx context.Context, msg string, attrs ...any) {
	l.Log(ctx, slog.LevelDebug, msg, attrs...)
}

func (l *Logger) Info(ctx context.Context, msg string, attrs ...any) {
	l.Log(ctx, slog.LevelInfo, msg, attrs...)
}

func (l *Logger) Warn(ctx context.Context, msg string, attrs ...any) {
	l.Log(ctx, slog.LevelWarn, msg, attrs...)
}

func (l *Logger) Error(ctx context.Context, msg string, err error, attrs ...any) {
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	l.Log(ctx, slog.LevelError, msg, attrs...)
}

// Event logs a processed event with its outcome status.
func (l *Logger) Event(ctx context.Context, event, status string, attrs ...any) {
	attrs = append([]any{"event", event, "status", status}, attrs...)
	l.Info(ctx, event, attrs...)
}

// LoggingProvider hands out loggers enriched with trace and event
// correlation data from the context.
type LoggingProvider struct {
	logger *Logger
}

func newLoggingProvider(config Config) (*LoggingProvider, error) {
	return &LoggingProvider{logger: initLogger(config)}, nil
}

func (lp *LoggingProvider) Logger() *Logger {
	return lp.logger
}

func (lp *LoggingProvider) For(ctx context.Context) *Logger {
	return lp.logger.withContext(ctx)
}

func (lp *LoggingProvider) Debug(ctx context.Context, msg string, attrs ...any) {
	lp.For(ctx).Debug(ctx, msg, attrs...)
}

func (lp *LoggingProvider) Info(ctx context.Context, msg string, attrs ...any) {
	lp.For(ctx).Info(ctx, msg, attrs...)
}

func (lp *LoggingProvider) Warn(ctx context.Context, msg string, attrs ...any) {
	lp.For(ctx).Warn(ctx, msg, attrs...)
}

func (lp *LoggingProvider) Error(ctx context.Context, msg string, err error, attrs ...any) {
	lp.For(ctx).Error(ctx, msg, err, attrs...)
}

func (lp *LoggingProvider) Event(ctx context.Context, event, status string, attrs ...any) {
	lp.For(ctx).Event(ctx, event, status, attrs...)
}

func (lp *LoggingProvider) Shutdown(ctx context.Context) error {
	return nil
}

// Package-level helpers against the global instance.

func Debug(ctx context.Context, msg string, attrs ...any) {
	if obs := Global(); obs != nil && obs.logging != nil {
		obs.logging.Debug(ctx, msg, attrs...)
	}
}

func Info(ctx context.Context, msg string, attrs ...any) {
	if obs := Global(); obs != nil && obs.logging != nil {
		obs.logging.Info(ctx, msg, attrs...)
	}
}

func Warn(ctx context.Context, msg string, attrs ...any) {
	if obs := Global(); obs != nil && obs.logging != nil {
		obs.logging.Warn(ctx, msg, attrs...)
	}
}

func Error(ctx context.Context, msg string, err error, attrs ...any) {
	if obs := Global(); obs != nil && obs.logging != nil {
		obs.logging.Error(ctx, msg, err, attrs...)
	}
}

func Event(ctx context.Context, event, status string, attrs ...any) {
	if obs := Global(); obs != nil && obs.logging != nil {
		obs.logging.Event(ctx, event, status, attrs...)
	}
}

// StartTimer returns a func reporting the elapsed time since the call.
func StartTimer() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
