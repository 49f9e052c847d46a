package llm

import (
	"context"
	"log/slog"
	"time"
)

// RequestRecord describes one completed model call for the request log.
type RequestRecord struct {
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
	At           time.Time
}

// RequestLog persists RequestRecords. Implemented by the SQLite store;
// a nil-safe no-op is used in tests.
type RequestLog interface {
	AppendRequest(ctx context.Context, rec RequestRecord) error
}

// LoggingProvider is a decorator that records every model call in the
// request log and emits a structured log line.
type LoggingProvider struct {
	inner  Provider
	log    RequestLog
	logger *slog.Logger
}

// WithLogging wraps a Provider with request logging. Either log or
// logger may be nil.
func WithLogging(p Provider, log RequestLog, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, log: log, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	rec := RequestRecord{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
		At:        start,
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	l.logger.DebugContext(ctx, "model call",
		"purpose", rec.Purpose,
		"model", rec.Model,
		"latency_ms", rec.LatencyMs,
		"success", rec.Success,
	)

	// A logging failure must not fail the request.
	if l.log != nil {
		if logErr := l.log.AppendRequest(ctx, rec); logErr != nil {
			l.logger.WarnContext(ctx, "request log append failed", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// Unwrap exposes the decorated provider for capability checks.
func (l *LoggingProvider) Unwrap() Provider { return l.inner }
