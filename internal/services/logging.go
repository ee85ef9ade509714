package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

type requestIDKey struct{}

// WithRequestID stores the request id for operation logs
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service   string
	Component string
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

// classify picks the level and status label for an operation outcome
func classify(err error) (slog.Level, string) {
	switch {
	case err == nil:
		return slog.LevelInfo, "success"
	case IsLoadError(err):
		return slog.LevelWarn, "load_error"
	case IsValidation(err):
		return slog.LevelWarn, "validation_error"
	case IsConflict(err):
		return slog.LevelWarn, "conflict"
	case IsNotFound(err):
		return slog.LevelInfo, "not_found"
	default:
		return slog.LevelError, "error"
	}
}

func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, sessionID string, duration time.Duration, err error) {
	level, status := classify(err)

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	if sessionID != "" {
		attrs = append(attrs, slog.String("session_id", sessionID))
	}
	if requestID := requestIDFrom(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	// unexpected errors carry the caller of LogResult
	if level == slog.LevelError {
		if pc, file, line, ok := runtime.Caller(2); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				attrs = append(attrs,
					slog.String("caller_func", fn.Name()),
					slog.String("caller_file", file),
					slog.Int("caller_line", line),
				)
			}
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, sessionID string, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("session_id", sessionID),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i == 5 {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

// ContextualLogger times one operation and logs its outcome
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	sessionID string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string, sessionID string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		sessionID: sessionID,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.sessionID, time.Since(cl.startTime), err)

	var validationErrors ValidationErrors
	if errors.As(err, &validationErrors) {
		cl.logger.LogValidationError(cl.ctx, cl.operation, cl.sessionID, validationErrors)
	}
}
