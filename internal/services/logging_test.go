package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	apperrors "github.com/Rtx09x/Meow-Mocks/internal/errors"
	"github.com/Rtx09x/Meow-Mocks/internal/exam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		level  slog.Level
		status string
	}{
		{nil, slog.LevelInfo, "success"},
		{apperrors.NewLoadError("x", errors.New("boom")), slog.LevelWarn, "load_error"},
		{exam.ErrUnknownOption, slog.LevelWarn, "validation_error"},
		{exam.ErrSessionClosed, slog.LevelWarn, "conflict"},
		{ErrSessionNotFound, slog.LevelInfo, "not_found"},
		{errors.New("disk full"), slog.LevelError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			level, status := classify(tt.err)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestContextualLogger_LogResult(t *testing.T) {
	var buf bytes.Buffer
	logger := NewServiceLogger(slog.New(slog.NewJSONHandler(&buf, nil)), LogConfig{Service: "meow-mocks", Component: "session"})

	ctx := WithRequestID(context.Background(), "req-1")
	logger.WithOperation(ctx, "perform_action", "s-1").LogResult(
		ValidationErrors{*NewValidationError("key", "is required for select", nil)})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "perform_action operation validation_error", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "s-1", entry["session_id"])
	assert.Equal(t, "session", entry["component"])

	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "Validation failed", entry["msg"])
	assert.Equal(t, float64(1), entry["error_count"])
}
