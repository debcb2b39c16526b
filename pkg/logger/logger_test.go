package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/pkg/logger"
)

type ctxKey struct{}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("request_id", v), true
	}
	return slog.Attr{}, false
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestDecorator_AddsExtractedAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "json", slog.LevelInfo, requestIDExtractor, nil)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.InfoContext(ctx, "hello")

	rec := decode(t, &buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "req-1", rec["request_id"])
}

func TestDecorator_SkipsMissingValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "json", slog.LevelInfo, requestIDExtractor)
	log.InfoContext(context.Background(), "hello")

	rec := decode(t, &buf)
	_, ok := rec["request_id"]
	assert.False(t, ok)
}

func TestDecorator_KeepsExtractorsAcrossWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "json", slog.LevelInfo, requestIDExtractor).
		With(slog.String("component", "posts")).
		WithGroup("g")

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-2")
	log.InfoContext(ctx, "hello", slog.Int("n", 1))

	rec := decode(t, &buf)
	assert.Equal(t, "posts", rec["component"])
	group, ok := rec["g"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "req-2", group["request_id"])
	assert.EqualValues(t, 1, group["n"])
}

func TestNewWriter_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "text", slog.LevelWarn)
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNew_WithFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	log, cleanup := logger.New(logger.Config{Level: "info", File: path, FileMaxSizeMB: 1})
	log.Info("to file")
	cleanup()

	assert.FileExists(t, path)
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}
