package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func TestSlogLogger_InfoEmitsJSON(t *testing.T) {
	log, buf := newBufLogger(t)

	log.Info(context.Background(), "uploaded", "key", "a.dump")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "uploaded", rec["msg"])
	assert.Equal(t, "a.dump", rec["key"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestSlogLogger_WithAddsAttrs(t *testing.T) {
	log, buf := newBufLogger(t)

	child := log.With("database", "orders")
	child.Warn(context.Background(), "skipping entry")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "orders", rec["database"])
	assert.Equal(t, "WARN", rec["level"])
}

func TestNew_QuietReturnsDiscard(t *testing.T) {
	log := New(true)
	_, ok := log.(*DiscardLogger)
	assert.True(t, ok)

	// Must be safe to call.
	log.Error(context.Background(), "nothing")
	assert.Same(t, log, log.With("k", "v"))
}
