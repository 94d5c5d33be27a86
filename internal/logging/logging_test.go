package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Config{Level: "debug", Format: "json"})

	ctx, id := EnsureRequestID(context.Background(), "")
	require.NotEmpty(t, id)

	l.With(String("component", "grid")).Info(ctx, "lookup", Int("path", 186))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lookup", entry["msg"])
	assert.Equal(t, id, entry["request_id"])
	assert.Equal(t, "grid", entry["component"])
	assert.EqualValues(t, 186, entry["path"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Config{Level: "warn"})

	l.Info(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestEnsureRequestID_KeepsExisting(t *testing.T) {
	ctx, first := EnsureRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", first)

	_, second := EnsureRequestID(ctx, "other")
	assert.Equal(t, "abc", second)
}
