package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/observability"
)

func TestLoggerFromContextAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	observability.SetOutput(&buf)
	t.Cleanup(func() { observability.SetOutput(os.Stdout) })

	ctx := observability.WithRequestID(context.Background(), "req-1")
	ctx = observability.WithUserID(ctx, "u-1")
	observability.LoggerFromContext(ctx).Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "u-1", line["user_id"])
	assert.Equal(t, "hello", line["msg"])
}

func TestSetLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	observability.SetOutput(&buf)
	t.Cleanup(func() {
		observability.SetOutput(os.Stdout)
		observability.SetLevel("info")
	})

	observability.SetLevel("warn")
	observability.Logger().Info("dropped")
	assert.Zero(t, buf.Len())

	observability.SetLevel("debug")
	observability.Logger().Debug("kept")
	assert.NotZero(t, buf.Len())
}
