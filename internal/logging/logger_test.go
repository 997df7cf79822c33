package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(buf *bytes.Buffer) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}

func TestWithFields_SortedKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := bufferLogger(&buf).WithFields(map[string]any{"b": 2, "a": 1})

	logger.Info("hello")

	out := buf.String()
	require.Contains(t, out, `"a":1`)
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"a":1`)), bytes.Index(buf.Bytes(), []byte(`"b":2`)))
}

func TestGetLoggerFromContext_Fallback(t *testing.T) {
	assert.NotNil(t, GetLoggerFromContext(context.Background()))
}

func TestRequestLogger_InjectsLoggerAndLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := bufferLogger(&buf)

	var fromCtx *Logger
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetLoggerFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.NotNil(t, fromCtx)
	assert.NotSame(t, logger, fromCtx)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
