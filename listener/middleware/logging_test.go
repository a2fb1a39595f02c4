package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type captureHandler struct {
	mu      sync.Mutex
	records []logRecord
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

//nolint:varnamelen // r is conventional for slog.Record.
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := logRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}

	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.Any()

		return true
	})

	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()

	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *captureHandler) all() []logRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]logRecord(nil), h.records...)
}

func newCapture() (*captureHandler, *slog.Logger) {
	h := &captureHandler{}

	return h, slog.New(h)
}

func TestLogging_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		status   int
		expected slog.Level
	}{
		{name: "ok", status: http.StatusOK, expected: slog.LevelInfo},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, expected: slog.LevelWarn},
		{name: "too large", status: http.StatusRequestEntityTooLarge, expected: slog.LevelWarn},
		{name: "internal", status: http.StatusInternalServerError, expected: slog.LevelError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			capture, logger := newCapture()

			handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testCase.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/parse", nil))

			records := capture.all()
			require.Len(t, records, 1)
			assert.Equal(t, testCase.expected, records[0].Level)
			assert.Equal(t, "http request", records[0].Message)
			assert.Equal(t, int64(testCase.status), records[0].Attrs["status"])
		})
	}
}

func TestLogging_Fields(t *testing.T) {
	t.Parallel()

	capture, logger := newCapture()

	handler := RequestID()(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"properties":{}}`))
	})))

	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("{}"))
	req.Header.Set(RequestIDHeader, "req-42")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	records := capture.all()
	require.Len(t, records, 1)

	attrs := records[0].Attrs
	assert.Equal(t, "POST", attrs["method"])
	assert.Equal(t, "/parse", attrs["path"])
	assert.Equal(t, int64(http.StatusOK), attrs["status"], "implicit status from Write")
	assert.Equal(t, int64(len(`{"properties":{}}`)), attrs["bytes"])
	assert.Equal(t, "req-42", attrs["request_id"])
	assert.Contains(t, attrs, "duration")
}

func TestLogging_NoWriteIsOK(t *testing.T) {
	t.Parallel()

	capture, logger := newCapture()

	handler := Logging(logger)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	records := capture.all()
	require.Len(t, records, 1)
	assert.Equal(t, int64(http.StatusOK), records[0].Attrs["status"])
	assert.NotContains(t, records[0].Attrs, "request_id")
}
