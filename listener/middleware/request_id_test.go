package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveRequestID(t *testing.T, header string) (string, string) {
	t.Helper()

	var fromContext string

	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		fromContext = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/parse", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	return fromContext, recorder.Header().Get(RequestIDHeader)
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	t.Parallel()

	fromContext, fromHeader := serveRequestID(t, "")

	parsed, err := uuid.Parse(fromHeader)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.Equal(t, fromHeader, fromContext)
}

func TestRequestID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 100)

	for range 100 {
		_, id := serveRequestID(t, "")

		_, exists := seen[id]
		require.False(t, exists, "duplicate request ID %s", id)

		seen[id] = struct{}{}
	}
}

func TestRequestID_IncomingHeader(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		header string
		reused bool
	}{
		{name: "printable", header: "trace-abc-123", reused: true},
		{name: "max length", header: strings.Repeat("a", maxRequestIDLength), reused: true},
		{name: "too long", header: strings.Repeat("a", maxRequestIDLength+1), reused: false},
		{name: "control character", header: "abc\x01def", reused: false},
		{name: "non ascii", header: "idé", reused: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fromContext, fromHeader := serveRequestID(t, testCase.header)

			assert.Equal(t, fromHeader, fromContext)

			if testCase.reused {
				assert.Equal(t, testCase.header, fromHeader)
			} else {
				assert.NotEqual(t, testCase.header, fromHeader)
				assert.Len(t, fromHeader, 36)
			}
		})
	}
}

func TestGetRequestID_EmptyContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
