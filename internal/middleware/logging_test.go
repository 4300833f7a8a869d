package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLoggedHandler(buf *bytes.Buffer, status int) (http.Handler, *string) {
	var seenID string
	mw := NewRequestLoggingMiddleware(slog.New(slog.NewTextHandler(buf, nil)))
	return mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestID(r.Context())
		w.WriteHeader(status)
	})), &seenID
}

func TestRequestLoggingMiddleware_LogsBasicInfo(t *testing.T) {
	var buf bytes.Buffer
	h, _ := newLoggedHandler(&buf, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/email-history", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("User-Agent", "report-client/1.0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/api/reports/email-history")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "duration_ms=")
	assert.Contains(t, out, "ip=192.168.1.1")
	assert.Contains(t, out, "report-client/1.0")
	assert.Contains(t, out, "level=INFO")
}

func TestRequestLoggingMiddleware_ServerErrorsLogAtWarn(t *testing.T) {
	var buf bytes.Buffer
	h, _ := newLoggedHandler(&buf, http.StatusInternalServerError)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/reports/send", nil))

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=500")
}

func TestRequestLoggingMiddleware_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	h, seen := newLoggedHandler(&buf, http.StatusOK)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/email-config", nil))

	id := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, *seen)
	assert.Contains(t, buf.String(), "request_id="+id)
}

func TestRequestLoggingMiddleware_KeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	h, seen := newLoggedHandler(&buf, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/email-config", nil)
	req.Header.Set(RequestIDHeader, "edge-1234")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "edge-1234", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "edge-1234", *seen)
}

func TestRequestLoggingMiddleware_SkipsNoisyPaths(t *testing.T) {
	for _, path := range []string{"/health", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			var buf bytes.Buffer
			h, _ := newLoggedHandler(&buf, http.StatusOK)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, buf.String())
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		query string
		want  string
	}{
		{"no query", "/api/reports/email-history", "", "/api/reports/email-history"},
		{"plain params kept", "/api/reports/email-history", "page=2&status=Failed", "/api/reports/email-history?page=2&status=Failed"},
		{"token redacted", "/api/auth/me", "token=abc123secret", "/api/auth/me?token=[REDACTED]"},
		{"case insensitive", "/x", "Access_Token=zzz&format=csv", "/x?Access_Token=[REDACTED]&format=csv"},
		{"bare keys dropped", "/x", "bulk", "/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizePath(tt.path, tt.query))
		})
	}
}
