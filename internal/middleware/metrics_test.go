package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		authorize  func(r *http.Request)
		wantStatus int
	}{
		{
			name:       "valid credentials",
			authorize:  func(r *http.Request) { r.SetBasicAuth("scraper", "secret123") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "no credentials",
			authorize:  func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong username",
			authorize:  func(r *http.Request) { r.SetBasicAuth("admin", "secret123") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong password",
			authorize:  func(r *http.Request) { r.SetBasicAuth("scraper", "wrong") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty credentials",
			authorize:  func(r *http.Request) { r.SetBasicAuth("", "") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer instead of basic",
			authorize:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer secret123") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "header injection",
			authorize: func(r *http.Request) {
				raw := base64.StdEncoding.EncodeToString([]byte("scraper:secret123\r\nX-Injected: header"))
				r.Header.Set("Authorization", "Basic "+raw)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	mw := NewMetricsAuthMiddleware("scraper", "secret123")
	assert.True(t, mw.Enabled())
	h := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics data"))
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			tt.authorize(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="metrics"`, rec.Header().Get("WWW-Authenticate"))
				assert.NotContains(t, rec.Body.String(), "metrics data")
			} else {
				assert.Equal(t, "metrics data", rec.Body.String())
			}
		})
	}
}

func TestMetricsAuthMiddleware_DisabledWhenNoCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("", "")
	assert.False(t, mw.Enabled())

	called := false
	h := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
