package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		HeaderContentType:    HeaderValueNoSniff,
		HeaderFrameOptions:   HeaderValueSameOrigin,
		HeaderXSSProtection:  HeaderValueXSSBlock,
		HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	} {
		assert.Equal(t, want, rec.Header().Get(header), header)
	}
}

func TestAuthMiddleware(t *testing.T) {
	const key = "0123456789abcdef"
	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{"valid key", key, key, http.StatusOK},
		{"missing key", key, "", http.StatusUnauthorized},
		{"wrong key", key, "fedcba9876543210", http.StatusUnauthorized},
		{"no key configured", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(tt.configured, nil, NewClientGuard(ClientRatePerSecond, ClientBurst))(okHandler)
			req := httptest.NewRequest(http.MethodPost, "/admin/x", nil)
			if tt.provided != "" {
				req.Header.Set(HeaderAPIKey, tt.provided)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	const burst = 3
	handler := RateLimitMiddleware(nil, NewClientGuard(0, burst))(okHandler)

	serve := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/version", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < burst; i++ {
		require.Equal(t, http.StatusOK, serve("10.0.0.1:1234"))
	}
	assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, serve("10.0.0.2:1234"), "limits are per client")
}

func TestClientGuard_FailedAuth(t *testing.T) {
	g := NewClientGuard(ClientRatePerSecond, ClientBurst)
	for i := 1; i <= FailedAuthAlertThreshold; i++ {
		assert.Equal(t, i, g.RecordFailedAuth("1.2.3.4"))
	}
	assert.Equal(t, 1, g.RecordFailedAuth("5.6.7.8"), "counts are per client")
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		proxies   []string
		want      string
	}{
		{"direct", "1.2.3.4:80", "", nil, "1.2.3.4"},
		{"untrusted forwarder", "1.2.3.4:80", "9.9.9.9", nil, "1.2.3.4"},
		{"trusted proxy", "10.0.0.1:80", "8.8.8.8, 9.9.9.9", []string{"10.0.0.1"}, "9.9.9.9"},
		{"no port", "1.2.3.4", "", nil, "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.proxies))
		})
	}
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodPost, "/admin/guilds/g1/drops/mesh", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")
	loggingMiddleware(okHandler).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, RedactedValue)
	assert.Contains(t, out, "TestAgent")
}
