package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/dropgame/internal/domain"
)

const testKey = "0123456789abcdef"

type fakeProbe struct {
	connected bool
	handled   int64
	last      time.Time
}

func (p fakeProbe) Connected() bool             { return p.connected }
func (p fakeProbe) Handled() (int64, time.Time) { return p.handled, p.last }
func (p fakeProbe) Uptime() time.Duration       { return 90 * time.Second }

type fakePool struct{ err error }

func (p fakePool) Ping(context.Context) error { return p.err }
func (p fakePool) Close()                     {}

type fakeDropper struct {
	game  domain.Game
	guild string
	err   error
}

func (d *fakeDropper) DropNow(_ context.Context, game domain.Game, guildID string) (string, error) {
	d.game, d.guild = game, guildID
	if d.err != nil {
		return "", d.err
	}
	return "dropped", nil
}

func serve(t *testing.T, s *Server, method, path, key string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set(HeaderAPIKey, key)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	last := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name       string
		probe      fakeProbe
		wantCode   int
		wantStatus string
	}{
		{"connected", fakeProbe{connected: true, handled: 3, last: last}, http.StatusOK, StatusHealthy},
		{"disconnected", fakeProbe{}, http.StatusServiceUnavailable, StatusDegraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{}, tt.probe, nil, nil)
			rec := serve(t, s, http.MethodGet, "/healthz", "")
			assert.Equal(t, tt.wantCode, rec.Code)

			var body HealthStatus
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.probe.handled, body.CommandsReceived)
			assert.Equal(t, "1m30s", body.Uptime)
			if tt.probe.last.IsZero() {
				assert.Nil(t, body.LastCommandTime)
			} else {
				require.NotNil(t, body.LastCommandTime)
				assert.True(t, last.Equal(*body.LastCommandTime))
			}
		})
	}
}

func TestReadyz(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		rec := serve(t, NewServer(Config{}, fakeProbe{}, nil, nil), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("database up", func(t *testing.T) {
		rec := serve(t, NewServer(Config{}, fakeProbe{}, fakePool{}, nil), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("database down", func(t *testing.T) {
		rec := serve(t, NewServer(Config{}, fakeProbe{}, fakePool{err: errors.New("refused")}, nil), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body ReadyStatus
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, StatusNotReady, body.Status)
	})
}

func TestVersion(t *testing.T) {
	s := NewServer(Config{Version: "1.2.3", Environment: "dev"}, fakeProbe{}, nil, nil)
	rec := serve(t, s, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body VersionInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "1.2.3", body.Version)
	assert.Equal(t, "dev", body.Environment)
	assert.NotEmpty(t, body.GoVersion)
}

func TestMetricsRoute(t *testing.T) {
	rec := serve(t, NewServer(Config{}, fakeProbe{}, nil, nil), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestForceDrop(t *testing.T) {
	const path = "/admin/guilds/g1/drops/mesh"

	t.Run("not mounted without a key", func(t *testing.T) {
		s := NewServer(Config{}, fakeProbe{}, nil, &fakeDropper{})
		assert.Equal(t, http.StatusNotFound, serve(t, s, http.MethodPost, path, testKey).Code)
	})

	t.Run("requires the key", func(t *testing.T) {
		d := &fakeDropper{}
		s := NewServer(Config{APIKey: testKey}, fakeProbe{}, nil, d)
		assert.Equal(t, http.StatusUnauthorized, serve(t, s, http.MethodPost, path, "").Code)
		assert.Empty(t, d.guild)
	})

	t.Run("drops", func(t *testing.T) {
		d := &fakeDropper{}
		s := NewServer(Config{APIKey: testKey}, fakeProbe{}, nil, d)
		rec := serve(t, s, http.MethodPost, path, testKey)
		require.Equal(t, http.StatusOK, rec.Code)

		var body DropResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, DropResult{Game: "mesh", Guild: "g1", Result: "dropped"}, body)
		assert.Equal(t, domain.GameMesh, d.game)
	})

	t.Run("unknown game", func(t *testing.T) {
		d := &fakeDropper{err: domain.ErrInvalidInput}
		s := NewServer(Config{APIKey: testKey}, fakeProbe{}, nil, d)
		assert.Equal(t, http.StatusNotFound, serve(t, s, http.MethodPost, "/admin/guilds/g1/drops/dice", testKey).Code)
	})

	t.Run("failure", func(t *testing.T) {
		d := &fakeDropper{err: errors.New("boom")}
		s := NewServer(Config{APIKey: testKey}, fakeProbe{}, nil, d)
		assert.Equal(t, http.StatusInternalServerError, serve(t, s, http.MethodPost, path, testKey).Code)
	})
}
