package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/store"
)

func TestHashScopeAction(t *testing.T) {
	tests := []struct {
		name   string
		scope  store.Scope
		action string
	}{
		{"member", store.Member(domain.GameMesh, "g1", "u1"), domain.ActionAttempt},
		{"guild", store.Guild(domain.GameReason, "g1"), domain.ActionStealGuild},
		{"empty", store.Scope{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := hashScopeAction(tt.scope, tt.action)
			h2 := hashScopeAction(tt.scope, tt.action)
			assert.Equal(t, h1, h2, "hash should be deterministic")
			assert.GreaterOrEqual(t, h1, int64(0), "hash should be positive")
		})
	}

	t.Run("distinct scopes", func(t *testing.T) {
		base := hashScopeAction(store.Member(domain.GameReason, "g1", "u1"), domain.ActionSteal)
		assert.NotEqual(t, base, hashScopeAction(store.Member(domain.GameReason, "g1", "u2"), domain.ActionSteal))
		assert.NotEqual(t, base, hashScopeAction(store.Member(domain.GameMesh, "g1", "u1"), domain.ActionSteal))
		assert.NotEqual(t, base, hashScopeAction(store.Guild(domain.GameReason, "g1"), domain.ActionSteal))
	})
}

func TestCheckCooldownInternal(t *testing.T) {
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	duration := 5 * time.Minute

	tests := []struct {
		name           string
		lastUsed       *time.Time
		wantOnCooldown bool
		wantRemaining  time.Duration
	}{
		{"nil lastUsed", nil, false, 0},
		{"active cooldown", ptr(now.Add(-2 * time.Minute)), true, 3 * time.Minute},
		{"expired cooldown", ptr(now.Add(-6 * time.Minute)), false, 0},
		{"exact boundary", ptr(now.Add(-5 * time.Minute)), false, 0},
		{"just before expiry", ptr(now.Add(-5*time.Minute + time.Second)), true, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOnCooldown, gotRemaining := checkCooldownInternal(now, tt.lastUsed, duration)
			assert.Equal(t, tt.wantOnCooldown, gotOnCooldown)
			assert.Equal(t, tt.wantRemaining, gotRemaining)
		})
	}
}

func TestGetCooldownDuration(t *testing.T) {
	cfg := &Config{Cooldowns: map[string]time.Duration{domain.ActionSteal: time.Minute}}

	assert.Equal(t, time.Minute, cfg.GetCooldownDuration(domain.ActionSteal))
	assert.Equal(t, domain.AttemptCooldownDuration, cfg.GetCooldownDuration(domain.ActionAttempt))
	assert.Equal(t, domain.StealGuildCooldownDuration, cfg.GetCooldownDuration(domain.ActionStealGuild))
	assert.Equal(t, DefaultCooldownDuration, cfg.GetCooldownDuration("unknown"))
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string]time.Duration
		wantErr bool
	}{
		{"empty", "", map[string]time.Duration{}, false},
		{"two actions", "steal=30m, attempt=5s", map[string]time.Duration{
			domain.ActionSteal:   30 * time.Minute,
			domain.ActionAttempt: 5 * time.Second,
		}, false},
		{"zero disables", "steal_guild=0s", map[string]time.Duration{domain.ActionStealGuild: 0}, false},
		{"unknown action", "dig=1m", nil, true},
		{"missing value", "steal", nil, true},
		{"bad duration", "steal=soon", nil, true},
		{"negative", "steal=-1m", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverrides(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
