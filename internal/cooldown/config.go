package cooldown

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/dropgame/internal/domain"
)

// Config holds cooldown service configuration
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	// Cooldowns overrides the built-in duration of the named actions
	Cooldowns map[string]time.Duration
}

var builtinDurations = map[string]time.Duration{
	domain.ActionAttempt:    domain.AttemptCooldownDuration,
	domain.ActionSteal:      domain.StealCooldownDuration,
	domain.ActionStealGuild: domain.StealGuildCooldownDuration,
}

// GetCooldownDuration returns the duration for action: an override, the
// built-in value, or DefaultCooldownDuration for unknown actions.
func (c *Config) GetCooldownDuration(action string) time.Duration {
	if d, ok := c.Cooldowns[action]; ok {
		return d
	}
	if d, ok := builtinDurations[action]; ok {
		return d
	}
	return DefaultCooldownDuration
}

// ParseOverrides reads a list like "steal=30m,attempt=5s". Only actions the
// games use are accepted, and durations must not be negative.
func ParseOverrides(s string) (map[string]time.Duration, error) {
	out := make(map[string]time.Duration)
	for _, part := range strings.Split(s, OverrideSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		action, raw, ok := strings.Cut(part, OverrideAssign)
		if !ok {
			return nil, fmt.Errorf(ErrMsgBadOverride, domain.ErrInvalidInput, part)
		}
		action = strings.TrimSpace(action)
		if _, known := builtinDurations[action]; !known {
			return nil, fmt.Errorf(ErrMsgUnknownAction, domain.ErrInvalidInput, action)
		}
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil || d < 0 {
			return nil, fmt.Errorf(ErrMsgBadOverride, domain.ErrInvalidInput, part)
		}
		out[action] = d
	}
	return out, nil
}
