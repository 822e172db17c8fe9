package cooldown

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/store"
)

// Service manages action cooldowns for members and guilds. A member scope
// limits one user; a guild scope limits everyone in the guild.
type Service interface {
	// CheckCooldown reports whether action is on cooldown for scope and how long remains
	CheckCooldown(ctx context.Context, scope store.Scope, action string) (bool, time.Duration, error)

	// Touch stamps action as used now without running anything
	Touch(ctx context.Context, scope store.Scope, action string) error

	// EnforceCooldown atomically checks the cooldown and runs fn if allowed.
	// The stamp is only written when fn succeeds.
	EnforceCooldown(ctx context.Context, scope store.Scope, action string, fn func() error) error

	// ResetCooldown clears a cooldown
	ResetCooldown(ctx context.Context, scope store.Scope, action string) error

	// GetLastUsed returns when action was last performed, nil if never
	GetLastUsed(ctx context.Context, scope store.Scope, action string) (*time.Time, error)
}

// Modifier overrides the configured duration of an action for a scope, such
// as a guild's own claim attempt cooldown.
type Modifier interface {
	CooldownFor(ctx context.Context, scope store.Scope, action string) (time.Duration, bool)
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	total := int(math.Ceil(e.Remaining.Seconds()))
	minutes := total / SecondsPerMinute
	seconds := total % SecondsPerMinute

	verb := ActionVerb(e.Action)
	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, verb, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, verb, seconds)
}

// Is lets errors.Is match any ErrOnCooldown and the domain sentinel.
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// ActionVerb is the phrase used for an action in user-facing messages.
func ActionVerb(action string) string {
	if v, ok := actionVerbs[action]; ok {
		return v
	}
	return action
}

var actionVerbs = map[string]string{
	domain.ActionAttempt:    "try to claim",
	domain.ActionSteal:      "steal",
	domain.ActionStealGuild: "steal in this server",
}

// checkCooldownInternal compares lastUsed + duration against now.
func checkCooldownInternal(now time.Time, lastUsed *time.Time, duration time.Duration) (bool, time.Duration) {
	if lastUsed == nil {
		return false, 0
	}

	elapsed := now.Sub(*lastUsed)
	if elapsed < duration {
		return true, duration - elapsed
	}

	return false, 0
}

func effectiveCooldown(ctx context.Context, cfg *Config, mod Modifier, scope store.Scope, action string) time.Duration {
	if mod != nil {
		if d, ok := mod.CooldownFor(ctx, scope, action); ok {
			return d
		}
	}
	return cfg.GetCooldownDuration(action)
}
