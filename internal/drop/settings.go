package drop

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/dropgame/internal/concurrency"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/store"
)

// Settings reads and writes a game's persisted per-guild schedule.
type Settings struct {
	game     domain.Game
	st       store.Store
	defaults domain.GuildDropSchedule
	locks    *concurrency.LockManager
}

// NewSettings creates a schedule accessor; defaults fill fields that were
// never persisted.
func NewSettings(game domain.Game, st store.Store, defaults domain.GuildDropSchedule) *Settings {
	return &Settings{
		game:     game,
		st:       st,
		defaults: defaults,
		locks:    concurrency.NewLockManager(),
	}
}

// Game returns the game these settings belong to.
func (s *Settings) Game() domain.Game {
	return s.game
}

// Store returns the backing store.
func (s *Settings) Store() store.Store {
	return s.st
}

// Load returns the guild's schedule.
func (s *Settings) Load(ctx context.Context, guildID string) (domain.GuildDropSchedule, error) {
	sched, err := store.GetOr(ctx, s.st, store.Guild(s.game, guildID), domain.KeySchedule, s.defaults)
	if err != nil {
		return s.defaults, fmt.Errorf(ErrMsgLoadSchedule, guildID, err)
	}
	return sched, nil
}

// Update applies fn to the guild's schedule and persists the result.
func (s *Settings) Update(ctx context.Context, guildID string, fn func(*domain.GuildDropSchedule)) (domain.GuildDropSchedule, error) {
	var out domain.GuildDropSchedule
	err := s.locks.Do(guildID, func() error {
		sched, err := s.Load(ctx, guildID)
		if err != nil {
			return err
		}
		fn(&sched)
		if err := s.st.Set(ctx, store.Guild(s.game, guildID), domain.KeySchedule, sched); err != nil {
			return fmt.Errorf(ErrMsgSaveSchedule, guildID, err)
		}
		out = sched
		return nil
	})
	return out, err
}

// CooldownFor applies the guild's own attempt cooldown. It satisfies
// cooldown.Modifier.
func (s *Settings) CooldownFor(ctx context.Context, scope store.Scope, action string) (time.Duration, bool) {
	if action != domain.ActionAttempt || scope.Game != s.game {
		return 0, false
	}
	sched, err := s.Load(ctx, scope.GuildID)
	if err != nil || sched.AttemptCooldown <= 0 {
		return 0, false
	}
	return sched.Cooldown(), true
}
