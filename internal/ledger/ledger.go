// Package ledger persists what members win: reward histories, counters,
// points, wallets and a guild's best-rated reasons.
package ledger

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/dropgame/internal/concurrency"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/metrics"
	"github.com/osse101/dropgame/internal/store"
)

// Ledger is the read-modify-write layer over the keyed store. Writes to one
// scope are serialised in-process.
type Ledger struct {
	st    store.Store
	clock clockwork.Clock
	locks *concurrency.LockManager
}

// New creates a ledger. A nil clock means the real clock.
func New(st store.Store, clock clockwork.Clock) *Ledger {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Ledger{
		st:    st,
		clock: clock,
		locks: concurrency.NewLockManager(),
	}
}

// ItemStats summarises a member's reward history.
type ItemStats struct {
	TotalClaims int
	ByTier      map[domain.Tier]int
}

// RecordReward appends rec to the member's history, dropping the oldest
// entries beyond limit, and bumps the tier and total counters.
func (l *Ledger) RecordReward(ctx context.Context, scope store.Scope, rec domain.RewardRecord, limit int) error {
	err := l.locks.Do(scope.String(), func() error {
		items, err := store.GetOr(ctx, l.st, scope, domain.KeyItems, []domain.RewardRecord(nil))
		if err != nil {
			return fmt.Errorf(ErrMsgLoadHistory, scope, err)
		}
		items = appendCapped(items, rec, limit)
		if err := l.st.Set(ctx, scope, domain.KeyItems, items); err != nil {
			return fmt.Errorf(ErrMsgSaveHistory, scope, err)
		}
		if err := l.incr(ctx, scope, rec.Tier.CounterKey()); err != nil {
			return err
		}
		return l.incr(ctx, scope, domain.KeyClaims)
	})
	if err != nil {
		return err
	}

	metrics.RewardsAwarded.WithLabelValues(string(scope.Game), rec.Tier.String()).Inc()
	logger.FromContext(ctx).Info(LogMsgRewardRecorded,
		"game", scope.Game, "guild_id", scope.GuildID, "user_id", scope.UserID,
		"rarity", rec.Tier.String(), "item", rec.Name)
	return nil
}

func (l *Ledger) incr(ctx context.Context, scope store.Scope, key string) error {
	n, err := store.GetOr(ctx, l.st, scope, key, 0)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateCounter, key, scope, err)
	}
	if err := l.st.Set(ctx, scope, key, n+1); err != nil {
		return fmt.Errorf(ErrMsgUpdateCounter, key, scope, err)
	}
	return nil
}

// History returns the member's rewards, newest first.
func (l *Ledger) History(ctx context.Context, scope store.Scope) ([]domain.RewardRecord, error) {
	items, err := store.GetOr(ctx, l.st, scope, domain.KeyItems, []domain.RewardRecord(nil))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadHistory, scope, err)
	}
	return newestFirst(items), nil
}

// Stats reads the member's counters.
func (l *Ledger) Stats(ctx context.Context, scope store.Scope) (ItemStats, error) {
	stats := ItemStats{ByTier: make(map[domain.Tier]int, len(domain.Tiers))}

	total, err := store.GetOr(ctx, l.st, scope, domain.KeyClaims, 0)
	if err != nil {
		return stats, fmt.Errorf(ErrMsgUpdateCounter, domain.KeyClaims, scope, err)
	}
	stats.TotalClaims = total

	for _, t := range domain.Tiers {
		n, err := store.GetOr(ctx, l.st, scope, t.CounterKey(), 0)
		if err != nil {
			return stats, fmt.Errorf(ErrMsgUpdateCounter, t.CounterKey(), scope, err)
		}
		stats.ByTier[t] = n
	}
	return stats, nil
}

func appendCapped[T any](items []T, item T, limit int) []T {
	items = append(items, item)
	if limit > 0 && len(items) > limit {
		items = append([]T(nil), items[len(items)-limit:]...)
	}
	return items
}

func newestFirst[T any](items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return out
}
