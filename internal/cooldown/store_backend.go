package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/dropgame/internal/concurrency"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/store"
)

// storeBackend keeps cooldown stamps in the keyed store as unix nanoseconds
// and serialises enforcement with in-process locks.
type storeBackend struct {
	st       store.Store
	config   Config
	modifier Modifier
	locks    *concurrency.LockManager
	clock    clockwork.Clock
}

// NewStoreService creates a cooldown service over the keyed store.
func NewStoreService(st store.Store, config Config, modifier Modifier, clock clockwork.Clock) Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &storeBackend{
		st:       st,
		config:   config,
		modifier: modifier,
		locks:    concurrency.NewLockManager(),
		clock:    clock,
	}
}

func (b *storeBackend) CheckCooldown(ctx context.Context, scope store.Scope, action string) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	lastUsed, err := b.GetLastUsed(ctx, scope, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	duration := effectiveCooldown(ctx, &b.config, b.modifier, scope, action)
	onCooldown, remaining := checkCooldownInternal(b.clock.Now(), lastUsed, duration)
	return onCooldown, remaining, nil
}

func (b *storeBackend) Touch(ctx context.Context, scope store.Scope, action string) error {
	return b.locks.Do(lockKey(scope, action), func() error {
		return b.stamp(ctx, scope, action, b.clock.Now())
	})
}

func (b *storeBackend) EnforceCooldown(ctx context.Context, scope store.Scope, action string, fn func() error) error {
	log := logger.FromContext(ctx)

	onCooldown, remaining, err := b.CheckCooldown(ctx, scope, action)
	if err != nil {
		return err
	}
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if b.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action, "scope", scope.String())
		if err := fn(); err != nil {
			return err
		}
		return b.stamp(ctx, scope, action, b.clock.Now())
	}

	return b.locks.Do(lockKey(scope, action), func() error {
		onCooldown, remaining, err := b.CheckCooldown(ctx, scope, action)
		if err != nil {
			return err
		}
		if onCooldown {
			log.Debug(LogMsgRaceConditionDetected, "action", action, "scope", scope.String(), "remaining", remaining)
			return ErrOnCooldown{Action: action, Remaining: remaining}
		}

		if err := fn(); err != nil {
			return err
		}

		if err := b.stamp(ctx, scope, action, b.clock.Now()); err != nil {
			return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
		}
		log.Debug(LogMsgCooldownEnforced, "action", action, "scope", scope.String())
		return nil
	})
}

func (b *storeBackend) ResetCooldown(ctx context.Context, scope store.Scope, action string) error {
	if err := b.st.Delete(ctx, scope, StoreKeyPrefix+action); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

func (b *storeBackend) GetLastUsed(ctx context.Context, scope store.Scope, action string) (*time.Time, error) {
	var nanos int64
	ok, err := b.st.Get(ctx, scope, StoreKeyPrefix+action, &nanos)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLastUsedFailed, err)
	}
	if !ok {
		return nil, nil
	}
	t := time.Unix(0, nanos)
	return &t, nil
}

func (b *storeBackend) stamp(ctx context.Context, scope store.Scope, action string, at time.Time) error {
	return b.st.Set(ctx, scope, StoreKeyPrefix+action, at.UnixNano())
}

func lockKey(scope store.Scope, action string) string {
	return scope.String() + HashSeparator + action
}
