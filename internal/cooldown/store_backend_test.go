package cooldown

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/store"
)

type fixedModifier struct {
	d time.Duration
}

func (m fixedModifier) CooldownFor(ctx context.Context, scope store.Scope, action string) (time.Duration, bool) {
	if action != domain.ActionAttempt {
		return 0, false
	}
	return m.d, true
}

func newStoreService(t *testing.T, cfg Config, mod Modifier) (Service, *clockwork.FakeClock, *store.Memory) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	mem := store.NewMemory()
	return NewStoreService(mem, cfg, mod, clock), clock, mem
}

func TestStoreBackend_TouchAndCheck(t *testing.T) {
	ctx := context.Background()
	svc, clock, mem := newStoreService(t, Config{}, nil)
	scope := store.Member(domain.GameMesh, "g1", "u1")

	on, _, err := svc.CheckCooldown(ctx, scope, domain.ActionAttempt)
	require.NoError(t, err)
	assert.False(t, on, "never used")

	require.NoError(t, svc.Touch(ctx, scope, domain.ActionAttempt))

	var stamp int64
	ok, err := mem.Get(ctx, scope, domain.KeyLastAttempt, &stamp)
	require.NoError(t, err)
	require.True(t, ok, "stamp lives under the last_attempt key")
	assert.Equal(t, clock.Now().UnixNano(), stamp)

	clock.Advance(500 * time.Millisecond)
	on, remaining, err := svc.CheckCooldown(ctx, scope, domain.ActionAttempt)
	require.NoError(t, err)
	assert.True(t, on)
	assert.InDelta(t, 1.5, remaining.Seconds(), 0.001)

	clock.Advance(1500 * time.Millisecond)
	on, _, err = svc.CheckCooldown(ctx, scope, domain.ActionAttempt)
	require.NoError(t, err)
	assert.False(t, on)

	last, err := svc.GetLastUsed(ctx, scope, domain.ActionAttempt)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.WithinDuration(t, clock.Now().Add(-2*time.Second), *last, time.Millisecond)
}

func TestStoreBackend_RemainingIsExact(t *testing.T) {
	ctx := context.Background()
	// Start off a microsecond boundary so truncation would show up.
	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 123456789))
	svc := NewStoreService(store.NewMemory(), Config{}, nil, clock)
	scope := store.Member(domain.GameMesh, "g1", "u1")

	require.NoError(t, svc.Touch(ctx, scope, domain.ActionAttempt))

	clock.Advance(2*time.Second - time.Nanosecond)
	on, remaining, err := svc.CheckCooldown(ctx, scope, domain.ActionAttempt)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, time.Nanosecond, remaining)

	clock.Advance(time.Nanosecond)
	on, _, err = svc.CheckCooldown(ctx, scope, domain.ActionAttempt)
	require.NoError(t, err)
	assert.False(t, on)

	last, err := svc.GetLastUsed(ctx, scope, domain.ActionAttempt)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(time.Unix(1700000000, 123456789)))
}

func TestStoreBackend_ModifierOverridesDuration(t *testing.T) {
	ctx := context.Background()
	svc, clock, _ := newStoreService(t, Config{}, fixedModifier{d: 10 * time.Second})
	scope := store.Member(domain.GameMesh, "g1", "u1")

	require.NoError(t, svc.Touch(ctx, scope, domain.ActionAttempt))
	clock.Advance(5 * time.Second)

	on, remaining, err := svc.CheckCooldown(ctx, scope, domain.ActionAttempt)
	require.NoError(t, err)
	assert.True(t, on)
	assert.InDelta(t, 5, remaining.Seconds(), 0.001)
}

func TestStoreBackend_EnforceCooldown(t *testing.T) {
	ctx := context.Background()

	t.Run("failed action leaves no stamp", func(t *testing.T) {
		svc, _, _ := newStoreService(t, Config{}, nil)
		scope := store.Member(domain.GameReason, "g1", "u1")

		boom := errors.New("boom")
		err := svc.EnforceCooldown(ctx, scope, domain.ActionSteal, func() error { return boom })
		assert.ErrorIs(t, err, boom)

		last, err := svc.GetLastUsed(ctx, scope, domain.ActionSteal)
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("second use rejected until expiry", func(t *testing.T) {
		svc, clock, _ := newStoreService(t, Config{}, nil)
		scope := store.Member(domain.GameReason, "g1", "u1")
		noop := func() error { return nil }

		require.NoError(t, svc.EnforceCooldown(ctx, scope, domain.ActionSteal, noop))

		clock.Advance(time.Minute)
		err := svc.EnforceCooldown(ctx, scope, domain.ActionSteal, noop)
		var cd ErrOnCooldown
		require.ErrorAs(t, err, &cd)
		assert.Equal(t, domain.ActionSteal, cd.Action)
		assert.InDelta(t, 240, cd.Remaining.Seconds(), 0.001)

		clock.Advance(4 * time.Minute)
		assert.NoError(t, svc.EnforceCooldown(ctx, scope, domain.ActionSteal, noop))
	})

	t.Run("concurrent callers run once", func(t *testing.T) {
		svc, _, _ := newStoreService(t, Config{}, nil)
		scope := store.Guild(domain.GameReason, "g1")

		var ran atomic.Int32
		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = svc.EnforceCooldown(ctx, scope, domain.ActionStealGuild, func() error {
					ran.Add(1)
					return nil
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), ran.Load())
	})

	t.Run("dev mode bypasses", func(t *testing.T) {
		svc, _, _ := newStoreService(t, Config{DevMode: true}, nil)
		scope := store.Member(domain.GameReason, "g1", "u1")

		var ran int
		for range 3 {
			require.NoError(t, svc.EnforceCooldown(ctx, scope, domain.ActionSteal, func() error {
				ran++
				return nil
			}))
		}
		assert.Equal(t, 3, ran)
	})
}

func TestStoreBackend_Reset(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newStoreService(t, Config{}, nil)
	scope := store.Member(domain.GameReason, "g1", "u1")

	require.NoError(t, svc.Touch(ctx, scope, domain.ActionSteal))
	require.NoError(t, svc.ResetCooldown(ctx, scope, domain.ActionSteal))

	on, _, err := svc.CheckCooldown(ctx, scope, domain.ActionSteal)
	require.NoError(t, err)
	assert.False(t, on)
}
