package drop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/dropgame/internal/domain"
)

func TestGame_ActivateIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.configure(t, nil)
	ctx := context.Background()

	require.NoError(t, h.game.Activate(ctx, testGuild))
	first, ok := h.sched.Pending(h.game.postKey(testGuild))
	require.True(t, ok)

	h.clock.Advance(3 * time.Second)
	for range 3 {
		require.NoError(t, h.game.Activate(ctx, testGuild))
	}

	again, ok := h.sched.Pending(h.game.postKey(testGuild))
	require.True(t, ok)
	assert.Equal(t, first, again, "re-activation must not reschedule")
	assert.Equal(t, 1, h.sched.Len())
}

func TestGame_ActivateWithoutChannelStaysIdle(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.game.Activate(context.Background(), testGuild))
	assert.Equal(t, 0, h.sched.Len())
}

func TestGame_ActivateWhileDropOutstanding(t *testing.T) {
	h := newHarness(t)
	h.configure(t, nil)
	ctx := context.Background()

	_, err := h.game.DropNow(ctx, testGuild)
	require.NoError(t, err)

	require.NoError(t, h.game.Activate(ctx, testGuild))
	assert.False(t, h.pending(h.game.postKey(testGuild)))
	assert.True(t, h.pending(h.game.expireKey(testGuild)))
}

func TestGame_TestModeUsesShortDelay(t *testing.T) {
	h := newHarness(t)
	h.configure(t, func(s *domain.GuildDropSchedule) { s.TestMode = true })

	require.NoError(t, h.game.Activate(context.Background(), testGuild))
	at, ok := h.sched.Pending(h.game.postKey(testGuild))
	require.True(t, ok)
	assert.Equal(t, h.clock.Now().Add(domain.TestModeDropDelay), at)
}

func TestGame_DropNow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		_, err := h.game.DropNow(ctx, testGuild)
		assert.ErrorIs(t, err, domain.ErrNotConfigured)
		assert.Equal(t, 0, h.sink.count())
	})

	h.configure(t, nil)

	t.Run("channel missing", func(t *testing.T) {
		h.sink.setMissing(testChannel, true)
		defer h.sink.setMissing(testChannel, false)

		_, err := h.game.DropNow(ctx, testGuild)
		assert.ErrorIs(t, err, domain.ErrChannelMissing)
		assert.Equal(t, 0, h.sink.count())
	})

	t.Run("no eligible members", func(t *testing.T) {
		h.hooks.setAnnounceErr(domain.ErrNoMembers)
		defer h.hooks.setAnnounceErr(nil)

		_, err := h.game.DropNow(ctx, testGuild)
		assert.ErrorIs(t, err, domain.ErrNoMembers)
	})

	t.Run("posts and records bookkeeping", func(t *testing.T) {
		active, err := h.game.DropNow(ctx, testGuild)
		require.NoError(t, err)

		assert.Equal(t, "m1", active.MessageID)
		assert.Equal(t, testChannel, active.ChannelID)
		assert.Equal(t, h.clock.Now(), active.StartedAt)
		assert.Equal(t, testChannel, h.sink.last().ChannelID)

		sched, err := h.game.Settings().Load(ctx, testGuild)
		require.NoError(t, err)
		assert.True(t, sched.FirstDropDone)
		assert.Equal(t, h.clock.Now().Unix(), sched.LastDropAt)

		at, ok := h.sched.Pending(h.game.expireKey(testGuild))
		require.True(t, ok)
		assert.Equal(t, h.clock.Now().Add(600*time.Second), at)
	})

	t.Run("second drop while outstanding", func(t *testing.T) {
		_, err := h.game.DropNow(ctx, testGuild)
		assert.ErrorIs(t, err, domain.ErrDropActive)
		assert.Equal(t, 1, h.sink.count())
	})
}

func TestGame_DropNowPostsToTestChannel(t *testing.T) {
	h := newHarness(t)
	h.configure(t, func(s *domain.GuildDropSchedule) {
		s.TestMode = true
		s.TestChannelID = "c-test"
	})

	active, err := h.game.DropNow(context.Background(), testGuild)
	require.NoError(t, err)
	assert.Equal(t, "c-test", active.ChannelID)
}

func TestGame_NoExpiryWaitsForClaim(t *testing.T) {
	h := newHarness(t)
	h.configure(t, func(s *domain.GuildDropSchedule) { s.ExpirySeconds = 0 })

	_, err := h.game.DropNow(context.Background(), testGuild)
	require.NoError(t, err)
	assert.Equal(t, 0, h.sched.Len())
	assert.True(t, h.game.Registry().Get(testGuild).Snapshot().Outstanding())
}

func TestGame_ResolveSchedulesNextDrop(t *testing.T) {
	h := newHarness(t)
	h.configure(t, nil)
	ctx := context.Background()

	active, err := h.game.DropNow(ctx, testGuild)
	require.NoError(t, err)
	state := h.game.Registry().Get(testGuild)
	done := state.Done()

	res, err := h.game.Arbitrator().Attempt(ctx, testGuild, "u1", testChannel, "")
	require.NoError(t, err)
	require.Equal(t, Won, res.Outcome)
	assert.Equal(t, active.MessageID, res.Drop.MessageID)
	assert.Equal(t, "u1", res.Drop.ClaimedBy)

	select {
	case <-done:
	default:
		t.Fatal("claim should signal the drop's done channel")
	}

	h.game.Resolve(ctx, testGuild, active.MessageID)

	assert.False(t, state.Snapshot().Outstanding())
	assert.Empty(t, state.Snapshot().MessageID)
	assert.False(t, h.pending(h.game.expireKey(testGuild)))
	at, ok := h.sched.Pending(h.game.postKey(testGuild))
	require.True(t, ok)
	assert.Equal(t, h.clock.Now().Add(10*time.Second), at)

	// Resolving a stale id is ignored.
	h.game.Resolve(ctx, testGuild, "nope")
	assert.Equal(t, 1, h.sched.Len())
}

func TestGame_ExpiryScenario(t *testing.T) {
	h := newHarness(t)
	h.configure(t, nil)
	h.start(t)
	ctx := context.Background()

	require.NoError(t, h.game.Activate(ctx, testGuild))
	h.blockUntilTimer(t)
	h.clock.Advance(10 * time.Second)

	require.Eventually(t, func() bool { return h.sink.count() == 1 }, waitFor, tick)
	postedAt := h.clock.Now()
	require.Eventually(t, func() bool { return h.pending(h.game.expireKey(testGuild)) }, waitFor, tick)
	at, _ := h.sched.Pending(h.game.expireKey(testGuild))
	assert.Equal(t, postedAt.Add(600*time.Second), at)

	h.blockUntilTimer(t)
	h.clock.Advance(600 * time.Second)

	select {
	case expired := <-h.hooks.expired:
		assert.Equal(t, h.sink.last().MessageID, expired.MessageID)
		assert.Equal(t, postedAt, expired.StartedAt)
	case <-time.After(waitFor):
		t.Fatal("drop did not expire")
	}

	res, err := h.game.Arbitrator().Attempt(ctx, testGuild, "u1", testChannel, "")
	require.NoError(t, err)
	assert.Equal(t, NothingToClaim, res.Outcome)

	require.Eventually(t, func() bool { return h.pending(h.game.postKey(testGuild)) }, waitFor, tick)
}

func TestGame_PostFailureBacksOff(t *testing.T) {
	h := newHarness(t)
	h.configure(t, nil)
	h.sink.setSendErr(errBoom)
	h.start(t)
	ctx := context.Background()

	require.NoError(t, h.game.Activate(ctx, testGuild))
	h.blockUntilTimer(t)
	h.clock.Advance(10 * time.Second)

	retryAt := h.clock.Now().Add(domain.PostFailureBackoff)
	require.Eventually(t, func() bool {
		at, ok := h.sched.Pending(h.game.postKey(testGuild))
		return ok && at.Equal(retryAt)
	}, waitFor, tick)
	assert.False(t, h.game.Registry().Get(testGuild).Snapshot().Outstanding())

	h.sink.setSendErr(nil)
	h.blockUntilTimer(t)
	h.clock.Advance(domain.PostFailureBackoff)

	require.Eventually(t, func() bool { return h.sink.count() == 1 }, waitFor, tick)
}

func TestGame_MissingChannelSkipsRound(t *testing.T) {
	h := newHarness(t)
	h.configure(t, nil)
	h.sink.setMissing(testChannel, true)
	h.start(t)

	require.NoError(t, h.game.Activate(context.Background(), testGuild))
	h.blockUntilTimer(t)
	h.clock.Advance(10 * time.Second)

	nextAt := h.clock.Now().Add(10 * time.Second)
	require.Eventually(t, func() bool {
		at, ok := h.sched.Pending(h.game.postKey(testGuild))
		return ok && at.Equal(nextAt)
	}, waitFor, tick)
	assert.Equal(t, 0, h.sink.count())
}

func TestGame_Deactivate(t *testing.T) {
	h := newHarness(t)
	h.configure(t, nil)
	ctx := context.Background()

	_, err := h.game.DropNow(ctx, testGuild)
	require.NoError(t, err)

	h.game.Deactivate(ctx, testGuild)
	assert.Equal(t, 0, h.sched.Len())
	assert.Empty(t, h.game.Registry().Get(testGuild).Snapshot().MessageID)
}

func TestGame_Shutdown(t *testing.T) {
	h := newHarness(t)
	h.configure(t, nil)
	ctx := context.Background()

	require.NoError(t, h.game.Activate(ctx, testGuild))
	require.Equal(t, 1, h.sched.Len())

	h.game.Shutdown(ctx)
	assert.Equal(t, 0, h.sched.Len())
	assert.Empty(t, h.game.Registry().Guilds())

	require.NoError(t, h.game.Activate(ctx, testGuild))
	assert.Equal(t, 0, h.sched.Len(), "a shut down game must not schedule")
}

type fakeRestorer struct {
	mu     sync.Mutex
	calls  int
	active Active
}

func (r *fakeRestorer) Restore(ctx context.Context, guildID string) (Active, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.active, r.active.MessageID != "", nil
}

func TestGame_RestoresOutstandingDrop(t *testing.T) {
	restorer := &fakeRestorer{}
	h := newHarness(t, withRestorer(restorer), withCadence(DefaultFixedCadence))
	h.configure(t, nil)
	ctx := context.Background()

	startedAt := h.clock.Now().Add(-100 * time.Second)
	restorer.active = Active{MessageID: "m9", ChannelID: testChannel, StartedAt: startedAt}

	require.NoError(t, h.game.Activate(ctx, testGuild))
	require.NoError(t, h.game.Activate(ctx, testGuild))

	assert.Equal(t, 1, restorer.calls)
	snap := h.game.Registry().Get(testGuild).Snapshot()
	assert.Equal(t, "m9", snap.MessageID)
	assert.True(t, snap.Outstanding())

	at, ok := h.sched.Pending(h.game.expireKey(testGuild))
	require.True(t, ok)
	assert.Equal(t, startedAt.Add(600*time.Second), at)
	assert.False(t, h.pending(h.game.postKey(testGuild)))

	res, err := h.game.Arbitrator().Attempt(ctx, testGuild, "u1", testChannel, "m9")
	require.NoError(t, err)
	assert.Equal(t, Won, res.Outcome)
}
