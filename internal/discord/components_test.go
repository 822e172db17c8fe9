package discord

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/drop/droptest"
	"github.com/osse101/dropgame/internal/ledger"
	"github.com/osse101/dropgame/internal/reason"
	"github.com/osse101/dropgame/internal/scheduler"
	"github.com/osse101/dropgame/internal/store"
	"github.com/osse101/dropgame/internal/worker"
)

// bindReason attaches a reason game backed by memory fakes.
func bindReason(t *testing.T, b *Bot) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	pool := worker.NewPool(1, 8)
	sched := scheduler.New(pool, clock)
	t.Cleanup(func() {
		sched.Stop()
		pool.Stop()
	})

	st := store.NewMemory()
	settings := reason.NewSettings(st, 0)
	b.Bind(Games{Reason: reason.New(reason.Config{
		Store:     st,
		Settings:  settings,
		Scheduler: sched,
		Sink:      droptest.NewSink(),
		Directory: &droptest.Directory{},
		Cooldowns: cooldown.NewStoreService(st, cooldown.Config{}, settings, clock),
		Ledger:    ledger.New(st, clock),
		Texts:     []string{"alpha"},
		RNG:       rand.New(rand.NewPCG(1, 2)),
	})})
}

func TestHandleComponent_Unroutable(t *testing.T) {
	tests := []struct {
		name     string
		customID string
	}{
		{"malformed", "garbage"},
		{"no reason game", "reason:claim"},
		{"no item game", "mesh:page:bag:u1:u1:1"},
		{"bad page index", "mesh:page:bag:u1:u1:next"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeDiscord(nil)
			b := newTestBot(t, fake)

			b.handleComponent(context.Background(), b.Session, buttonInteraction(tt.customID))
			calls := fake.Calls("POST /interactions/i2/tok/callback")
			require.Len(t, calls, 1)
			assert.Contains(t, calls[0].Body, "no longer does anything")
		})
	}
}

func TestHandleComponent_ReasonControl(t *testing.T) {
	fake := newFakeDiscord(nil)
	b := newTestBot(t, fake)
	bindReason(t, b)

	b.handleComponent(context.Background(), b.Session, buttonInteraction("reason:claim"))
	calls := fake.Calls("POST /interactions/i2/tok/callback")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Body, "remember this reason")
}

func TestHandleComponent_PageUpdatesInPlace(t *testing.T) {
	fake := newFakeDiscord(map[string]string{
		"GET /guilds/g1/members/u1": `{"user":{"id":"u1","username":"alice"},"roles":[]}`,
	})
	b := newTestBot(t, fake)
	bindReason(t, b)

	ref := drop.PageRef{Game: domain.GameReason, View: reason.WalletView, Owner: "u1", Target: "u1", Index: 1}
	b.handleComponent(context.Background(), b.Session, buttonInteraction(ref.Control().String()))

	calls := fake.Calls("POST /interactions/i2/tok/callback")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Body, `"type":7`)
	assert.Contains(t, calls[0].Body, "has no reasons saved yet")
}

func TestHandleComponent_PageOwnerOnly(t *testing.T) {
	fake := newFakeDiscord(map[string]string{
		"GET /guilds/g1/members/u9": `{"user":{"id":"u9","username":"zed"},"roles":[]}`,
	})
	b := newTestBot(t, fake)
	bindReason(t, b)

	ref := drop.PageRef{Game: domain.GameReason, View: reason.WalletView, Owner: "u9", Target: "u9", Index: 1}
	b.handleComponent(context.Background(), b.Session, buttonInteraction(ref.Control().String()))

	calls := fake.Calls("POST /interactions/i2/tok/callback")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Body, `"type":4`)
	assert.Contains(t, calls[0].Body, `"flags":64`)
}

func TestBot_DropNow(t *testing.T) {
	b := newTestBot(t, newFakeDiscord(nil))
	bindReason(t, b)
	ctx := context.Background()

	msg, err := b.DropNow(ctx, domain.GameReason, "g1")
	require.NoError(t, err)
	assert.Equal(t, drop.MsgDebugNoChannel, msg)

	_, err = b.DropNow(ctx, domain.GameMesh, "g1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
