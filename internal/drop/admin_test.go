package drop

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/dropgame/internal/domain"
)

func TestGame_SetChannel(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.sink.setMissing("gone", true)
	assert.ErrorIs(t, h.game.SetChannel(ctx, testGuild, "gone"), domain.ErrChannelMissing)
	assert.Equal(t, 0, h.sched.Len())

	require.NoError(t, h.game.SetChannel(ctx, testGuild, testChannel))
	require.NoError(t, h.game.SetChannel(ctx, testGuild, testChannel))
	assert.Equal(t, 1, h.sched.Len(), "same channel twice keeps one schedule")

	sched, err := h.game.Settings().Load(ctx, testGuild)
	require.NoError(t, err)
	assert.Equal(t, testChannel, sched.ChannelID)
}

func TestGame_ClearChannelGoesIdle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.game.SetChannel(ctx, testGuild, testChannel))
	_, err := h.game.SetTestMode(ctx, testGuild, true, "c-test")
	require.NoError(t, err)

	require.NoError(t, h.game.ClearChannel(ctx, testGuild))
	assert.Equal(t, 0, h.sched.Len())

	sched, err := h.game.Settings().Load(ctx, testGuild)
	require.NoError(t, err)
	assert.False(t, sched.Configured())
	assert.False(t, sched.TestMode)
	assert.Empty(t, sched.TestChannelID)
}

func TestGame_SetTestModeReschedules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.game.SetChannel(ctx, testGuild, testChannel))

	sched, err := h.game.SetTestMode(ctx, testGuild, true, "")
	require.NoError(t, err)
	assert.Equal(t, testChannel, sched.EffectiveChannel())

	at, ok := h.sched.Pending(h.game.postKey(testGuild))
	require.True(t, ok)
	assert.Equal(t, h.clock.Now().Add(domain.TestModeDropDelay), at)

	h.sink.setMissing("gone", true)
	_, err = h.game.SetTestMode(ctx, testGuild, true, "gone")
	assert.ErrorIs(t, err, domain.ErrChannelMissing)
}

func TestReplies(t *testing.T) {
	msg, err := ChannelSetReply("Mesh", "c1", nil)
	require.NoError(t, err)
	assert.Equal(t, "✅ Mesh drops will appear in <#c1>.", msg)

	msg, err = ChannelSetReply("Mesh", "c1", domain.ErrChannelMissing)
	require.NoError(t, err)
	assert.Equal(t, MsgChannelUnavailable, msg)

	_, err = ChannelClearedReply("Mesh", errBoom)
	assert.ErrorIs(t, err, errBoom)

	msg, err = TestModeReply(domain.GuildDropSchedule{ChannelID: "c1", TestMode: true, TestChannelID: "c2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "🧪 Test mode on: drops every minute in <#c2>.", msg)

	msg, err = TestModeReply(domain.GuildDropSchedule{TestMode: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, MsgTestModeNoChannel, msg)

	tests := []struct {
		err  error
		want string
	}{
		{nil, MsgDebugSent},
		{domain.ErrNotConfigured, MsgDebugNoChannel},
		{domain.ErrChannelMissing, MsgDebugMissing},
		{domain.ErrDropActive, MsgDebugActive},
		{fmt.Errorf("wrapped: %w", domain.ErrNoMembers), MsgDebugNoMembers},
	}
	for _, tt := range tests {
		got, err := DropNowReply(tt.err)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err = DropNowReply(errBoom)
	assert.ErrorIs(t, err, errBoom)
}
