package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/drop/droptest"
)

func TestMessageRequest(t *testing.T) {
	ctx := context.Background()
	sink := droptest.NewSink()
	m := &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m5",
		ChannelID: "c1",
		GuildID:   "g1",
		Author:    &discordgo.User{ID: "u1", Username: "alice"},
		Member:    &discordgo.Member{Nick: "Al"},
	}}
	req := newMessageRequest(sink, m)

	assert.Equal(t, drop.KindText, req.Kind())
	assert.Equal(t, drop.Member{ID: "u1", DisplayName: "Al"}, req.Actor())
	assert.Equal(t, "m5", req.MessageID())

	require.NoError(t, req.Respond(ctx, drop.Private("revealed")))
	sent := sink.Last()
	assert.Equal(t, "c1", sent.ChannelID)
	assert.Equal(t, "m5", sent.Msg.ReplyTo)
	assert.False(t, sent.Msg.Ephemeral, "channel messages cannot be private")

	require.NoError(t, req.React(ctx, drop.EmojiNothing))
	assert.Equal(t, []string{drop.EmojiNothing}, sink.Reactions())
}

func TestInteractionRequest_RespondThenFollowUp(t *testing.T) {
	fake := newFakeDiscord(map[string]string{
		"POST /webhooks/app/tok": `{"id":"f1","channel_id":"c1"}`,
	})
	b := newTestBot(t, fake)
	ctx := context.Background()

	req := newInteractionRequest(b.Session, buttonInteraction("reason:claim"), drop.KindButton)
	assert.Equal(t, "m1", req.MessageID())
	assert.Equal(t, "u1", req.Actor().ID)

	require.NoError(t, req.Respond(ctx, drop.Text("first")))
	require.NoError(t, req.React(ctx, drop.EmojiCooldown))

	callbacks := fake.Calls("POST /interactions/i2/tok/callback")
	require.Len(t, callbacks, 1)
	assert.Contains(t, callbacks[0].Body, "first")

	followups := fake.Calls("POST /webhooks/app/tok")
	require.Len(t, followups, 1)
	assert.Contains(t, followups[0].Body, drop.EmojiCooldown)
	assert.Contains(t, followups[0].Body, `"flags":64`)
}

func TestInteractionRequest_SlashHasNoMessage(t *testing.T) {
	req := newInteractionRequest(nil, commandInteraction("reason", 0), drop.KindSlash)
	assert.Empty(t, req.MessageID())
	assert.Equal(t, "g1", req.GuildID())
	assert.Equal(t, "c1", req.ChannelID())
}
