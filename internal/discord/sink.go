package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/dropgame/internal/drop"
)

// Sink delivers game messages through the Discord REST API, pacing each
// channel so a busy guild does not trip the per-route rate limit.
type Sink struct {
	session *discordgo.Session

	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
}

// NewSink wraps session.
func NewSink(session *discordgo.Session) *Sink {
	return &Sink{
		session:  session,
		limiters: expirable.NewLRU[string, *rate.Limiter](LimiterCacheSize, nil, LimiterIdleTTL),
	}
}

func (k *Sink) wait(ctx context.Context, channelID string) error {
	k.mu.Lock()
	l, ok := k.limiters.Get(channelID)
	if !ok {
		l = rate.NewLimiter(rate.Every(ChannelRateEvery), ChannelBurst)
		k.limiters.Add(channelID, l)
	}
	k.mu.Unlock()
	return l.Wait(ctx)
}

// Send posts msg and returns its id.
func (k *Sink) Send(ctx context.Context, channelID string, msg drop.Message) (string, error) {
	if err := k.wait(ctx, channelID); err != nil {
		return "", err
	}
	m, err := k.session.ChannelMessageSendComplex(channelID, toSend(msg), discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf(ErrMsgSend, channelID, err)
	}
	return m.ID, nil
}

// Edit replaces the content, embed and buttons of an earlier message.
func (k *Sink) Edit(ctx context.Context, channelID, messageID string, msg drop.Message) error {
	if err := k.wait(ctx, channelID); err != nil {
		return err
	}
	if _, err := k.session.ChannelMessageEditComplex(toEdit(channelID, messageID, msg), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf(ErrMsgEdit, messageID, err)
	}
	return nil
}

// React adds emoji to a message.
func (k *Sink) React(ctx context.Context, channelID, messageID, emoji string) error {
	if err := k.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf(ErrMsgReact, messageID, err)
	}
	return nil
}

// ChannelExists reports whether channelID is a text channel of guildID,
// preferring the gateway cache over a REST lookup.
func (k *Sink) ChannelExists(ctx context.Context, guildID, channelID string) bool {
	ch, err := k.session.State.Channel(channelID)
	if err != nil {
		ch, err = k.session.Channel(channelID, discordgo.WithContext(ctx))
		if err != nil {
			return false
		}
	}
	if ch.GuildID != guildID {
		return false
	}
	return ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews
}
