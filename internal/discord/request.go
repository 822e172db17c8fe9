package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/dropgame/internal/drop"
)

// interactionRequest adapts a slash command or button press. The first
// reply answers the interaction, later ones are follow-ups.
type interactionRequest struct {
	session *discordgo.Session
	i       *discordgo.InteractionCreate
	kind    drop.RequestKind

	mu        sync.Mutex
	responded bool
}

func newInteractionRequest(s *discordgo.Session, i *discordgo.InteractionCreate, kind drop.RequestKind) *interactionRequest {
	return &interactionRequest{session: s, i: i, kind: kind}
}

func (r *interactionRequest) Kind() drop.RequestKind { return r.kind }
func (r *interactionRequest) Actor() drop.Member     { return memberOf(r.i.Member, r.i.User) }
func (r *interactionRequest) GuildID() string        { return r.i.GuildID }
func (r *interactionRequest) ChannelID() string      { return r.i.ChannelID }

func (r *interactionRequest) MessageID() string {
	if r.i.Message == nil {
		return ""
	}
	return r.i.Message.ID
}

func (r *interactionRequest) Respond(ctx context.Context, msg drop.Message) error {
	return r.reply(ctx, discordgo.InteractionResponseChannelMessageWithSource, msg)
}

// Update rewrites the message carrying the pressed button.
func (r *interactionRequest) Update(ctx context.Context, msg drop.Message) error {
	return r.reply(ctx, discordgo.InteractionResponseUpdateMessage, msg)
}

func (r *interactionRequest) React(ctx context.Context, emoji string) error {
	return r.Respond(ctx, drop.Private(emoji))
}

func (r *interactionRequest) reply(ctx context.Context, typ discordgo.InteractionResponseType, msg drop.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.responded {
		_, err := r.session.FollowupMessageCreate(r.i.Interaction, true, toFollowup(msg), discordgo.WithContext(ctx))
		return err
	}
	err := r.session.InteractionRespond(r.i.Interaction, &discordgo.InteractionResponse{
		Type: typ,
		Data: toResponseData(msg),
	}, discordgo.WithContext(ctx))
	if err == nil {
		r.responded = true
	}
	return err
}

// messageRequest adapts a typed trigger word. Replies thread under the
// typed message through the paced sink.
type messageRequest struct {
	sink drop.Sink
	m    *discordgo.MessageCreate
}

func newMessageRequest(sink drop.Sink, m *discordgo.MessageCreate) *messageRequest {
	return &messageRequest{sink: sink, m: m}
}

func (r *messageRequest) Kind() drop.RequestKind { return drop.KindText }
func (r *messageRequest) Actor() drop.Member     { return memberOf(r.m.Member, r.m.Author) }
func (r *messageRequest) GuildID() string        { return r.m.GuildID }
func (r *messageRequest) ChannelID() string      { return r.m.ChannelID }
func (r *messageRequest) MessageID() string      { return r.m.ID }

func (r *messageRequest) Respond(ctx context.Context, msg drop.Message) error {
	msg.ReplyTo = r.m.ID
	msg.Ephemeral = false
	_, err := r.sink.Send(ctx, r.m.ChannelID, msg)
	return err
}

func (r *messageRequest) React(ctx context.Context, emoji string) error {
	return r.sink.React(ctx, r.m.ChannelID, r.m.ID, emoji)
}
