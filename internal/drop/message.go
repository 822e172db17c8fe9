package drop

import (
	"context"
	"fmt"
)

// Member is a guild member as the games see it.
type Member struct {
	ID          string
	DisplayName string
	Bot         bool
}

// Mention renders the chat mention for m.
func (m Member) Mention() string {
	return fmt.Sprintf("<@%s>", m.ID)
}

// ButtonStyle mirrors the platform's button colors.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// Button is an interactive control attached to a message.
type Button struct {
	ID       string
	Label    string
	Emoji    string
	Style    ButtonStyle
	Disabled bool
}

// Field is a titled block inside an embed.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is the rich card shown under a message.
type Embed struct {
	Title       string
	Description string
	Color       int
	Footer      string
	Fields      []Field
}

// Message is transport-neutral outgoing content. Ephemeral is honored only
// by interaction replies. ReplyTo, when set, threads a channel message under
// an earlier one.
type Message struct {
	Content   string
	Embed     *Embed
	Buttons   []Button
	Ephemeral bool
	ReplyTo   string
}

// Text builds a plain message.
func Text(content string) Message {
	return Message{Content: content}
}

// Private builds an ephemeral plain message.
func Private(content string) Message {
	return Message{Content: content, Ephemeral: true}
}

// Sink delivers messages to channels.
type Sink interface {
	// Send posts msg and returns the new message id.
	Send(ctx context.Context, channelID string, msg Message) (string, error)
	Edit(ctx context.Context, channelID, messageID string, msg Message) error
	React(ctx context.Context, channelID, messageID, emoji string) error
	// ChannelExists reports whether channelID is a text channel of the guild.
	ChannelExists(ctx context.Context, guildID, channelID string) bool
}

// Directory answers membership questions.
type Directory interface {
	// EligibleMembers lists non-bot members who can view channelID.
	EligibleMembers(ctx context.Context, guildID, channelID string) ([]Member, error)
}

// RequestKind is the transport a claim or command arrived on.
type RequestKind int

const (
	KindSlash RequestKind = iota + 1
	KindText
	KindButton
)

func (k RequestKind) String() string {
	switch k {
	case KindSlash:
		return "slash"
	case KindText:
		return "text"
	case KindButton:
		return "button"
	default:
		return "unknown"
	}
}

// ClaimRequest is one user action routed to a game, whatever transport it
// came from.
type ClaimRequest interface {
	Kind() RequestKind
	Actor() Member
	GuildID() string
	ChannelID() string
	// MessageID is the message the action refers to: the typed message for
	// text, the message carrying the control for buttons, empty for slash.
	MessageID() string
	// Respond replies to the action.
	Respond(ctx context.Context, msg Message) error
	// React acknowledges with an emoji: a reaction on text messages, a
	// private reply elsewhere.
	React(ctx context.Context, emoji string) error
}
