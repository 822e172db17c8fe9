package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/metrics"
)

// CommandHandler handles a slash command. An error means nothing was sent
// yet; the registry answers with a friendly message.
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler

	handled atomic.Int64
	lastAt  atomic.Int64
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handled returns how many commands ran and when the last one arrived.
func (r *CommandRegistry) Handled() (int64, time.Time) {
	last := r.lastAt.Load()
	if last == 0 {
		return r.handled.Load(), time.Time{}
	}
	return r.handled.Load(), time.Unix(last, 0)
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	ctx = logger.WithGuild(logger.WithRequestID(ctx, logger.GenerateRequestID()), i.GuildID)

	h, ok := r.Handlers[name]
	if !ok {
		respond(ctx, newInteractionRequest(s, i, drop.KindSlash), drop.Private(MsgUnknownCommand))
		return
	}

	metrics.CommandsHandled.WithLabelValues(name).Inc()
	r.handled.Add(1)
	r.lastAt.Store(time.Now().Unix())

	if err := h(ctx, s, i); err != nil {
		logger.FromContext(ctx).Error(LogMsgCommandFailed, "command", name, "error", err)
		respond(ctx, newInteractionRequest(s, i, drop.KindSlash), drop.Private(formatFriendlyError(err)))
	}
}

// RegisterCommands registers the bot's commands, scoped to guildID when set.
// It only writes when the command set differs from Discord's copy.
func (b *Bot) RegisterCommands(forceUpdate bool) error {
	slog.Info(LogMsgCheckingCommands)

	desired := make([]*discordgo.ApplicationCommand, 0, len(b.Registry.Commands))
	for _, cmd := range b.Registry.Commands {
		desired = append(desired, cmd)
	}

	if !forceUpdate {
		existing, err := b.Session.ApplicationCommands(b.AppID, b.GuildID)
		if err != nil {
			return fmt.Errorf(ErrMsgFetchCommands, err)
		}
		if commandsEqual(existing, desired) {
			slog.Info(LogMsgCommandsUnchanged, "count", len(existing))
			return nil
		}
		slog.Info(LogMsgCommandsChanged, "existing", len(existing), "desired", len(desired))
	} else {
		slog.Info(LogMsgCommandsForced, "count", len(desired))
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desired); err != nil {
		return fmt.Errorf(ErrMsgUpdateCommands, err)
	}
	slog.Info(LogMsgCommandsUpdated, "count", len(desired))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	byName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		byName[cmd.Name] = cmd
	}
	for _, d := range desired {
		e, ok := byName[d.Name]
		if !ok || !commandEqual(e, d) {
			return false
		}
	}
	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}
	return optionsEqual(a.Options, b.Options)
}

func optionsEqual(a, b []*discordgo.ApplicationCommandOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !optionEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// optionEqual compares options including nested subcommand options.
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description || a.Required != b.Required {
		return false
	}
	if len(a.Choices) != len(b.Choices) || len(a.ChannelTypes) != len(b.ChannelTypes) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}
	for i := range a.ChannelTypes {
		if a.ChannelTypes[i] != b.ChannelTypes[i] {
			return false
		}
	}
	return optionsEqual(a.Options, b.Options)
}

// respond sends msg and logs delivery failures, which have nowhere else to go.
func respond(ctx context.Context, req drop.ClaimRequest, msg drop.Message) {
	if err := req.Respond(ctx, msg); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
	}
}

// formatFriendlyError maps domain errors onto readable replies.
func formatFriendlyError(err error) string {
	var cd cooldown.ErrOnCooldown
	switch {
	case errors.As(err, &cd):
		return fmt.Sprintf(MsgFmtCooldownWait, MsgCooldownActive, cd.Error())
	case errors.Is(err, domain.ErrNotAdmin):
		return MsgNotAdmin
	case errors.Is(err, domain.ErrStoreUnavailable):
		return MsgStoreDown
	case errors.Is(err, domain.ErrInvalidInput):
		return MsgInvalidInput
	default:
		return MsgGenericError
	}
}
