// Package discord connects the drop games to Discord: gateway events drive
// the schedules and claims, slash commands and buttons reach the games, and
// a paced REST sink carries their messages.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/itemdrop"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/reason"
)

// Intents the games rely on: guild lifecycle, typed triggers and the member
// list used to pick reason subjects.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildMembers

// Config holds the bot configuration
type Config struct {
	Token string
	AppID string
	// GuildID scopes command registration to one guild when set.
	GuildID            string
	ForceCommandUpdate bool
}

// Games lists the drop games the bot serves.
type Games struct {
	Items  []*itemdrop.Service
	Reason *reason.Service
}

// Bot represents the Discord bot
type Bot struct {
	Session   *discordgo.Session
	AppID     string
	GuildID   string
	Registry  *CommandRegistry
	Sink      *Sink
	Directory *Directory

	force     bool
	items     []*itemdrop.Service
	reason    *reason.Service
	ctx       context.Context
	startedAt time.Time
}

// New creates a new Discord bot. Bind the games before Start.
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSession, err)
	}
	s.Identify.Intents = Intents

	return &Bot{
		Session:   s,
		AppID:     cfg.AppID,
		GuildID:   cfg.GuildID,
		Registry:  NewCommandRegistry(),
		Sink:      NewSink(s),
		Directory: NewDirectory(s),
		force:     cfg.ForceCommandUpdate,
		ctx:       context.Background(),
		startedAt: time.Now(),
	}, nil
}

// Bind registers the command group of every game.
func (b *Bot) Bind(g Games) {
	b.items = g.Items
	b.reason = g.Reason
	for _, svc := range g.Items {
		b.Registry.Register(itemCommand(svc))
	}
	if g.Reason != nil {
		b.Registry.Register(reasonCommand(g.Reason))
	}
}

// Start opens the gateway and syncs commands. ctx bounds every handler.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.guildCreate)
	b.Session.AddHandler(b.guildDelete)
	b.Session.AddHandler(b.memberChanged)
	b.Session.AddHandler(b.memberLeft)
	b.Session.AddHandler(b.messageCreate)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf(ErrMsgOpenSession, err)
	}
	if err := b.RegisterCommands(b.force); err != nil {
		return err
	}

	slog.Info(LogMsgRunning, "games", len(b.lifecycles()))
	return nil
}

// Stop closes the gateway.
func (b *Bot) Stop() error {
	return b.Session.Close()
}

// Connected reports whether the gateway session is ready.
func (b *Bot) Connected() bool {
	return b.Session != nil && b.Session.DataReady
}

// Handled returns the command counters for health reporting.
func (b *Bot) Handled() (int64, time.Time) {
	return b.Registry.Handled()
}

// Uptime is the time since the bot was created.
func (b *Bot) Uptime() time.Duration {
	return time.Since(b.startedAt)
}

func (b *Bot) lifecycles() []*drop.Game {
	games := make([]*drop.Game, 0, len(b.items)+1)
	for _, svc := range b.items {
		games = append(games, svc.Game())
	}
	if b.reason != nil {
		games = append(games, b.reason.Game())
	}
	return games
}

func (b *Bot) itemGame(kind domain.Game) *itemdrop.Service {
	for _, svc := range b.items {
		if svc.Variant().Game == kind {
			return svc
		}
	}
	return nil
}

// DropNow forces a drop of kind in guildID for the ops API.
func (b *Bot) DropNow(ctx context.Context, kind domain.Game, guildID string) (string, error) {
	var svc dropAdmin
	if kind == domain.GameReason && b.reason != nil {
		svc = b.reason
	} else if item := b.itemGame(kind); item != nil {
		svc = item
	}
	if svc == nil {
		return "", fmt.Errorf("%w: game %q", domain.ErrInvalidInput, kind)
	}
	return svc.DropNow(ctx, guildID)
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info(LogMsgReady, "user", r.User.Username, "guilds", len(r.Guilds))
}

// guildCreate fires for every guild on connect and on join; each game
// resumes or starts its schedule there.
func (b *Bot) guildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Unavailable {
		return
	}
	ctx := logger.WithGuild(logger.WithRequestID(b.ctx, logger.GenerateRequestID()), g.ID)
	logger.FromContext(ctx).Info(LogMsgGuildJoined, "name", g.Name)
	for _, game := range b.lifecycles() {
		if err := game.Activate(ctx, g.ID); err != nil {
			logger.FromContext(ctx).Error(LogMsgActivateFailed, "game", game.Kind(), "error", err)
		}
	}
}

func (b *Bot) guildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	ctx := logger.WithGuild(b.ctx, g.ID)
	logger.FromContext(ctx).Info(LogMsgGuildLeft)
	for _, game := range b.lifecycles() {
		game.Deactivate(ctx, g.ID)
	}
	b.Directory.Forget(g.ID)
}

func (b *Bot) memberChanged(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	b.Directory.Forget(m.GuildID)
}

func (b *Bot) memberLeft(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	b.Directory.Forget(m.GuildID)
}

// messageCreate offers typed messages to the item games' trigger words.
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	ctx := logger.WithGuild(logger.WithRequestID(b.ctx, logger.GenerateRequestID()), m.GuildID)
	req := newMessageRequest(b.Sink, m)
	for _, svc := range b.items {
		handled, err := svc.HandleKeyword(ctx, req, m.Content)
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgKeywordFailed, "game", svc.Variant().Game, "error", err)
		}
		if handled {
			return
		}
	}
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.Registry.Handle(b.ctx, s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(b.ctx, s, i)
	}
}
