package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/itemdrop"
	"github.com/osse101/dropgame/internal/reason"
)

// dropAdmin is the settings surface every game exposes to admins.
type dropAdmin interface {
	SetChannel(ctx context.Context, guildID, channelID string) (string, error)
	ClearChannel(ctx context.Context, guildID string) (string, error)
	SetTestMode(ctx context.Context, guildID string, enabled bool, channelID string) (string, error)
	DropNow(ctx context.Context, guildID string) (string, error)
}

func adminSubcommands(noun string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		sub(SubSetChannel, fmt.Sprintf("Post %s drops in a channel (admin)", noun),
			option(OptChannel, "Drop channel", discordgo.ApplicationCommandOptionChannel, true)),
		sub(SubClearChannel, fmt.Sprintf("Turn %s drops off (admin)", noun)),
		sub(SubTestMode, "Drop every minute while testing (admin)",
			option(OptEnabled, "Turn test mode on or off", discordgo.ApplicationCommandOptionBoolean, true),
			option(OptChannel, "Channel to test in", discordgo.ApplicationCommandOptionChannel, false)),
		sub(SubDropNow, "Force a drop right now (admin)"),
	}
}

// handleAdmin runs name when it is an admin subcommand and reports whether
// it was one.
func handleAdmin(ctx context.Context, req *interactionRequest, i *discordgo.InteractionCreate, svc dropAdmin, name string, opts optionMap) (bool, error) {
	switch name {
	case SubSetChannel, SubClearChannel, SubTestMode, SubDropNow:
	default:
		return false, nil
	}
	if !isAdmin(i) {
		return true, domain.ErrNotAdmin
	}

	var (
		reply string
		err   error
	)
	switch name {
	case SubSetChannel:
		reply, err = svc.SetChannel(ctx, i.GuildID, opts.channelID(OptChannel))
	case SubClearChannel:
		reply, err = svc.ClearChannel(ctx, i.GuildID)
	case SubTestMode:
		reply, err = svc.SetTestMode(ctx, i.GuildID, opts.boolean(OptEnabled, false), opts.channelID(OptChannel))
	case SubDropNow:
		reply, err = svc.DropNow(ctx, i.GuildID)
	}
	if err != nil {
		return true, err
	}

	msg := drop.Text(reply)
	if name == SubDropNow {
		msg = drop.Private(reply)
	}
	respond(ctx, req, msg)
	return true, nil
}

// guildOnly answers DMs and reports whether the command may proceed.
func guildOnly(ctx context.Context, req *interactionRequest) bool {
	if req.GuildID() != "" {
		return true
	}
	respond(ctx, req, drop.Private(MsgGuildOnly))
	return false
}

// itemCommand builds the command group of one item game.
func itemCommand(svc *itemdrop.Service) (*discordgo.ApplicationCommand, CommandHandler) {
	v := svc.Variant()
	plural := strings.ToLower(v.Plural)

	cmd := &discordgo.ApplicationCommand{
		Name:        v.Command,
		Description: fmt.Sprintf("%s drops", v.Title),
		Options: append([]*discordgo.ApplicationCommandOption{
			sub(SubReveal, fmt.Sprintf("Reveal the active %s", v.Noun)),
			sub(SubBag, fmt.Sprintf("Show collected %s", plural),
				option(OptUser, "Whose collection", discordgo.ApplicationCommandOptionUser, false)),
			sub(SubStats, fmt.Sprintf("Show %s rarity counts", v.Noun),
				option(OptUser, "Whose stats", discordgo.ApplicationCommandOptionUser, false)),
			sub(SubHelp, "How the game works"),
		}, adminSubcommands(v.Noun)...),
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
		req := newInteractionRequest(s, i, drop.KindSlash)
		if !guildOnly(ctx, req) {
			return nil
		}
		name, opts := subcommand(i)
		if handled, err := handleAdmin(ctx, req, i, svc, name, opts); handled {
			return err
		}

		var msg drop.Message
		switch name {
		case SubReveal:
			return svc.Reveal(ctx, req)
		case SubBag:
			m, err := svc.Bag(ctx, i.GuildID, req.Actor(), opts.member(i, OptUser), 0)
			if err != nil {
				return err
			}
			msg = m
		case SubStats:
			m, err := svc.Stats(ctx, i.GuildID, opts.member(i, OptUser))
			if err != nil {
				return err
			}
			msg = m
		case SubHelp:
			msg = svc.Help()
		default:
			msg = drop.Private(MsgUnknownCommand)
		}
		respond(ctx, req, msg)
		return nil
	}
	return cmd, handler
}

// reasonCommand builds the reason game's command group.
func reasonCommand(svc *reason.Service) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        reason.Command,
		Description: "Reasons to say no",
		Options: append([]*discordgo.ApplicationCommandOption{
			sub(SubShow, "Get a reason right now"),
			sub(SubWallet, "Show saved reasons",
				option(OptUser, "Whose wallet", discordgo.ApplicationCommandOptionUser, false)),
			sub(SubStats, "Show points, streak and achievements",
				option(OptUser, "Whose stats", discordgo.ApplicationCommandOptionUser, false)),
			sub(SubLeaderboard, "Best reasons and richest members"),
			sub(SubHelp, "How the game works"),
		}, adminSubcommands(reason.Noun)...),
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
		req := newInteractionRequest(s, i, drop.KindSlash)
		if !guildOnly(ctx, req) {
			return nil
		}
		name, opts := subcommand(i)
		if handled, err := handleAdmin(ctx, req, i, svc, name, opts); handled {
			return err
		}

		var (
			msg drop.Message
			err error
		)
		switch name {
		case SubShow:
			return svc.Show(ctx, req)
		case SubWallet:
			msg, err = svc.Wallet(ctx, i.GuildID, req.Actor(), opts.member(i, OptUser), 0)
		case SubStats:
			msg, err = svc.Stats(ctx, i.GuildID, opts.member(i, OptUser))
		case SubLeaderboard:
			msg, err = svc.Leaderboard(ctx, i.GuildID)
		case SubHelp:
			msg = svc.Help()
		default:
			msg = drop.Private(MsgUnknownCommand)
		}
		if err != nil {
			return err
		}
		respond(ctx, req, msg)
		return nil
	}
	return cmd, handler
}
