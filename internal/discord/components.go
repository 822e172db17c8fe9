package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/logger"
)

// handleComponent routes a button press by the game and action encoded in
// its custom id.
func (b *Bot) handleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx = logger.WithGuild(logger.WithRequestID(ctx, logger.GenerateRequestID()), i.GuildID)
	req := newInteractionRequest(s, i, drop.KindButton)

	ctrl, err := drop.ParseControlID(i.MessageComponentData().CustomID)
	if err != nil {
		respond(ctx, req, drop.Private(MsgUnknownControl))
		return
	}

	switch {
	case ctrl.Action == drop.ActionPage:
		err = b.turnPage(ctx, req, ctrl)
	case ctrl.Game == domain.GameReason && b.reason != nil:
		err = b.reason.HandleControl(ctx, req, ctrl)
	default:
		respond(ctx, req, drop.Private(MsgUnknownControl))
	}
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgComponentFailed, "control", ctrl.String(), "error", err)
		respond(ctx, req, drop.Private(formatFriendlyError(err)))
	}
}

// turnPage redraws a paginated view in place. Refusals go to the presser
// privately so the shared message is left alone.
func (b *Bot) turnPage(ctx context.Context, req *interactionRequest, ctrl drop.ControlID) error {
	ref, err := drop.ParsePageRef(ctrl)
	if err != nil {
		respond(ctx, req, drop.Private(MsgUnknownControl))
		return nil
	}
	target := guildMember(req.session, req.GuildID(), ref.Target)

	var msg drop.Message
	switch {
	case ref.Game == domain.GameReason && b.reason != nil:
		msg, err = b.reason.TurnPage(ctx, req.GuildID(), req.Actor(), ref, target)
	default:
		svc := b.itemGame(ref.Game)
		if svc == nil {
			respond(ctx, req, drop.Private(MsgUnknownControl))
			return nil
		}
		msg, err = svc.TurnPage(ctx, req.GuildID(), req.Actor(), ref, target)
	}
	if err != nil {
		return err
	}

	if msg.Ephemeral {
		respond(ctx, req, msg)
		return nil
	}
	if err := req.Update(ctx, msg); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
	}
	return nil
}
