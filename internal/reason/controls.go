package reason

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/metrics"
	"github.com/osse101/dropgame/internal/store"
)

// HandleControl answers a button pressed on a posted reason. The button's
// message identifies the drop.
func (s *Service) HandleControl(ctx context.Context, req drop.ClaimRequest, ctrl drop.ControlID) error {
	metrics.ControlActions.WithLabelValues(ctrl.Action).Inc()
	logger.FromContext(ctx).Debug(LogMsgControl,
		"guild_id", req.GuildID(), "user_id", req.Actor().ID, "action", ctrl.Action, "message_id", req.MessageID())

	d, ok, err := s.book.Get(ctx, req.GuildID(), req.MessageID())
	if err != nil {
		return err
	}
	if !ok {
		return req.Respond(ctx, drop.Private(MsgUnknownDrop))
	}
	open, err := s.isOpen(ctx, req.GuildID(), d)
	if err != nil {
		return err
	}
	if !open {
		return req.Respond(ctx, drop.Private(MsgDropExpired))
	}

	if ctrl.Action == ActionSteal {
		return s.steal(ctx, req, d)
	}
	if req.Actor().ID != d.SubjectID {
		return req.Respond(ctx, drop.Private(fmt.Sprintf(MsgFmtNotSubject, drop.Member{ID: d.SubjectID}.Mention())))
	}

	switch ctrl.Action {
	case ActionReroll:
		return s.reroll(ctx, req)
	case ActionClaim:
		return s.claim(ctx, req, d)
	case ActionWin:
		return s.rate(ctx, req, domain.RatingWin)
	case ActionLoss:
		return s.rate(ctx, req, domain.RatingLoss)
	case ActionStop:
		return s.mute(ctx, req)
	default:
		return req.Respond(ctx, drop.Private(MsgUnknownControl))
	}
}

func (s *Service) isOpen(ctx context.Context, guildID string, d domain.ReasonDrop) (bool, error) {
	sched, err := s.game.Settings().Load(ctx, guildID)
	if err != nil {
		return false, err
	}
	return d.Open(s.game.Clock().Now(), sched.Expiry()), nil
}

func (s *Service) reroll(ctx context.Context, req drop.ClaimRequest) error {
	d, err := s.book.Update(ctx, req.GuildID(), req.MessageID(), func(d *domain.ReasonDrop) error {
		if d.ClaimedBy != "" {
			return domain.ErrAlreadyClaimed
		}
		if d.RerollsLeft <= 0 {
			return domain.ErrNoRerolls
		}
		d.RerollsLeft--
		d.Text = s.pickText(d.Text)
		return nil
	})
	switch {
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return req.Respond(ctx, drop.Private(MsgAlreadyClaimed))
	case errors.Is(err, domain.ErrNoRerolls):
		return req.Respond(ctx, drop.Private(MsgNoRerolls))
	case err != nil:
		return err
	}

	if err := s.sink.Edit(ctx, d.ChannelID, d.MessageID, dropMessage(d, false)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRerollEdit, "guild_id", req.GuildID(), "message_id", d.MessageID, "error", err)
		return err
	}
	return req.Respond(ctx, drop.Private(fmt.Sprintf(MsgFmtRerolled, d.RerollsLeft)))
}

// claim keeps the reason in the subject's wallet. The arbitrator guards the
// drop so a double press pays once.
func (s *Service) claim(ctx context.Context, req drop.ClaimRequest, d domain.ReasonDrop) error {
	if d.ClaimedBy != "" {
		return req.Respond(ctx, drop.Private(MsgAlreadyClaimed))
	}
	actor := req.Actor()
	res, err := s.game.Arbitrator().Attempt(ctx, req.GuildID(), actor.ID, req.ChannelID(), req.MessageID())
	if err != nil {
		return err
	}
	switch res.Outcome {
	case drop.Won:
	case drop.LostRace:
		return req.Respond(ctx, drop.Private(MsgAlreadyClaimed))
	default:
		return drop.Reject(ctx, req, res, Noun, Command)
	}
	defer s.game.Resolve(ctx, req.GuildID(), req.MessageID())

	d, err = s.book.Update(ctx, req.GuildID(), req.MessageID(), func(d *domain.ReasonDrop) error {
		d.ClaimedBy = actor.ID
		return nil
	})
	if err != nil {
		return err
	}

	member := store.Member(s.kind, req.GuildID(), actor.ID)
	if err := s.ledger.AddToWallet(ctx, member, d.Text); err != nil {
		return err
	}
	award, err := s.ledger.AwardClaim(ctx, member)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(MsgFmtClaimed, award.Points)
	if award.Daily {
		msg = fmt.Sprintf(MsgFmtClaimedDaily, award.Points)
	}
	return req.Respond(ctx, drop.Private(msg))
}

// rate records the subject's one verdict. Wins also vote for the guild's
// best reasons.
func (s *Service) rate(ctx context.Context, req drop.ClaimRequest, rating domain.Rating) error {
	d, err := s.book.Update(ctx, req.GuildID(), req.MessageID(), func(d *domain.ReasonDrop) error {
		if d.Rating != domain.RatingNone {
			return domain.ErrAlreadyRated
		}
		d.Rating = rating
		return nil
	})
	if errors.Is(err, domain.ErrAlreadyRated) {
		return req.Respond(ctx, drop.Private(MsgAlreadyRated))
	}
	if err != nil {
		return err
	}

	member := store.Member(s.kind, req.GuildID(), req.Actor().ID)
	p, points, err := s.ledger.AwardRating(ctx, member, rating)
	if err != nil {
		return err
	}
	if rating == domain.RatingLoss {
		return req.Respond(ctx, drop.Private(fmt.Sprintf(MsgFmtRatedLoss, points)))
	}
	if _, err := s.ledger.VoteBestReason(ctx, member.GuildScope(), d.Text); err != nil {
		return err
	}
	return req.Respond(ctx, drop.Private(fmt.Sprintf(MsgFmtRatedWin, points, p.Streak)))
}

// steal lets anyone but the subject try their luck against the subject's
// points. Both the guild-wide and the thief's cooldown are spent on every
// roll, lucky or not.
func (s *Service) steal(ctx context.Context, req drop.ClaimRequest, d domain.ReasonDrop) error {
	actor := req.Actor()
	if actor.ID == d.SubjectID {
		metrics.StealAttempts.WithLabelValues(StealOutcomeForbidden).Inc()
		return req.Respond(ctx, drop.Private(MsgOwnDrop))
	}

	guild := store.Guild(s.kind, req.GuildID())
	thief := store.Member(s.kind, req.GuildID(), actor.ID)
	victim := store.Member(s.kind, req.GuildID(), d.SubjectID)

	var (
		lucky bool
		moved int
	)
	err := s.cooldowns.EnforceCooldown(ctx, guild, domain.ActionStealGuild, func() error {
		return s.cooldowns.EnforceCooldown(ctx, thief, domain.ActionSteal, func() error {
			if s.rng.IntN(100) >= int(domain.StealSuccessRate*100) {
				return nil
			}
			lucky = true
			amount := domain.StealMinAmount + s.rng.IntN(domain.StealMaxAmount-domain.StealMinAmount+1)
			var err error
			moved, err = s.ledger.Transfer(ctx, thief, victim, amount)
			return err
		})
	})

	var cd cooldown.ErrOnCooldown
	if errors.As(err, &cd) {
		metrics.StealAttempts.WithLabelValues(StealOutcomeCooldown).Inc()
		return req.Respond(ctx, drop.Private(cd.Error()))
	}
	if err != nil {
		return err
	}

	outcome := StealOutcomeFailed
	switch {
	case lucky && moved > 0:
		outcome = StealOutcomeSuccess
	case lucky:
		outcome = StealOutcomeEmpty
	}
	metrics.StealAttempts.WithLabelValues(outcome).Inc()
	logger.FromContext(ctx).Info(LogMsgStealRolled,
		"guild_id", req.GuildID(), "thief", actor.ID, "victim", d.SubjectID, "outcome", outcome, "points", moved)

	subject := drop.Member{ID: d.SubjectID}.Mention()
	switch outcome {
	case StealOutcomeSuccess:
		return req.Respond(ctx, drop.Text(fmt.Sprintf(MsgFmtStealSuccess, actor.Mention(), moved, subject)))
	case StealOutcomeEmpty:
		return req.Respond(ctx, drop.Private(fmt.Sprintf(MsgFmtNothingToSteal, subject)))
	default:
		return req.Respond(ctx, drop.Private(MsgStealFailed))
	}
}

func (s *Service) mute(ctx context.Context, req drop.ClaimRequest) error {
	added, err := s.OptOut(ctx, req.GuildID(), req.Actor().ID)
	if err != nil {
		return err
	}
	if !added {
		return req.Respond(ctx, drop.Private(MsgAlreadyOptedOut))
	}
	return req.Respond(ctx, drop.Private(MsgOptedOut))
}
