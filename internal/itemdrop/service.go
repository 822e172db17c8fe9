package itemdrop

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/ledger"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/reward"
	"github.com/osse101/dropgame/internal/scheduler"
	"github.com/osse101/dropgame/internal/store"
)

// Config wires a Service.
type Config struct {
	Variant   Variant
	Settings  *drop.Settings
	Scheduler *scheduler.Scheduler
	Sink      drop.Sink
	Cooldowns cooldown.Service
	Ledger    *ledger.Ledger
	RNG       reward.RNG
}

// Service is one item game.
type Service struct {
	variant Variant
	game    *drop.Game
	sink    drop.Sink
	ledger  *ledger.Ledger
	rng     reward.RNG
}

// NewSettings creates the schedule accessor for v.
func NewSettings(v Variant, st store.Store) *drop.Settings {
	return drop.NewSettings(v.Game, st, v.Defaults)
}

// New creates the game and its drop lifecycle.
func New(cfg Config) *Service {
	rng := cfg.RNG
	if rng == nil {
		rng = reward.DefaultRNG()
	}
	s := &Service{
		variant: cfg.Variant,
		sink:    cfg.Sink,
		ledger:  cfg.Ledger,
		rng:     rng,
	}
	s.game = drop.NewGame(drop.GameConfig{
		Game:      cfg.Variant.Game,
		Settings:  cfg.Settings,
		Scheduler: cfg.Scheduler,
		Sink:      cfg.Sink,
		Hooks:     s,
		Cadence:   drop.RandomInterval{},
		Cooldowns: cfg.Cooldowns,
		RNG:       rng,
	})
	return s
}

// Variant returns the game's parameters.
func (s *Service) Variant() Variant { return s.variant }

// Game returns the drop lifecycle.
func (s *Service) Game() *drop.Game { return s.game }

// Announce implements drop.Hooks.
func (s *Service) Announce(ctx context.Context, guildID string, sched domain.GuildDropSchedule) (drop.Announcement, error) {
	embed := &drop.Embed{
		Title:       fmt.Sprintf(AnnounceTitleFmt, s.variant.Title),
		Description: fmt.Sprintf(AnnounceDescriptionFmt, s.variant.Noun, s.variant.Noun),
		Color:       AnnounceColor,
	}
	if expiry := sched.Expiry(); expiry > 0 {
		embed.Footer = fmt.Sprintf(AnnounceFooterFmt, int(expiry.Minutes()))
	}
	return drop.Announcement{Message: drop.Message{Embed: embed}}, nil
}

// Expired implements drop.Hooks.
func (s *Service) Expired(ctx context.Context, guildID string, d drop.Active) error {
	_, err := s.sink.Send(ctx, d.ChannelID, drop.Message{
		Content: fmt.Sprintf(FadeFmt, s.variant.Noun),
		ReplyTo: d.MessageID,
	})
	return err
}

// Reveal is the claim path: arbitrate, draw once, record, announce.
func (s *Service) Reveal(ctx context.Context, req drop.ClaimRequest) error {
	actor := req.Actor()
	res, err := s.game.Arbitrator().Attempt(ctx, req.GuildID(), actor.ID, req.ChannelID(), "")
	if err != nil {
		return err
	}
	if res.Outcome != drop.Won {
		return drop.Reject(ctx, req, res, s.variant.Noun, s.variant.Command)
	}
	defer s.game.Resolve(ctx, req.GuildID(), res.Drop.MessageID)

	log := logger.FromContext(ctx)
	tier, name := reward.Draw(s.rng, s.variant.Catalog)
	rec := domain.NewRewardRecord(name, tier, s.game.Clock().Now())

	member := store.Member(s.variant.Game, req.GuildID(), actor.ID)
	recordErr := s.ledger.RecordReward(ctx, member, rec, s.variant.HistoryCap)
	if recordErr != nil {
		log.Error(LogMsgRecordFailed, "game", s.variant.Game, "user_id", actor.ID, "error", recordErr)
	}

	if err := req.Respond(ctx, s.revealMessage(actor, rec)); err != nil {
		log.Warn(LogMsgRevealFailed, "game", s.variant.Game, "error", err)
	}
	log.Info(LogMsgRevealed, "game", s.variant.Game, "guild_id", req.GuildID(), "user_id", actor.ID,
		"rarity", tier.String(), "item", name)

	if recordErr != nil {
		return fmt.Errorf(ErrMsgRecordReward, recordErr)
	}
	return nil
}

func (s *Service) revealMessage(actor drop.Member, rec domain.RewardRecord) drop.Message {
	return drop.Message{Embed: &drop.Embed{
		Title:       fmt.Sprintf(RevealTitleFmt, rec.Emoji, rec.Tier, s.variant.Title),
		Description: fmt.Sprintf(RevealDescriptionFmt, actor.Mention(), rec.Name),
		Color:       rec.Tier.Color(),
		Footer:      RevealFooter,
	}}
}

// HandleKeyword reveals when content is the game's trigger word typed in the
// guild's drop channel. It reports whether the message was the trigger.
func (s *Service) HandleKeyword(ctx context.Context, req drop.ClaimRequest, content string) (bool, error) {
	if !strings.EqualFold(strings.TrimSpace(content), s.variant.Noun) {
		return false, nil
	}
	sched, err := s.game.Settings().Load(ctx, req.GuildID())
	if err != nil {
		return true, err
	}
	if !sched.Configured() || req.ChannelID() != sched.EffectiveChannel() {
		return false, nil
	}
	return true, s.Reveal(ctx, req)
}

// SetChannel points drops at channelID and starts the schedule.
func (s *Service) SetChannel(ctx context.Context, guildID, channelID string) (string, error) {
	return drop.ChannelSetReply(s.variant.Title, channelID, s.game.SetChannel(ctx, guildID, channelID))
}

// ClearChannel turns drops off for the guild.
func (s *Service) ClearChannel(ctx context.Context, guildID string) (string, error) {
	return drop.ChannelClearedReply(s.variant.Title, s.game.ClearChannel(ctx, guildID))
}

// SetTestMode switches the one-minute cadence on or off.
func (s *Service) SetTestMode(ctx context.Context, guildID string, enabled bool, channelID string) (string, error) {
	return drop.TestModeReply(s.game.SetTestMode(ctx, guildID, enabled, channelID))
}

// DropNow forces a drop and describes what happened.
func (s *Service) DropNow(ctx context.Context, guildID string) (string, error) {
	_, err := s.game.DropNow(ctx, guildID)
	return drop.DropNowReply(err)
}
