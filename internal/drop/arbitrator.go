package drop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/metrics"
	"github.com/osse101/dropgame/internal/store"
)

// Outcome is the result of one claim attempt.
type Outcome int

const (
	Won Outcome = iota + 1
	OnCooldown
	NotConfigured
	NothingToClaim
	WrongChannel
	LostRace
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case OnCooldown:
		return "on_cooldown"
	case NotConfigured:
		return "not_configured"
	case NothingToClaim:
		return "nothing_to_claim"
	case WrongChannel:
		return "wrong_channel"
	case LostRace:
		return "lost_race"
	default:
		return "unknown"
	}
}

// Result describes a claim attempt. Drop is the claimed drop when Won.
type Result struct {
	Outcome   Outcome
	Remaining time.Duration
	Drop      Active
}

// Arbitrator decides which attempt wins a guild's outstanding drop.
type Arbitrator struct {
	game      domain.Game
	registry  *Registry
	settings  *Settings
	cooldowns cooldown.Service
}

// NewArbitrator binds an arbitrator to a game's state and settings.
func NewArbitrator(game domain.Game, registry *Registry, settings *Settings, cooldowns cooldown.Service) *Arbitrator {
	return &Arbitrator{
		game:      game,
		registry:  registry,
		settings:  settings,
		cooldowns: cooldowns,
	}
}

// Attempt runs the claim preconditions in order, then binds the winner under
// the guild lock. messageID, when not empty, pins the attempt to that drop.
//
// The attempt cooldown is stamped once the user is off cooldown and the guild
// is configured, even if the attempt then loses.
func (a *Arbitrator) Attempt(ctx context.Context, guildID, userID, channelID, messageID string) (Result, error) {
	res, err := a.attempt(ctx, guildID, userID, channelID, messageID)
	if err == nil {
		metrics.ClaimAttempts.WithLabelValues(string(a.game), res.Outcome.String()).Inc()
		logger.FromContext(ctx).Debug(LogMsgClaimAttempt,
			"game", a.game, "guild_id", guildID, "user_id", userID, "outcome", res.Outcome.String())
	}
	return res, err
}

func (a *Arbitrator) attempt(ctx context.Context, guildID, userID, channelID, messageID string) (Result, error) {
	member := store.Member(a.game, guildID, userID)

	// The guild check and the stamp share the cooldown lock.
	var sched domain.GuildDropSchedule
	err := a.cooldowns.EnforceCooldown(ctx, member, domain.ActionAttempt, func() error {
		s, err := a.settings.Load(ctx, guildID)
		if err != nil {
			return err
		}
		if !s.Configured() {
			return domain.ErrNotConfigured
		}
		sched = s
		return nil
	})
	var cd cooldown.ErrOnCooldown
	switch {
	case errors.As(err, &cd):
		return Result{Outcome: OnCooldown, Remaining: cd.Remaining}, nil
	case errors.Is(err, domain.ErrNotConfigured):
		return Result{Outcome: NotConfigured}, nil
	case err != nil:
		return Result{}, err
	}

	state, ok := a.registry.Lookup(guildID)
	if !ok {
		return Result{Outcome: NothingToClaim}, nil
	}
	snap := state.Snapshot()
	if snap.MessageID == "" || (messageID != "" && messageID != snap.MessageID) {
		return Result{Outcome: NothingToClaim}, nil
	}
	// Taken but not yet resolved.
	if snap.ClaimedBy != "" {
		return Result{Outcome: LostRace}, nil
	}

	if channelID != sched.EffectiveChannel() {
		return Result{Outcome: WrongChannel}, nil
	}

	if err := state.claim(snap.MessageID, userID); err != nil {
		if errors.Is(err, domain.ErrLostRace) {
			return Result{Outcome: LostRace}, nil
		}
		return Result{Outcome: NothingToClaim}, nil
	}

	snap.ClaimedBy = userID
	return Result{Outcome: Won, Drop: snap}, nil
}

// Notice returns the reaction emoji and reply text for a losing outcome.
// noun names the drop ("mesh", "model"), command the game's slash group.
func (r Result) Notice(noun, command string) (emoji, text string) {
	switch r.Outcome {
	case OnCooldown:
		return EmojiCooldown, MsgSlowDown
	case NotConfigured:
		return EmojiWarning, fmt.Sprintf(MsgFmtNotConfigured, command)
	case NothingToClaim:
		return EmojiNothing, fmt.Sprintf(MsgFmtNothingToClaim, noun)
	case WrongChannel:
		return EmojiNothing, MsgWrongChannel
	case LostRace:
		return EmojiLostRace, MsgLostRace
	default:
		return "", ""
	}
}

// Reject tells the requester why their attempt did not win. Text requests
// get a reaction; configuration problems always get words.
func Reject(ctx context.Context, req ClaimRequest, res Result, noun, command string) error {
	emoji, text := res.Notice(noun, command)
	if text == "" {
		return nil
	}
	if req.Kind() == KindText && res.Outcome != NotConfigured {
		return req.React(ctx, emoji)
	}
	return req.Respond(ctx, Message{Content: text, Ephemeral: req.Kind() != KindText})
}
