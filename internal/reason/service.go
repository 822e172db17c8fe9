// Package reason runs the reason game: a random member of the drop channel is
// handed a reason to say no, which they can reroll, keep or rate while others
// try to steal their points.
package reason

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/dropgame/internal/concurrency"
	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/ledger"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/reward"
	"github.com/osse101/dropgame/internal/scheduler"
	"github.com/osse101/dropgame/internal/store"
)

const (
	// Noun names a drop in shared notices.
	Noun = "reason"
	// Title prefixes admin replies.
	Title = "Reason"
	// Command is the slash command group.
	Command = "reason"
)

// Config wires a Service.
type Config struct {
	Store     store.Store
	Settings  *drop.Settings
	Scheduler *scheduler.Scheduler
	Sink      drop.Sink
	Directory drop.Directory
	Cooldowns cooldown.Service
	Ledger    *ledger.Ledger
	Texts     []string
	RNG       reward.RNG
}

// Service is the reason game.
type Service struct {
	kind      domain.Game
	game      *drop.Game
	st        store.Store
	book      *Book
	locks     *concurrency.LockManager
	sink      drop.Sink
	dir       drop.Directory
	cooldowns cooldown.Service
	ledger    *ledger.Ledger
	texts     []string
	rng       reward.RNG
}

// NewSettings creates the schedule accessor. Drops stay open for expiry, or
// domain.DefaultReasonExpiry when it is not positive.
func NewSettings(st store.Store, expiry time.Duration) *drop.Settings {
	if expiry <= 0 {
		expiry = domain.DefaultReasonExpiry
	}
	return drop.NewSettings(domain.GameReason, st, domain.GuildDropSchedule{
		MinInterval:     domain.DefaultMinInterval,
		MaxInterval:     domain.DefaultMaxInterval,
		ExpirySeconds:   int(expiry.Seconds()),
		AttemptCooldown: domain.DefaultAttemptCooldown,
	})
}

// New creates the game and its drop lifecycle.
func New(cfg Config) *Service {
	rng := cfg.RNG
	if rng == nil {
		rng = reward.DefaultRNG()
	}
	s := &Service{
		kind:      domain.GameReason,
		st:        cfg.Store,
		book:      NewBook(domain.GameReason, cfg.Store),
		locks:     concurrency.NewLockManager(),
		sink:      cfg.Sink,
		dir:       cfg.Directory,
		cooldowns: cfg.Cooldowns,
		ledger:    cfg.Ledger,
		texts:     cfg.Texts,
		rng:       rng,
	}
	s.game = drop.NewGame(drop.GameConfig{
		Game:      domain.GameReason,
		Settings:  cfg.Settings,
		Scheduler: cfg.Scheduler,
		Sink:      cfg.Sink,
		Hooks:     s,
		Cadence:   drop.DefaultFixedCadence,
		Cooldowns: cfg.Cooldowns,
		RNG:       rng,
		Restorer:  s,
	})
	return s
}

// Game returns the drop lifecycle.
func (s *Service) Game() *drop.Game { return s.game }

// Book returns the record of posted reasons.
func (s *Service) Book() *Book { return s.book }

// pickText draws a reason, avoiding current when there is a choice.
func (s *Service) pickText(current string) string {
	n := len(s.texts)
	if n == 0 {
		return ""
	}
	i := s.rng.IntN(n)
	if n > 1 && s.texts[i] == current {
		i = (i + 1 + s.rng.IntN(n-1)) % n
	}
	return s.texts[i]
}

func (s *Service) pickColor() int {
	return int(s.rng.Uint32() & 0xFFFFFF)
}

// Announce implements drop.Hooks: it picks the subject and the reason.
func (s *Service) Announce(ctx context.Context, guildID string, sched domain.GuildDropSchedule) (drop.Announcement, error) {
	channelID := sched.EffectiveChannel()
	members, err := s.dir.EligibleMembers(ctx, guildID, channelID)
	if err != nil {
		return drop.Announcement{}, fmt.Errorf(ErrMsgListMembers, err)
	}
	muted, err := s.optedOut(ctx, guildID)
	if err != nil {
		return drop.Announcement{}, err
	}
	skip := make(map[string]struct{}, len(muted))
	for _, id := range muted {
		skip[id] = struct{}{}
	}
	eligible := make([]drop.Member, 0, len(members))
	for _, m := range members {
		if _, ok := skip[m.ID]; ok || m.Bot {
			continue
		}
		eligible = append(eligible, m)
	}
	if len(eligible) == 0 {
		return drop.Announcement{}, domain.ErrNoMembers
	}

	subject := eligible[s.rng.IntN(len(eligible))]
	d := domain.ReasonDrop{
		ChannelID:   channelID,
		SubjectID:   subject.ID,
		SubjectName: subject.DisplayName,
		Text:        s.pickText(""),
		Color:       s.pickColor(),
		PostedAt:    s.game.Clock().Now().Unix(),
		RerollsLeft: domain.RerollsPerDrop,
	}
	logger.FromContext(ctx).Debug(LogMsgSubjectPicked, "guild_id", guildID, "user_id", subject.ID, "eligible", len(eligible))

	return drop.Announcement{
		Message: dropMessage(d, false),
		OnPosted: func(ctx context.Context, messageID string) error {
			d.MessageID = messageID
			return s.book.Put(ctx, guildID, d)
		},
	}, nil
}

// Expired implements drop.Hooks: the entry is closed and its controls greyed
// out.
func (s *Service) Expired(ctx context.Context, guildID string, a drop.Active) error {
	d, err := s.book.Update(ctx, guildID, a.MessageID, func(d *domain.ReasonDrop) error {
		d.Expired = true
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.sink.Edit(ctx, a.ChannelID, a.MessageID, dropMessage(d, true)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgExpireEdit, "guild_id", guildID, "message_id", a.MessageID, "error", err)
		return err
	}
	return nil
}

// Restore implements drop.Restorer from the latest book entry.
func (s *Service) Restore(ctx context.Context, guildID string) (drop.Active, bool, error) {
	d, ok, err := s.book.Latest(ctx, guildID)
	if err != nil || !ok {
		return drop.Active{}, false, err
	}
	if d.Expired || d.ClaimedBy != "" {
		return drop.Active{}, false, nil
	}
	return drop.Active{
		MessageID: d.MessageID,
		ChannelID: d.ChannelID,
		StartedAt: time.Unix(d.PostedAt, 0),
	}, true, nil
}

// dropMessage renders a posted reason. Closed drops keep their text but lose
// their controls.
func dropMessage(d domain.ReasonDrop, closed bool) drop.Message {
	footer := fmt.Sprintf(DropFooterFmt, d.SubjectName)
	if d.Expired {
		footer = ExpiredFooter
	}
	return drop.Message{
		Content: fmt.Sprintf(DropContentFmt, drop.Member{ID: d.SubjectID}.Mention()),
		Embed: &drop.Embed{
			Title:       DropTitle,
			Description: d.Text,
			Color:       d.Color,
			Footer:      footer,
		},
		Buttons: controls(closed),
	}
}

func controls(disabled bool) []drop.Button {
	button := func(action, label, emoji string, style drop.ButtonStyle) drop.Button {
		return drop.Button{
			ID:       drop.NewControlID(domain.GameReason, action).String(),
			Label:    label,
			Emoji:    emoji,
			Style:    style,
			Disabled: disabled,
		}
	}
	return []drop.Button{
		button(ActionReroll, LabelReroll, EmojiReroll, drop.ButtonSecondary),
		button(ActionClaim, LabelClaim, EmojiClaim, drop.ButtonPrimary),
		button(ActionWin, LabelWin, EmojiWin, drop.ButtonSuccess),
		button(ActionLoss, LabelLoss, EmojiLoss, drop.ButtonDanger),
		button(ActionSteal, LabelSteal, EmojiSteal, drop.ButtonSecondary),
		button(ActionStop, LabelStop, "", drop.ButtonSecondary),
	}
}
