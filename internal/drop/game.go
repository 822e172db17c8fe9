package drop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/metrics"
	"github.com/osse101/dropgame/internal/reward"
	"github.com/osse101/dropgame/internal/scheduler"
	"github.com/osse101/dropgame/internal/worker"
)

// Announcement is what a game posts when a drop appears.
type Announcement struct {
	Message Message
	// OnPosted, if set, runs once the announcement has a message id.
	OnPosted func(ctx context.Context, messageID string) error
}

// Hooks supply a game's content.
type Hooks interface {
	// Announce builds the next drop. Returning domain.ErrNoMembers skips the round.
	Announce(ctx context.Context, guildID string, sched domain.GuildDropSchedule) (Announcement, error)
	// Expired runs after an unclaimed drop times out.
	Expired(ctx context.Context, guildID string, drop Active) error
}

// Restorer recovers an outstanding drop after a restart.
type Restorer interface {
	Restore(ctx context.Context, guildID string) (Active, bool, error)
}

// GameConfig wires a Game.
type GameConfig struct {
	Game      domain.Game
	Settings  *Settings
	Scheduler *scheduler.Scheduler
	Sink      Sink
	Hooks     Hooks
	Cadence   Cadence
	Cooldowns cooldown.Service
	RNG       reward.RNG
	// Restorer is optional.
	Restorer Restorer
}

// Game runs the drop lifecycle of one game across guilds:
// Idle, Waiting, Posted, then Claimed or Expired, then Waiting again.
type Game struct {
	kind      domain.Game
	settings  *Settings
	registry  *Registry
	scheduler *scheduler.Scheduler
	clock     clockwork.Clock
	sink      Sink
	hooks     Hooks
	cadence   Cadence
	rng       reward.RNG
	restorer  Restorer
	arbiter   *Arbitrator

	mu     sync.Mutex
	closed bool
}

// NewGame creates a game with an empty registry.
func NewGame(cfg GameConfig) *Game {
	rng := cfg.RNG
	if rng == nil {
		rng = reward.DefaultRNG()
	}
	cadence := cfg.Cadence
	if cadence == nil {
		cadence = RandomInterval{}
	}
	registry := NewRegistry()
	return &Game{
		kind:      cfg.Game,
		settings:  cfg.Settings,
		registry:  registry,
		scheduler: cfg.Scheduler,
		clock:     cfg.Scheduler.Clock(),
		sink:      cfg.Sink,
		hooks:     cfg.Hooks,
		cadence:   cadence,
		rng:       rng,
		restorer:  cfg.Restorer,
		arbiter:   NewArbitrator(cfg.Game, registry, cfg.Settings, cfg.Cooldowns),
	}
}

// Kind returns the game identifier.
func (g *Game) Kind() domain.Game { return g.kind }

// Settings returns the schedule accessor.
func (g *Game) Settings() *Settings { return g.settings }

// Registry returns the per-guild drop state.
func (g *Game) Registry() *Registry { return g.registry }

// Arbitrator returns the claim arbitrator bound to this game's state.
func (g *Game) Arbitrator() *Arbitrator { return g.arbiter }

// Clock returns the clock drops are timed with.
func (g *Game) Clock() clockwork.Clock { return g.clock }

func (g *Game) postKey(guildID string) string {
	return fmt.Sprintf("%s:%s:post", g.kind, guildID)
}

func (g *Game) expireKey(guildID string) string {
	return fmt.Sprintf("%s:%s:expire", g.kind, guildID)
}

func (g *Game) isClosed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// Activate makes sure the guild has its next drop scheduled. It does nothing
// when no channel is set, when a post is already pending, or while a drop is
// outstanding, so calling it repeatedly never stacks timers.
func (g *Game) Activate(ctx context.Context, guildID string) error {
	if g.isClosed() {
		return nil
	}
	sched, err := g.settings.Load(ctx, guildID)
	if err != nil {
		return err
	}
	if !sched.Configured() {
		return nil
	}

	state := g.registry.Get(guildID)
	if g.restorer != nil && state.markRestored() {
		g.restore(ctx, guildID, state, sched)
	}

	if _, pending := g.scheduler.Pending(g.postKey(guildID)); pending {
		return nil
	}
	if state.Snapshot().Outstanding() {
		return nil
	}

	delay := nextDelay(g.cadence, sched, g.clock.Now(), g.rng)
	g.scheduler.Schedule(g.postKey(guildID), delay, g.postJob(guildID))
	logger.FromContext(ctx).Info(LogMsgActivated, "game", g.kind, "guild_id", guildID, "delay", delay)
	return nil
}

func (g *Game) restore(ctx context.Context, guildID string, state *State, sched domain.GuildDropSchedule) {
	log := logger.FromContext(ctx)
	active, ok, err := g.restorer.Restore(ctx, guildID)
	if err != nil {
		log.Warn(LogMsgRestoreFailed, "game", g.kind, "guild_id", guildID, "error", err)
		return
	}
	if !ok || !active.Outstanding() {
		return
	}
	if !state.reservePost() {
		return
	}
	state.begin(active.ChannelID, active.MessageID, active.StartedAt)
	if expiry := sched.Expiry(); expiry > 0 {
		remaining := active.StartedAt.Add(expiry).Sub(g.clock.Now())
		g.scheduler.Schedule(g.expireKey(guildID), remaining, g.expireJob(guildID, active.MessageID))
	}
	log.Info(LogMsgDropRestored, "game", g.kind, "guild_id", guildID, "message_id", active.MessageID)
}

// Deactivate cancels the guild's timers and abandons its outstanding drop.
func (g *Game) Deactivate(ctx context.Context, guildID string) {
	g.scheduler.Cancel(g.postKey(guildID))
	g.scheduler.Cancel(g.expireKey(guildID))
	if state, ok := g.registry.Lookup(guildID); ok {
		state.reset()
	}
	logger.FromContext(ctx).Info(LogMsgDeactivated, "game", g.kind, "guild_id", guildID)
}

// Reschedule replaces a pending post with one computed from the current
// schedule, for example after test mode is toggled.
func (g *Game) Reschedule(ctx context.Context, guildID string) error {
	g.scheduler.Cancel(g.postKey(guildID))
	return g.Activate(ctx, guildID)
}

// Resolve closes out a claimed drop and schedules the next one.
func (g *Game) Resolve(ctx context.Context, guildID, messageID string) {
	state, ok := g.registry.Lookup(guildID)
	if !ok || !state.resolve(messageID) {
		return
	}
	g.scheduler.Cancel(g.expireKey(guildID))
	g.scheduleNext(ctx, guildID)
}

// DropNow posts a drop immediately. It fails with domain.ErrNotConfigured,
// domain.ErrChannelMissing or domain.ErrDropActive when it cannot.
func (g *Game) DropNow(ctx context.Context, guildID string) (Active, error) {
	g.registry.Get(guildID)
	active, err := g.post(ctx, guildID)
	if err != nil {
		return Active{}, err
	}
	g.scheduler.Cancel(g.postKey(guildID))
	return active, nil
}

// Shutdown cancels every timer this game owns and forgets all guild state.
func (g *Game) Shutdown(ctx context.Context) {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	for _, guildID := range g.registry.Guilds() {
		g.scheduler.Cancel(g.postKey(guildID))
		g.scheduler.Cancel(g.expireKey(guildID))
	}
	g.registry.Reset()
	logger.FromContext(ctx).Info(LogMsgShutdown, "game", g.kind)
}

func (g *Game) scheduleNext(ctx context.Context, guildID string) {
	if g.isClosed() {
		return
	}
	sched, err := g.settings.Load(ctx, guildID)
	if err != nil {
		g.scheduler.Schedule(g.postKey(guildID), domain.PostFailureBackoff, g.postJob(guildID))
		return
	}
	if !sched.Configured() {
		logger.FromContext(ctx).Info(LogMsgIdle, "game", g.kind, "guild_id", guildID)
		return
	}
	delay := nextDelay(g.cadence, sched, g.clock.Now(), g.rng)
	g.scheduler.Schedule(g.postKey(guildID), delay, g.postJob(guildID))
}

func (g *Game) postJob(guildID string) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		if g.isClosed() {
			return nil
		}
		log := logger.FromContext(ctx)
		_, err := g.post(ctx, guildID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, domain.ErrNotConfigured):
			log.Info(LogMsgIdle, "game", g.kind, "guild_id", guildID)
			return nil
		case errors.Is(err, domain.ErrChannelMissing):
			log.Warn(LogMsgChannelMissing, "game", g.kind, "guild_id", guildID)
			g.scheduleNext(ctx, guildID)
			return nil
		case errors.Is(err, domain.ErrDropActive):
			log.Debug(LogMsgDropStillActive, "game", g.kind, "guild_id", guildID)
			return nil
		case errors.Is(err, domain.ErrNoMembers):
			log.Info(LogMsgNoEligibleMembers, "game", g.kind, "guild_id", guildID)
			g.scheduleNext(ctx, guildID)
			return nil
		default:
			metrics.DropPostErrors.WithLabelValues(string(g.kind)).Inc()
			log.Warn(LogMsgDropPostFailed, "game", g.kind, "guild_id", guildID, "error", err, "backoff", domain.PostFailureBackoff)
			if !g.isClosed() {
				g.scheduler.Schedule(g.postKey(guildID), domain.PostFailureBackoff, g.postJob(guildID))
			}
			return err
		}
	})
}

// post announces a new drop if the guild is ready for one.
func (g *Game) post(ctx context.Context, guildID string) (Active, error) {
	sched, err := g.settings.Load(ctx, guildID)
	if err != nil {
		return Active{}, err
	}
	if !sched.Configured() {
		return Active{}, domain.ErrNotConfigured
	}
	channelID := sched.EffectiveChannel()
	if !g.sink.ChannelExists(ctx, guildID, channelID) {
		return Active{}, domain.ErrChannelMissing
	}

	state := g.registry.Get(guildID)
	if !state.reservePost() {
		return Active{}, domain.ErrDropActive
	}

	ann, err := g.hooks.Announce(ctx, guildID, sched)
	if err != nil {
		state.releasePost()
		if errors.Is(err, domain.ErrNoMembers) {
			return Active{}, err
		}
		return Active{}, fmt.Errorf(ErrMsgAnnounce, err)
	}

	messageID, err := g.sink.Send(ctx, channelID, ann.Message)
	if err != nil {
		state.releasePost()
		return Active{}, fmt.Errorf(ErrMsgSendDrop, err)
	}

	now := g.clock.Now()
	state.begin(channelID, messageID, now)
	metrics.DropsPosted.WithLabelValues(string(g.kind)).Inc()

	log := logger.FromContext(ctx)
	log.Info(LogMsgDropPosted, "game", g.kind, "guild_id", guildID, "channel_id", channelID, "message_id", messageID)

	if ann.OnPosted != nil {
		if err := ann.OnPosted(ctx, messageID); err != nil {
			log.Warn(LogMsgPostedHookFailed, "game", g.kind, "guild_id", guildID, "error", err)
		}
	}

	if _, err := g.settings.Update(ctx, guildID, func(s *domain.GuildDropSchedule) {
		s.LastDropAt = now.Unix()
		s.FirstDropDone = true
	}); err != nil {
		log.Warn(LogMsgScheduleSaveFailed, "game", g.kind, "guild_id", guildID, "error", err)
	}

	if expiry := sched.Expiry(); expiry > 0 {
		g.scheduler.Schedule(g.expireKey(guildID), expiry, g.expireJob(guildID, messageID))
	}

	return Active{MessageID: messageID, ChannelID: channelID, StartedAt: now}, nil
}

func (g *Game) expireJob(guildID, messageID string) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		state, ok := g.registry.Lookup(guildID)
		if !ok {
			return nil
		}
		active, ok := state.expire(messageID)
		if !ok {
			return nil
		}

		metrics.DropsExpired.WithLabelValues(string(g.kind)).Inc()
		log := logger.FromContext(ctx)
		log.Info(LogMsgDropExpired, "game", g.kind, "guild_id", guildID, "message_id", messageID,
			"age", g.clock.Since(active.StartedAt).Round(time.Second))

		if err := g.hooks.Expired(ctx, guildID, active); err != nil {
			log.Warn(LogMsgExpiryNoticeFailed, "game", g.kind, "guild_id", guildID, "error", err)
		}
		g.scheduleNext(ctx, guildID)
		return nil
	})
}
