package drop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/scheduler"
	"github.com/osse101/dropgame/internal/store"
	"github.com/osse101/dropgame/internal/worker"
)

const (
	testGuild   = "g1"
	testChannel = "c1"
)

type sent struct {
	ChannelID string
	MessageID string
	Msg       Message
}

// fakeSink records outgoing messages.
type fakeSink struct {
	mu      sync.Mutex
	next    int
	sent    []sent
	edits   []sent
	missing map[string]bool
	sendErr error
}

func newFakeSink() *fakeSink {
	return &fakeSink{missing: make(map[string]bool)}
}

func (s *fakeSink) Send(ctx context.Context, channelID string, msg Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return "", s.sendErr
	}
	s.next++
	id := fmt.Sprintf("m%d", s.next)
	s.sent = append(s.sent, sent{ChannelID: channelID, MessageID: id, Msg: msg})
	return id, nil
}

func (s *fakeSink) Edit(ctx context.Context, channelID, messageID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edits = append(s.edits, sent{ChannelID: channelID, MessageID: messageID, Msg: msg})
	return nil
}

func (s *fakeSink) React(ctx context.Context, channelID, messageID, emoji string) error {
	return nil
}

func (s *fakeSink) ChannelExists(ctx context.Context, guildID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.missing[channelID]
}

func (s *fakeSink) setMissing(channelID string, missing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missing[channelID] = missing
}

func (s *fakeSink) setSendErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErr = err
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *fakeSink) last() sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}

// fakeHooks announces a fixed message and reports expiries on a channel.
type fakeHooks struct {
	mu          sync.Mutex
	announceErr error
	announced   int
	expired     chan Active
}

func newFakeHooks() *fakeHooks {
	return &fakeHooks{expired: make(chan Active, 8)}
}

func (h *fakeHooks) Announce(ctx context.Context, guildID string, sched domain.GuildDropSchedule) (Announcement, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.announceErr != nil {
		return Announcement{}, h.announceErr
	}
	h.announced++
	return Announcement{Message: Text("a drop appears")}, nil
}

func (h *fakeHooks) Expired(ctx context.Context, guildID string, drop Active) error {
	h.expired <- drop
	return nil
}

func (h *fakeHooks) setAnnounceErr(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.announceErr = err
}

// fakeRequest is a claim request that records replies.
type fakeRequest struct {
	kind      RequestKind
	actor     Member
	messageID string

	mu        sync.Mutex
	responses []Message
	reactions []string
}

func (r *fakeRequest) Kind() RequestKind { return r.kind }
func (r *fakeRequest) Actor() Member     { return r.actor }
func (r *fakeRequest) GuildID() string   { return testGuild }
func (r *fakeRequest) ChannelID() string { return testChannel }
func (r *fakeRequest) MessageID() string { return r.messageID }

func (r *fakeRequest) Respond(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, msg)
	return nil
}

func (r *fakeRequest) React(ctx context.Context, emoji string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reactions = append(r.reactions, emoji)
	return nil
}

type harness struct {
	game      *Game
	clock     *clockwork.FakeClock
	sink      *fakeSink
	hooks     *fakeHooks
	sched     *scheduler.Scheduler
	store     *store.Memory
	cooldowns cooldown.Service
}

type harnessOption func(*GameConfig)

func withRestorer(r Restorer) harnessOption {
	return func(c *GameConfig) { c.Restorer = r }
}

func withCadence(c Cadence) harnessOption {
	return func(cfg *GameConfig) { cfg.Cadence = c }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	clock := clockwork.NewFakeClock()
	pool := worker.NewPool(2, 32)
	pool.Start()
	sched := scheduler.New(pool, clock)
	t.Cleanup(func() {
		sched.Stop()
		pool.Stop()
	})

	st := store.NewMemory()
	settings := NewSettings(domain.GameMesh, st, domain.GuildDropSchedule{
		MinInterval:     10,
		MaxInterval:     10,
		ExpirySeconds:   600,
		AttemptCooldown: domain.DefaultAttemptCooldown,
	})
	cds := cooldown.NewStoreService(st, cooldown.Config{}, settings, clock)

	h := &harness{
		clock:     clock,
		sink:      newFakeSink(),
		hooks:     newFakeHooks(),
		sched:     sched,
		store:     st,
		cooldowns: cds,
	}
	cfg := GameConfig{
		Game:      domain.GameMesh,
		Settings:  settings,
		Scheduler: sched,
		Sink:      h.sink,
		Hooks:     h.hooks,
		Cooldowns: cds,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	h.game = NewGame(cfg)
	return h
}

func (h *harness) configure(t *testing.T, fn func(*domain.GuildDropSchedule)) {
	t.Helper()
	_, err := h.game.Settings().Update(context.Background(), testGuild, func(s *domain.GuildDropSchedule) {
		s.ChannelID = testChannel
		if fn != nil {
			fn(s)
		}
	})
	require.NoError(t, err)
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h.sched.Start(ctx)
}

func (h *harness) blockUntilTimer(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.clock.BlockUntilContext(ctx, 1))
}

func (h *harness) pending(key string) bool {
	_, ok := h.sched.Pending(key)
	return ok
}

var errBoom = errors.New("boom")

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)
