package drop

import (
	"sort"
	"sync"
	"time"

	"github.com/osse101/dropgame/internal/domain"
)

// Active is a snapshot of a guild's current drop.
type Active struct {
	MessageID string
	ChannelID string
	StartedAt time.Time
	ClaimedBy string
}

// Outstanding reports whether the drop is posted and still unclaimed.
func (a Active) Outstanding() bool {
	return a.MessageID != "" && a.ClaimedBy == ""
}

// State is the in-memory drop record of one guild. Claimant assignment is
// the only field written outside the owning game.
type State struct {
	mu        sync.Mutex
	messageID string
	channelID string
	startedAt time.Time
	claimedBy string
	done      chan struct{}
	posting   bool
	restored  bool
}

func newState() *State {
	return &State{done: closedChan()}
}

func closedChan() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

// Snapshot copies the current drop fields.
func (s *State) Snapshot() Active {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Active {
	return Active{
		MessageID: s.messageID,
		ChannelID: s.channelID,
		StartedAt: s.startedAt,
		ClaimedBy: s.claimedBy,
	}
}

// Done is closed once the current drop is claimed or expires.
func (s *State) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// reservePost marks a post in progress. It fails while a drop is
// outstanding or another post is underway.
func (s *State) reservePost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.posting || s.snapshotLocked().Outstanding() {
		return false
	}
	s.posting = true
	return true
}

func (s *State) releasePost() {
	s.mu.Lock()
	s.posting = false
	s.mu.Unlock()
}

// begin records a freshly posted drop.
func (s *State) begin(channelID, messageID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID = messageID
	s.channelID = channelID
	s.startedAt = at
	s.claimedBy = ""
	s.done = make(chan struct{})
	s.posting = false
}

// claim binds userID as the winner of messageID. It is the lock-and-recheck
// half of the arbitration.
func (s *State) claim(messageID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.messageID == "" || s.messageID != messageID {
		return domain.ErrNothingToClaim
	}
	if s.claimedBy != "" {
		return domain.ErrLostRace
	}
	s.claimedBy = userID
	close(s.done)
	return nil
}

// expire clears messageID if it is still unclaimed.
func (s *State) expire(messageID string) (Active, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.messageID == "" || s.messageID != messageID || s.claimedBy != "" {
		return Active{}, false
	}
	a := s.snapshotLocked()
	s.clearLocked()
	return a, true
}

// resolve clears messageID after its claim has been handled.
func (s *State) resolve(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.messageID != messageID {
		return false
	}
	s.clearLocked()
	return true
}

// reset abandons whatever drop is in flight.
func (s *State) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.posting = false
}

func (s *State) clearLocked() {
	s.messageID = ""
	s.channelID = ""
	s.startedAt = time.Time{}
	s.claimedBy = ""
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// markRestored reports whether this is the first restore attempt.
func (s *State) markRestored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restored {
		return false
	}
	s.restored = true
	return true
}

// Registry owns the drop state of every guild for one game.
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{states: make(map[string]*State)}
}

// Get returns the guild's state, creating it on first use.
func (r *Registry) Get(guildID string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[guildID]
	if !ok {
		s = newState()
		r.states[guildID] = s
	}
	return s
}

// Lookup returns the guild's state without creating it.
func (r *Registry) Lookup(guildID string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[guildID]
	return s, ok
}

// Guilds lists guilds with state, sorted.
func (r *Registry) Guilds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.states))
	for id := range r.states {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Reset abandons every drop and forgets all guilds.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.states {
		s.reset()
	}
	r.states = make(map[string]*State)
}
