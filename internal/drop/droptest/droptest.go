// Package droptest provides in-memory fakes of the drop transport
// interfaces for tests.
package droptest

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/dropgame/internal/drop"
)

// Sent is one message delivered to a Sink.
type Sent struct {
	ChannelID string
	MessageID string
	Msg       drop.Message
}

// Sink records messages. Every channel exists unless marked missing.
type Sink struct {
	mu        sync.Mutex
	next      int
	sent      []Sent
	edits     []Sent
	reactions []string
	missing   map[string]bool
	SendErr   error
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{missing: make(map[string]bool)}
}

func (s *Sink) Send(ctx context.Context, channelID string, msg drop.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SendErr != nil {
		return "", s.SendErr
	}
	s.next++
	id := fmt.Sprintf("m%d", s.next)
	s.sent = append(s.sent, Sent{ChannelID: channelID, MessageID: id, Msg: msg})
	return id, nil
}

func (s *Sink) Edit(ctx context.Context, channelID, messageID string, msg drop.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edits = append(s.edits, Sent{ChannelID: channelID, MessageID: messageID, Msg: msg})
	return nil
}

func (s *Sink) React(ctx context.Context, channelID, messageID, emoji string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions = append(s.reactions, emoji)
	return nil
}

func (s *Sink) ChannelExists(ctx context.Context, guildID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.missing[channelID]
}

// SetMissing marks channelID as deleted or restored.
func (s *Sink) SetMissing(channelID string, missing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missing[channelID] = missing
}

// Sent returns a copy of every sent message.
func (s *Sink) Sent() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sent(nil), s.sent...)
}

// Edits returns a copy of every edit.
func (s *Sink) Edits() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sent(nil), s.edits...)
}

// Reactions returns every emoji added, in order.
func (s *Sink) Reactions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.reactions...)
}

// Last returns the most recent message; it panics when nothing was sent.
func (s *Sink) Last() Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}

// Request is a claim request that records replies.
type Request struct {
	RequestKind drop.RequestKind
	Member      drop.Member
	Guild       string
	Channel     string
	Message     string

	mu        sync.Mutex
	responses []drop.Message
	reactions []string
}

func (r *Request) Kind() drop.RequestKind { return r.RequestKind }
func (r *Request) Actor() drop.Member     { return r.Member }
func (r *Request) GuildID() string        { return r.Guild }
func (r *Request) ChannelID() string      { return r.Channel }
func (r *Request) MessageID() string      { return r.Message }

func (r *Request) Respond(ctx context.Context, msg drop.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, msg)
	return nil
}

func (r *Request) React(ctx context.Context, emoji string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reactions = append(r.reactions, emoji)
	return nil
}

// Responses returns a copy of every reply.
func (r *Request) Responses() []drop.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]drop.Message(nil), r.responses...)
}

// Reactions returns a copy of every reaction.
func (r *Request) Reactions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reactions...)
}

// Directory returns a fixed member list for every channel.
type Directory struct {
	mu      sync.Mutex
	Members []drop.Member
	Err     error
}

func (d *Directory) EligibleMembers(ctx context.Context, guildID, channelID string) ([]drop.Member, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	var out []drop.Member
	for _, m := range d.Members {
		if !m.Bot {
			out = append(out, m)
		}
	}
	return out, nil
}
