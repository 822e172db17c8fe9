package reason

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/dropgame/internal/concurrency"
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/store"
)

type dropCache = lru.Cache[string, domain.ReasonDrop]

// Book is the per-guild record of recently posted reasons, keyed by message
// id. Each guild keeps at most domain.DropBookCap entries; the least recently
// touched one is forgotten first. Every change is written through to the
// store.
type Book struct {
	game   domain.Game
	st     store.Store
	locks  *concurrency.LockManager
	guilds *expirable.LRU[string, *dropCache]
}

// NewBook creates a book persisted in st.
func NewBook(game domain.Game, st store.Store) *Book {
	return &Book{
		game:   game,
		st:     st,
		locks:  concurrency.NewLockManager(),
		guilds: expirable.NewLRU[string, *dropCache](BookCacheSize, nil, BookCacheTTL),
	}
}

// load returns the guild's cache, reading it from the store on a miss.
// Callers hold the guild lock.
func (b *Book) load(ctx context.Context, guildID string) (*dropCache, error) {
	if c, ok := b.guilds.Get(guildID); ok {
		return c, nil
	}
	var entries []domain.ReasonDrop
	if _, err := b.st.Get(ctx, store.Guild(b.game, guildID), domain.KeyDropBook, &entries); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadBook, guildID, err)
	}
	c, err := lru.New[string, domain.ReasonDrop](domain.DropBookCap)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		c.Add(e.MessageID, e)
	}
	b.guilds.Add(guildID, c)
	return c, nil
}

// save writes the guild's entries oldest first so a reload keeps the order.
func (b *Book) save(ctx context.Context, guildID string, c *dropCache) error {
	if err := b.st.Set(ctx, store.Guild(b.game, guildID), domain.KeyDropBook, c.Values()); err != nil {
		b.guilds.Remove(guildID)
		return fmt.Errorf(ErrMsgSaveBook, guildID, err)
	}
	return nil
}

// Get returns the entry for messageID.
func (b *Book) Get(ctx context.Context, guildID, messageID string) (domain.ReasonDrop, bool, error) {
	var (
		out domain.ReasonDrop
		ok  bool
	)
	err := b.locks.Do(guildID, func() error {
		c, err := b.load(ctx, guildID)
		if err != nil {
			return err
		}
		out, ok = c.Peek(messageID)
		return nil
	})
	return out, ok, err
}

// Put records a newly posted reason.
func (b *Book) Put(ctx context.Context, guildID string, d domain.ReasonDrop) error {
	return b.locks.Do(guildID, func() error {
		c, err := b.load(ctx, guildID)
		if err != nil {
			return err
		}
		c.Add(d.MessageID, d)
		return b.save(ctx, guildID, c)
	})
}

// Update applies fn to the entry for messageID and saves it. Nothing is
// written when fn fails. It returns domain.ErrUnknownDrop when the entry has
// been forgotten.
func (b *Book) Update(ctx context.Context, guildID, messageID string, fn func(*domain.ReasonDrop) error) (domain.ReasonDrop, error) {
	var out domain.ReasonDrop
	err := b.locks.Do(guildID, func() error {
		c, err := b.load(ctx, guildID)
		if err != nil {
			return err
		}
		d, ok := c.Get(messageID)
		if !ok {
			return domain.ErrUnknownDrop
		}
		if err := fn(&d); err != nil {
			out = d
			return err
		}
		c.Add(messageID, d)
		out = d
		return b.save(ctx, guildID, c)
	})
	return out, err
}

// Latest returns the most recently posted entry.
func (b *Book) Latest(ctx context.Context, guildID string) (domain.ReasonDrop, bool, error) {
	var (
		out domain.ReasonDrop
		ok  bool
	)
	err := b.locks.Do(guildID, func() error {
		c, err := b.load(ctx, guildID)
		if err != nil {
			return err
		}
		for _, d := range c.Values() {
			if !ok || d.PostedAt >= out.PostedAt {
				out, ok = d, true
			}
		}
		return nil
	})
	return out, ok, err
}

// Len is the number of entries kept for the guild.
func (b *Book) Len(ctx context.Context, guildID string) (int, error) {
	var n int
	err := b.locks.Do(guildID, func() error {
		c, err := b.load(ctx, guildID)
		if err != nil {
			return err
		}
		n = c.Len()
		return nil
	})
	return n, err
}
