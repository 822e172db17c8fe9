// Package store defines the persistent keyed store every game keeps its
// configuration and ledger state in.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/dropgame/internal/domain"
)

// Scope addresses a guild (UserID empty) or a member of a guild, per game.
type Scope struct {
	Game    domain.Game
	GuildID string
	UserID  string
}

// Guild returns the guild-wide scope for a game.
func Guild(game domain.Game, guildID string) Scope {
	return Scope{Game: game, GuildID: guildID}
}

// Member returns the member scope for a game.
func Member(game domain.Game, guildID, userID string) Scope {
	return Scope{Game: game, GuildID: guildID, UserID: userID}
}

// IsGuild reports whether s is guild-wide.
func (s Scope) IsGuild() bool {
	return s.UserID == ""
}

// GuildScope strips the member from s.
func (s Scope) GuildScope() Scope {
	return Scope{Game: s.Game, GuildID: s.GuildID}
}

func (s Scope) String() string {
	if s.IsGuild() {
		return fmt.Sprintf("%s/%s", s.Game, s.GuildID)
	}
	return fmt.Sprintf("%s/%s/%s", s.Game, s.GuildID, s.UserID)
}

// Store is a durable JSON value store keyed by scope and name.
type Store interface {
	// Get decodes the value at key into dst. It reports false, with dst
	// untouched, when nothing is stored there.
	Get(ctx context.Context, scope Scope, key string, dst any) (bool, error)

	// Set replaces the value at key.
	Set(ctx context.Context, scope Scope, key string, value any) error

	// Delete removes the value at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, scope Scope, key string) error

	// Members returns the raw value at key for every member of a guild that has one.
	Members(ctx context.Context, game domain.Game, guildID, key string) (map[string]json.RawMessage, error)
}

// GetOr decodes the value at key, falling back to def when nothing is stored.
func GetOr[T any](ctx context.Context, st Store, scope Scope, key string, def T) (T, error) {
	v := def
	if _, err := st.Get(ctx, scope, key, &v); err != nil {
		return def, err
	}
	return v, nil
}
