package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/store"
)

// Store implements store.Store over the kv_store table.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a database-backed keyed store.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, scope store.Scope, key string, dst any) (bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, SQLSelectValue, string(scope.Game), scope.GuildID, scope.UserID, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s %s %q: %w", ErrMsgFailedToGetValue, scope, key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf(store.ErrMsgDecodeValue, scope, key, err)
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, scope store.Scope, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf(store.ErrMsgEncodeValue, scope, key, err)
	}
	if _, err := s.db.Exec(ctx, SQLUpsertValue, string(scope.Game), scope.GuildID, scope.UserID, key, json.RawMessage(b)); err != nil {
		return fmt.Errorf("%s %s %q: %w", ErrMsgFailedToSetValue, scope, key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, scope store.Scope, key string) error {
	if _, err := s.db.Exec(ctx, SQLDeleteValue, string(scope.Game), scope.GuildID, scope.UserID, key); err != nil {
		return fmt.Errorf("%s %s %q: %w", ErrMsgFailedToDeleteValue, scope, key, err)
	}
	return nil
}

func (s *Store) Members(ctx context.Context, game domain.Game, guildID, key string) (map[string]json.RawMessage, error) {
	rows, err := s.db.Query(ctx, SQLSelectMemberValues, string(game), guildID, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMembers, err)
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var userID string
		var raw []byte
		if err := rows.Scan(&userID, &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMembers, err)
		}
		out[userID] = raw
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMembers, err)
	}
	return out, nil
}
