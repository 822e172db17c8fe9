package cooldown

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/store"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresBackend implements Service over the user_cooldowns table, using
// advisory locks so enforcement holds across processes.
type postgresBackend struct {
	db       *pgxpool.Pool
	config   Config
	modifier Modifier
	clock    clockwork.Clock
}

// NewPostgresService creates a new cooldown service with Postgres backend
func NewPostgresService(db *pgxpool.Pool, config Config, modifier Modifier, clock clockwork.Clock) Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &postgresBackend{
		db:       db,
		config:   config,
		modifier: modifier,
		clock:    clock,
	}
}

// CheckCooldown is an unlocked read
func (b *postgresBackend) CheckCooldown(ctx context.Context, scope store.Scope, action string) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	lastUsed, err := b.getLastUsed(ctx, b.db, scope, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	duration := effectiveCooldown(ctx, &b.config, b.modifier, scope, action)
	onCooldown, remaining := checkCooldownInternal(b.clock.Now(), lastUsed, duration)
	return onCooldown, remaining, nil
}

func (b *postgresBackend) Touch(ctx context.Context, scope store.Scope, action string) error {
	_, err := b.db.Exec(ctx, SQLUpsertCooldown, scopeArgs(scope, action, b.clock.Now())...)
	if err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}
	return nil
}

// EnforceCooldown uses a cheap unlocked check first, then rechecks under an
// advisory transaction lock.
func (b *postgresBackend) EnforceCooldown(ctx context.Context, scope store.Scope, action string, fn func() error) error {
	log := logger.FromContext(ctx)

	onCooldown, remaining, err := b.CheckCooldown(ctx, scope, action)
	if err != nil {
		return err
	}
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if b.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action, "scope", scope.String())
		if err := fn(); err != nil {
			return err
		}
		return b.Touch(ctx, scope, action)
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Advisory locks hold even when no row exists yet.
	if _, err := tx.Exec(ctx, SQLAdvisoryLock, hashScopeAction(scope, action)); err != nil {
		return fmt.Errorf(ErrMsgAcquireLockFailed, err)
	}

	lastUsed, err := b.getLastUsed(ctx, tx, scope, action)
	if err != nil {
		return fmt.Errorf(ErrMsgGetCooldownTxFailed, err)
	}
	duration := effectiveCooldown(ctx, &b.config, b.modifier, scope, action)
	if onCooldown, remaining := checkCooldownInternal(b.clock.Now(), lastUsed, duration); onCooldown {
		log.Debug(LogMsgRaceConditionDetected, "action", action, "scope", scope.String(), "remaining", remaining)
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if err := fn(); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, SQLUpsertCooldown, scopeArgs(scope, action, b.clock.Now())...); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Debug(LogMsgCooldownEnforced, "action", action, "scope", scope.String())
	return nil
}

func (b *postgresBackend) ResetCooldown(ctx context.Context, scope store.Scope, action string) error {
	_, err := b.db.Exec(ctx, SQLDeleteCooldown, string(scope.Game), scope.GuildID, scope.UserID, action)
	if err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

func (b *postgresBackend) GetLastUsed(ctx context.Context, scope store.Scope, action string) (*time.Time, error) {
	return b.getLastUsed(ctx, b.db, scope, action)
}

func (b *postgresBackend) getLastUsed(ctx context.Context, q querier, scope store.Scope, action string) (*time.Time, error) {
	var lastUsed time.Time
	err := q.QueryRow(ctx, SQLSelectLastUsed, string(scope.Game), scope.GuildID, scope.UserID, action).Scan(&lastUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf(ErrMsgGetLastUsedFailed, err)
	}
	return &lastUsed, nil
}

func scopeArgs(scope store.Scope, action string, at time.Time) []any {
	return []any{string(scope.Game), scope.GuildID, scope.UserID, action, at}
}

// hashScopeAction derives a stable positive advisory lock key.
func hashScopeAction(scope store.Scope, action string) int64 {
	h := sha256.Sum256([]byte(scope.String() + HashSeparator + action))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
