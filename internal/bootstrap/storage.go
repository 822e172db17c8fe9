package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/osse101/dropgame/internal/config"
	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/database"
	"github.com/osse101/dropgame/internal/database/postgres"
	"github.com/osse101/dropgame/internal/store"
)

// Storage is the selected persistence backend. DB is nil for the memory
// store.
type Storage struct {
	Store store.Store
	DB    *pgxpool.Pool
	clock clockwork.Clock
}

// OpenStorage connects and migrates the database, or falls back to the
// in-process store when cfg selects it.
func OpenStorage(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (*Storage, error) {
	if !cfg.UsesDatabase() {
		slog.Info(LogMsgStoreSelected, "backend", config.StoreBackendMemory)
		return &Storage{Store: store.NewMemory(), clock: clock}, nil
	}

	pool, err := database.Open(ctx, database.Options{
		ConnString:  cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MaxConnIdle: DBMaxConnIdle,
		MaxConnLife: DBMaxConnLife,
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenDatabase, err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf(ErrMsgMigrate, err)
	}

	slog.Info(LogMsgStoreSelected, "backend", config.StoreBackendPostgres)
	return &Storage{Store: postgres.NewStore(pool), DB: pool, clock: clock}, nil
}

// Cooldowns returns a cooldown service on the same backend as the store.
func (s *Storage) Cooldowns(cfg cooldown.Config, mod cooldown.Modifier) cooldown.Service {
	if s.DB != nil {
		return cooldown.NewPostgresService(s.DB, cfg, mod, s.clock)
	}
	return cooldown.NewStoreService(s.Store, cfg, mod, s.clock)
}

// Pool returns the database for readiness checks, or nil.
func (s *Storage) Pool() database.Pool {
	if s.DB == nil {
		return nil
	}
	return s.DB
}

// Close releases the database connections.
func (s *Storage) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
