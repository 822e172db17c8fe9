// Package database opens the Postgres pool behind the keyed store and the
// cooldown table, and applies the embedded migrations.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the part of a connection pool the readiness probe needs.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// Options configures Open.
type Options struct {
	ConnString  string
	MaxConns    int
	MaxConnIdle time.Duration
	MaxConnLife time.Duration
	// AppName tags sessions in pg_stat_activity.
	AppName string
}

func (o Options) poolConfig() (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(o.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := min(max(o.MaxConns, 1), math.MaxInt32)
	config.MaxConns = int32(maxConns)
	config.MinConns = min(DefaultMinConnections, config.MaxConns)
	if o.MaxConnIdle > 0 {
		config.MaxConnIdleTime = o.MaxConnIdle
	}
	if o.MaxConnLife > 0 {
		config.MaxConnLifetime = o.MaxConnLife
	}

	appName := o.AppName
	if appName == "" {
		appName = DefaultAppName
	}
	config.ConnConfig.RuntimeParams[RuntimeParamAppName] = appName
	return config, nil
}

// Open connects a pool and verifies it with a ping bounded by
// DefaultConnectTimeout.
func Open(ctx context.Context, o Options) (*pgxpool.Pool, error) {
	config, err := o.poolConfig()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgConnected,
		"max_conns", config.MaxConns,
		"host", config.ConnConfig.Host,
		"database", config.ConnConfig.Database)
	return pool, nil
}
