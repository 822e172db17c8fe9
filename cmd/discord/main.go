package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/dropgame/internal/bootstrap"
	"github.com/osse101/dropgame/internal/config"
	"github.com/osse101/dropgame/internal/cooldown"
	"github.com/osse101/dropgame/internal/discord"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/itemdrop"
	"github.com/osse101/dropgame/internal/ledger"
	"github.com/osse101/dropgame/internal/reason"
	"github.com/osse101/dropgame/internal/scheduler"
	"github.com/osse101/dropgame/internal/server"
	"github.com/osse101/dropgame/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error(bootstrap.LogMsgConfigFailed, "error", err)
		os.Exit(1)
	}
	bootstrap.SetupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error(bootstrap.LogMsgRunFailed, "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	storage, err := bootstrap.OpenStorage(ctx, cfg, clock)
	if err != nil {
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	sched := scheduler.New(pool, clock)
	sched.Start(ctx)

	bot, err := discord.New(discord.Config{
		Token:              cfg.DiscordToken,
		AppID:              cfg.DiscordAppID,
		GuildID:            cfg.DiscordGuildID,
		ForceCommandUpdate: cfg.ForceCommandUpdate,
	})
	if err != nil {
		return err
	}

	texts, err := reason.LoadTexts(cfg.ReasonsPath)
	if err != nil {
		return err
	}

	led := ledger.New(storage.Store, clock)
	overrides, err := cooldown.ParseOverrides(cfg.CooldownOverrides)
	if err != nil {
		return err
	}
	cdCfg := cooldown.Config{DevMode: cfg.DevMode, Cooldowns: overrides}

	var items []*itemdrop.Service
	for _, v := range []itemdrop.Variant{itemdrop.Mesh, itemdrop.Model} {
		settings := itemdrop.NewSettings(v, storage.Store)
		items = append(items, itemdrop.New(itemdrop.Config{
			Variant:   v,
			Settings:  settings,
			Scheduler: sched,
			Sink:      bot.Sink,
			Cooldowns: storage.Cooldowns(cdCfg, settings),
			Ledger:    led,
		}))
	}

	reasonSettings := reason.NewSettings(storage.Store, cfg.ReasonExpiry)
	reasons := reason.New(reason.Config{
		Store:     storage.Store,
		Settings:  reasonSettings,
		Scheduler: sched,
		Sink:      bot.Sink,
		Directory: bot.Directory,
		Cooldowns: storage.Cooldowns(cdCfg, reasonSettings),
		Ledger:    led,
		Texts:     texts,
	})

	bot.Bind(discord.Games{Items: items, Reason: reasons})

	ops := server.NewServer(server.Config{
		Port:           cfg.HealthPort,
		APIKey:         cfg.OpsAPIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		Environment:    cfg.Environment,
	}, bot, storage.Pool(), bot)

	games := []*drop.Game{reasons.Game()}
	for _, svc := range items {
		games = append(games, svc.Game())
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Gateway:   bot,
			Games:     games,
			Scheduler: sched,
			Pool:      pool,
			Storage:   storage,
		})
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ops.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf(bootstrap.ErrMsgOpsServer, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := bot.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		return nil
	})
	// The ops server stops first so nothing new arrives during teardown.
	g.Go(func() error {
		<-gctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return ops.Stop(stopCtx)
	})

	return g.Wait()
}
