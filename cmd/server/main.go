package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/modules/billing"
	"github.com/dmitrymomot/workspacebilling/pkg/config"
	"github.com/dmitrymomot/workspacebilling/pkg/deletionguard"
	"github.com/dmitrymomot/workspacebilling/pkg/httpserver"
	"github.com/dmitrymomot/workspacebilling/pkg/i18n"
	"github.com/dmitrymomot/workspacebilling/pkg/logger"
	"github.com/dmitrymomot/workspacebilling/pkg/redis"
	"github.com/dmitrymomot/workspacebilling/pkg/requestid"
	"github.com/dmitrymomot/workspacebilling/pkg/store"
	"github.com/dmitrymomot/workspacebilling/svc/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithContextExtractors(requestid.Extractor),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storeOpts := []store.Option{store.WithLogger(log.With(logger.Component("store")))}
	var readiness []func(context.Context) error

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		storeOpts = append(storeOpts, store.WithPersister(store.NewRedisPersister(client,
			store.WithRedisKey(cfg.Redis.Key),
			store.WithRedisTTL(cfg.Redis.TTL),
		)))
		readiness = append(readiness, redis.Healthcheck(client))
	}

	st := store.New(storeOpts...)
	defer st.Close()

	if err := prepareStore(ctx, log, st, cfg); err != nil {
		return err
	}

	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(deletionguard.Locales, "locales"),
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log.With(logger.Component("i18n"))),
		i18n.WithMissingTranslationsLogging(cfg.AppEnv != logger.EnvProduction),
	)
	if err != nil {
		return err
	}

	guard := deletionguard.New(billing.Navigator(),
		deletionguard.WithTexts(tr),
		deletionguard.WithSettlementRoute(cfg.SettlementRoute),
		deletionguard.WithLogger(log.With(logger.Component("deletionguard"))),
	)
	sess := session.New(st, session.WithGuard(guard), session.WithLogger(log))
	defer sess.Close()

	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.Recoverer)
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, readiness...))
	r.Mount("/", billing.New(sess,
		billing.WithLogger(log),
		billing.WithTranslator(tr),
	).Handle())

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}

// prepareStore restores the persisted snapshot, falling back to the seed
// file, then pins the configured account.
func prepareStore(ctx context.Context, log *slog.Logger, st *store.Store, cfg Config) error {
	restored, err := st.Restore(ctx)
	if err != nil {
		log.WarnContext(ctx, "starting with an empty store", logger.Error(err))
	}

	if !restored && cfg.SeedFile != "" {
		s, err := loadSeedFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := s.apply(ctx, st); err != nil && !errors.Is(err, store.ErrPersistFailed) {
			return err
		}
		log.InfoContext(ctx, "store seeded", slog.String("file", cfg.SeedFile))
	}

	if cfg.AccountID != uuid.Nil {
		id := cfg.AccountID
		if err := st.MergeAccount(ctx, store.AccountPatch{ID: &id}); err != nil && !errors.Is(err, store.ErrPersistFailed) {
			return err
		}
	}
	return nil
}
