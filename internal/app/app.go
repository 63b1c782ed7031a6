// Package app assembles the marketplace API from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/marketplace/internal/db/migrations"
	"github.com/dmitrymomot/marketplace/internal/storage/memory"
	"github.com/dmitrymomot/marketplace/internal/storage/postgres"
	"github.com/dmitrymomot/marketplace/pkg/clientip"
	"github.com/dmitrymomot/marketplace/pkg/config"
	"github.com/dmitrymomot/marketplace/pkg/email"
	"github.com/dmitrymomot/marketplace/pkg/environment"
	"github.com/dmitrymomot/marketplace/pkg/httpserver"
	"github.com/dmitrymomot/marketplace/pkg/jwt"
	"github.com/dmitrymomot/marketplace/pkg/logger"
	"github.com/dmitrymomot/marketplace/pkg/pg"
	"github.com/dmitrymomot/marketplace/pkg/requestid"
	"github.com/dmitrymomot/marketplace/svc/auth"
	"github.com/dmitrymomot/marketplace/svc/catalog"
	"github.com/dmitrymomot/marketplace/svc/guard"
	"github.com/dmitrymomot/marketplace/svc/recovery"
)

// Storage is everything the services need from a backend.
type Storage interface {
	auth.Storage
	recovery.Storage
	catalog.Storage
	guard.OwnerResolver
}

// Run loads configuration from the environment and serves the API until ctx
// is cancelled or the process receives a termination signal.
func Run(ctx context.Context) error {
	cfg, err := config.Load[Config]()
	if err != nil {
		return err
	}

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor,
			clientip.LoggerExtractor,
			auth.LoggerExtractor,
		),
	)

	httpCfg, err := config.Load[httpserver.Config]()
	if err != nil {
		return err
	}
	jwtCfg, err := config.Load[jwt.Config]()
	if err != nil {
		return err
	}
	authCfg, err := config.Load[auth.Config]()
	if err != nil {
		return err
	}
	recoveryCfg, err := config.Load[recovery.Config]()
	if err != nil {
		return err
	}
	emailCfg, err := config.Load[email.Config]()
	if err != nil {
		return err
	}

	storage, checks, closeStorage, err := openStorage(ctx, cfg.StorageDriver, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	tokens, err := jwt.New(jwtCfg)
	if err != nil {
		return fmt.Errorf("app: jwt: %w", err)
	}

	sender, err := email.NewSender(emailCfg, env)
	if err != nil {
		return fmt.Errorf("app: email: %w", err)
	}

	deps := Deps{
		Env:    env,
		Logger: log,
		Auth:   auth.NewService(storage, tokens, authCfg, auth.WithLogger(log)),
		Recovery: recovery.NewService(storage,
			recovery.NewEmailNotifier(sender, recovery.WithSupportEmail(emailCfg.SupportEmail)),
			recoveryCfg,
			recovery.WithPasswordPolicy(authCfg),
			recovery.WithLogger(log),
		),
		Catalog:         catalog.NewService(storage, catalog.WithLogger(log)),
		Tokens:          tokens,
		Owners:          storage,
		RequestTimeout:  httpCfg.RequestTimeout,
		ReadinessChecks: checks,
	}

	return httpserver.New(httpCfg, httpserver.WithLogger(log)).Run(ctx, NewRouter(deps))
}

func openStorage(ctx context.Context, driver string, log *slog.Logger) (Storage, []func(context.Context) error, func(), error) {
	switch driver {
	case StorageMemory:
		log.WarnContext(ctx, "using in-memory storage, data is lost on restart")
		return memory.New(), nil, func() {}, nil

	case StoragePostgres:
		pgCfg, err := config.Load[pg.Config]()
		if err != nil {
			return nil, nil, nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if pgCfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, migrations.FS, log); err != nil {
				pool.Close()
				return nil, nil, nil, err
			}
		}
		return postgres.New(pool), []func(context.Context) error{pg.Healthcheck(pool)}, pool.Close, nil

	default:
		return nil, nil, nil, errors.Join(ErrUnknownStorageDriver, fmt.Errorf("driver %q", driver))
	}
}
