package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/chore-planner/internal/domain/auth"
	"github.com/yanqian/chore-planner/internal/domain/flow"
	"github.com/yanqian/chore-planner/internal/domain/planner"
	"github.com/yanqian/chore-planner/internal/infra/config"
	"github.com/yanqian/chore-planner/internal/infra/profilerepo"
	"github.com/yanqian/chore-planner/internal/infra/sessionstore"
	"github.com/yanqian/chore-planner/internal/infra/userrepo"
	"github.com/yanqian/chore-planner/internal/infra/weather/openmeteo"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		Google: auth.GoogleConfig{
			ClientID:             cfg.Auth.Google.ClientID,
			ClientSecret:         cfg.Auth.Google.ClientSecret,
			RedirectURL:          cfg.Auth.Google.RedirectURL,
			TokenEncryptionKey:   cfg.Auth.Google.TokenEncryptionKey,
			PostLoginRedirectURL: cfg.Auth.Google.PostLoginRedirectURL,
		},
	}
}

func providePlannerConfig(cfg *config.Config, logger *slog.Logger) planner.Config {
	loc, err := time.LoadLocation(cfg.Planner.Timezone)
	if err != nil {
		logger.Warn("timezone database lookup failed, using fixed offset", "timezone", cfg.Planner.Timezone, "offset_hours", cfg.Planner.TimezoneOffset)
		loc = time.FixedZone(cfg.Planner.Timezone, cfg.Planner.TimezoneOffset*3600)
	}
	return planner.Config{Timezone: loc}
}

func provideWeatherClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(cfg.Weather.APIBaseURL, cfg.Planner.Timezone)
}

func providePool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres pool established")
	return pool
}

func provideAuthRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideProfileRepository(pool *pgxpool.Pool) planner.Repository {
	if pool == nil {
		return profilerepo.NewMemoryRepository()
	}
	return profilerepo.NewPostgresRepository(pool)
}

func provideSessionStore(cfg *config.Config, logger *slog.Logger) auth.SessionStore {
	if cfg.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory session store", "error", err)
			return sessionstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory session store", "error", err)
			return sessionstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory session store", "error", err)
		} else {
			logger.Info("valkey session store enabled", "addr", cfg.Redis.Addr)
			return sessionstore.NewValkeyStore(client, "session")
		}
	}
	return sessionstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

// providePlannerService ties the draft lifecycle to the session flow: when a
// session drops back to Unauthenticated the user's draft is discarded.
func providePlannerService(cfg planner.Config, repo planner.Repository, f *flow.Flow, logger *slog.Logger) planner.Service {
	svc := planner.NewService(cfg, repo, f, logger)
	f.Subscribe(func(userID int64, state flow.State) {
		if state == flow.Unauthenticated {
			svc.Discard(userID)
		}
	})
	return svc
}
