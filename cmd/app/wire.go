//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/chore-planner/internal/bootstrap"
	"github.com/yanqian/chore-planner/internal/domain/auth"
	"github.com/yanqian/chore-planner/internal/domain/flow"
	"github.com/yanqian/chore-planner/internal/domain/weather"
	"github.com/yanqian/chore-planner/internal/infra/config"
	"github.com/yanqian/chore-planner/internal/infra/weather/openmeteo"
	httpiface "github.com/yanqian/chore-planner/internal/interface/http"
	"github.com/yanqian/chore-planner/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		providePlannerConfig,
		provideWeatherClient,
		providePool,
		provideAuthRepository,
		provideProfileRepository,
		provideSessionStore,
		providePlannerService,
		flow.New,
		auth.NewService,
		weather.NewService,
		wire.Bind(new(weather.Client), new(*openmeteo.Client)),
		wire.Bind(new(auth.SessionNotifier), new(*flow.Flow)),
		wire.Bind(new(httpiface.ResultsGate), new(*flow.Flow)),
		httpiface.NewHandler,
		httpiface.NewAuthHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
