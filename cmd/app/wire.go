//go:build wireinject
// +build wireinject

package main

import (
	"arwikicats/config"
	"arwikicats/internal/command"
	"arwikicats/internal/cron"
	"arwikicats/internal/database"
	"arwikicats/internal/database/client"
	sqliteRepo "arwikicats/internal/database/sqlite/repository"
	"arwikicats/internal/handler"
	"arwikicats/internal/middleware"
	"arwikicats/internal/router"
	"arwikicats/internal/service"
	"arwikicats/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			newHttpClient,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(wire.Build(
		command.ProviderSet,
		client.NewSqliteClient,
		sqliteRepo.NewQueryRepository,
		service.NewLogQueryService,
		telemetry.NewTrace,
	))
}
