//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/cocktail-bac/internal/bootstrap"
	"github.com/yanqian/cocktail-bac/internal/domain/auth"
	"github.com/yanqian/cocktail-bac/internal/domain/bac"
	"github.com/yanqian/cocktail-bac/internal/infra/config"
	httpiface "github.com/yanqian/cocktail-bac/internal/interface/http"
	"github.com/yanqian/cocktail-bac/pkg/logger"
	"github.com/yanqian/cocktail-bac/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewRecorder,
		provideAuthConfig,
		provideBACConfig,
		provideAuthRepository,
		provideSummaryStore,
		auth.NewService,
		bac.NewService,
		wire.Bind(new(bac.ProfileSource), new(auth.Service)),
		wire.Bind(new(bac.Recorder), new(*metrics.Recorder)),
		httpiface.NewHandler,
		httpiface.NewAuthHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
