//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-station/internal/bootstrap"
	"github.com/yanqian/weather-station/internal/domain/solar"
	"github.com/yanqian/weather-station/internal/domain/weather"
	"github.com/yanqian/weather-station/internal/infra/config"
	"github.com/yanqian/weather-station/internal/infra/influx"
	httpiface "github.com/yanqian/weather-station/internal/interface/http"
	"github.com/yanqian/weather-station/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSolarLookup,
		influx.NewClient,
		weather.NewService,
		wire.Bind(new(weather.Store), new(*influx.Client)),
		wire.Bind(new(weather.SolarCalculator), new(*solar.Lookup)),
		wire.Bind(new(httpiface.StorePinger), new(*influx.Client)),
		httpiface.NewWeatherHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
