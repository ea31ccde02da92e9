package main

import (
	"log/slog"

	"github.com/yanqian/weather-station/internal/domain/solar"
	"github.com/yanqian/weather-station/internal/infra/config"
)

func provideSolarLookup(cfg *config.Config, logger *slog.Logger) (*solar.Lookup, error) {
	loc, err := cfg.Station.Location()
	if err != nil {
		return nil, err
	}
	coords := solar.Coordinates{Latitude: *cfg.Station.Latitude, Longitude: *cfg.Station.Longitude}
	lookup, err := solar.NewLookup(coords, loc)
	if err != nil {
		return nil, err
	}
	logger.Info("station located", "latitude", coords.Latitude, "longitude", coords.Longitude, "timezone", loc.String())
	return lookup, nil
}
