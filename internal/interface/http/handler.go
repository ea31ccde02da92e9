package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-station/internal/domain/weather"
)

// StorePinger reports whether the backing store is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// WeatherHandler wires the HTTP transport to the weather service.
type WeatherHandler struct {
	svc    weather.Service
	store  StorePinger
	logger *slog.Logger
}

// NewWeatherHandler constructs the dashboard API handler.
func NewWeatherHandler(svc weather.Service, store StorePinger, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{
		svc:    svc,
		store:  store,
		logger: logger.With("component", "http.handler"),
	}
}

// Past returns hourly samples with rainfall deltas and apparent temperatures.
func (h *WeatherHandler) Past(c *gin.Context) {
	rows, err := h.svc.Past(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Today returns the current conditions card.
func (h *WeatherHandler) Today(c *gin.Context) {
	summary, err := h.svc.Today(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Monthly returns per-month statistics.
func (h *WeatherHandler) Monthly(c *gin.Context) {
	rows, err := h.svc.Monthly(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Health pings the store.
func (h *WeatherHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		abortWithError(c, NewHTTPError(http.StatusServiceUnavailable, "store_unavailable", "store unreachable", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
