package web

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mama-doner/services"
)

// New builds the echo server with all routes registered. CORS is wide
// open so the mini app can call the API from the Telegram web view.
func New(lc *services.Lifecycle, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h := &Handler{Lifecycle: lc, Log: log}
	h.RegisterRoutes(e)
	return e
}
