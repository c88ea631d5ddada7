package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func registerRoutes(
	e *echo.Echo,
	cfg config.Config,
	productH *handler.ProductHandler,
	cartH *handler.CartHandler,
	authH *handler.AuthHandler,
) {
	productH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
	authH.RegisterRoutes(e)
}
