package server

import (
	"net/http"

	"robostore/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はルート登録済みのechoを返す
func New(cfg config.Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	RegisterRoutes(e, cfg, deps)

	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
