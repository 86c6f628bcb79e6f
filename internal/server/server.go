// Package server exposes the chat pipeline over HTTP.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New builds the echo instance with routes and middleware. Recover
// re-panics http.ErrAbortHandler, which Chat relies on to abort a
// failed stream.
func New(h *Handler, allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	if len(allowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: allowOrigins}))
	}

	e.GET("/health", h.Health)
	e.POST("/api/chat", h.Chat)
	e.POST("/api/contact", h.Contact)
	return e
}
