package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vrajesh-Sharma/Blog-Agent/internal/session"
)

// SessionHandler exposes read access to in-flight and finished sessions.
type SessionHandler struct {
	Sessions *session.Store
}

func (h *SessionHandler) Register(g *echo.Group) {
	g.GET("/session/:id", h.get)
}

func (h *SessionHandler) get(c echo.Context) error {
	rec, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Session not found")
	}
	return c.JSON(http.StatusOK, rec)
}
