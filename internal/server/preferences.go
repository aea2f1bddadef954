package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vrajesh-Sharma/Blog-Agent/internal/session"
	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

// PreferencesHandler reads and updates the process-wide default preferences
// applied to every new generation.
type PreferencesHandler struct {
	Defaults *session.Preferences
}

func (h *PreferencesHandler) Register(g *echo.Group) {
	g.GET("/preferences", h.get)
	g.POST("/preferences", h.update)
}

func (h *PreferencesHandler) get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Defaults.Get())
}

func (h *PreferencesHandler) update(c echo.Context) error {
	var updates models.Preferences
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, h.Defaults.Merge(updates))
}
