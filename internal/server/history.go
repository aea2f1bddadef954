package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Vrajesh-Sharma/Blog-Agent/internal/archive"
	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

// HistoryHandler serves previously generated blogs from the archive.
type HistoryHandler struct {
	Archive archive.Archive
}

func (h *HistoryHandler) Register(g *echo.Group) {
	g.GET("/history", h.list)
}

func (h *HistoryHandler) list(c echo.Context) error {
	if h.Archive == nil {
		// no archive backend configured; history is simply empty
		return c.JSON(http.StatusOK, []models.BlogSummary{})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	blogs, err := h.Archive.ListBlogs(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list blogs")
	}
	return c.JSON(http.StatusOK, blogs)
}
