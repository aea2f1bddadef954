package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vrajesh-Sharma/Blog-Agent/internal/pipeline"
	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

// GenerateHandler streams blog generation progress as one JSON object per
// line over a text/event-stream response.
type GenerateHandler struct {
	Coord  *pipeline.Coordinator
	Logger *log.Logger
}

func (h *GenerateHandler) Register(g *echo.Group) {
	g.POST("/generate-blog", h.generate)
}

type generateRequest struct {
	Topic       string             `json:"topic"`
	UserID      string             `json:"user_id"`
	Preferences models.Preferences `json:"preferences"`
}

func (h *GenerateHandler) generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Topic == "" {
		req.Topic = "AI Agents"
	}
	h.Logger.Printf("blog requested for topic: %s", req.Topic)

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(res)
	emit := func(ev pipeline.Event) {
		// a dropped client must not abort the run, so write errors are
		// logged and swallowed
		if err := enc.Encode(ev); err != nil {
			h.Logger.Printf("stream write failed: %v", err)
			return
		}
		res.Flush()
	}

	// detached from the request context: generation finishes and the session
	// record stays queryable even if the client disconnects mid-stream
	h.Coord.Run(context.Background(), req.UserID, req.Topic, req.Preferences, emit)
	return nil
}
