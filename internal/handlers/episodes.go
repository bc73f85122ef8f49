package handlers

import (
	"errors"
	"io"
	"net/http"

	"gposync/internal/gpodder"
	"gposync/internal/services"

	"github.com/gin-gonic/gin"
)

type EpisodeHandler struct {
	episodes *services.EpisodeService
}

func NewEpisodeHandler(episodes *services.EpisodeService) *EpisodeHandler {
	return &EpisodeHandler{episodes: episodes}
}

func (h *EpisodeHandler) Handle(c *gin.Context, _ gpodder.Route) {
	switch c.Request.Method {
	case http.MethodGet:
		h.List(c)
	case http.MethodPost:
		h.Upload(c)
	default:
		respondError(c, gpodder.MethodNotAllowed("Method not allowed"))
	}
}

// List serves GET api/2/episodes/{user}.json?since=N[&podcast=URL].
func (h *EpisodeHandler) List(c *gin.Context) {
	user := currentUser(c)
	changes, err := h.episodes.Since(c.Request.Context(), user.ID, sinceParam(c), c.Query("podcast"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, changes)
}

// Upload stores a JSON array of episode actions.
func (h *EpisodeHandler) Upload(c *gin.Context) {
	var actions []map[string]any
	if err := decodeJSON(c, &actions); err != nil {
		if errors.Is(err, io.EOF) {
			err = gpodder.BadRequest("Expected a list of episode actions")
		}
		respondError(c, err)
		return
	}

	user := currentUser(c)
	ts, err := h.episodes.Ingest(c.Request.Context(), user.ID, actions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updateResponse{Timestamp: ts, UpdateURLs: [][2]string{}})
}
