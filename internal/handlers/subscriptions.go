package handlers

import (
	"errors"
	"io"
	"net/http"

	"gposync/internal/gpodder"
	"gposync/internal/services"
	"gposync/internal/utils"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

type subscriptionChangeRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

type updateResponse struct {
	Timestamp  int64       `json:"timestamp"`
	UpdateURLs [][2]string `json:"update_urls"`
}

func (h *SubscriptionHandler) Handle(c *gin.Context, route gpodder.Route) {
	if route.Method == http.MethodGet && route.V2 && !validDeviceSegment(route) {
		respondError(c, gpodder.BadRequest("Invalid device ID"))
		return
	}

	switch {
	case route.Method == http.MethodGet && route.V2 && route.Format == gpodder.FormatJSON:
		h.Changes(c, route)
	case route.Method == http.MethodGet:
		h.List(c, route)
	case route.Method == http.MethodPut:
		h.Replace(c, route)
	case route.Method == http.MethodPost && route.V2:
		h.Apply(c)
	default:
		respondError(c, gpodder.NotImplemented("Not implemented"))
	}
}

// Changes serves the v2 diff: GET api/2/subscriptions/{user}/{device}.json?since=N
func (h *SubscriptionHandler) Changes(c *gin.Context, route gpodder.Route) {
	user := currentUser(c)
	changes, err := h.subscriptions.Changes(c.Request.Context(), user.ID, sinceParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, changes)
}

func validDeviceSegment(route gpodder.Route) bool {
	segments := route.Segments()
	return len(segments) >= 2 && utils.ValidDeviceID(segments[1])
}

// List returns the current subscriptions as JSON, text or OPML.
func (h *SubscriptionHandler) List(c *gin.Context, route gpodder.Route) {
	user := currentUser(c)
	urls, err := h.subscriptions.List(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	renderURLs(c, route.Format, user.Name+" subscriptions", urls)
}

// Replace stores a whole list sent as a JSON array or, for .txt, one URL per line.
func (h *SubscriptionHandler) Replace(c *gin.Context, route gpodder.Route) {
	var urls []string
	var err error
	if route.Format == gpodder.FormatTXT {
		urls, err = readLines(c)
	} else {
		err = decodeJSON(c, &urls)
		if errors.Is(err, io.EOF) {
			err = gpodder.BadRequest("Expected a list of URLs")
		}
	}
	if err != nil {
		respondError(c, err)
		return
	}

	user := currentUser(c)
	if err := h.subscriptions.Replace(c.Request.Context(), user.ID, urls); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Apply serves POST api/2/subscriptions/{user}/{device}.json with {add, remove}.
func (h *SubscriptionHandler) Apply(c *gin.Context) {
	var req subscriptionChangeRequest
	if err := decodeJSON(c, &req); err != nil {
		if errors.Is(err, io.EOF) {
			err = gpodder.BadRequest("Expected an object with add and remove lists")
		}
		respondError(c, err)
		return
	}

	user := currentUser(c)
	ts, err := h.subscriptions.Apply(c.Request.Context(), user.ID, req.Add, req.Remove)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updateResponse{Timestamp: ts, UpdateURLs: [][2]string{}})
}
