package handlers

import (
	"net/http"

	"gposync/internal/gpodder"
	"gposync/internal/middleware"
	"gposync/internal/services"

	"github.com/gin-gonic/gin"
)

// APIHandler serves every gpodder API route once ParseRoute and RequireAuth
// have run, picking the resource handler by section.
type APIHandler struct {
	auth          *AuthHandler
	subscriptions *SubscriptionHandler
	episodes      *EpisodeHandler
	devices       *DeviceHandler
}

func NewAPIHandler(svc *services.Services) *APIHandler {
	return &APIHandler{
		auth:          NewAuthHandler(svc.Users),
		subscriptions: NewSubscriptionHandler(svc.Subscriptions),
		episodes:      NewEpisodeHandler(svc.Episodes),
		devices:       NewDeviceHandler(svc.Devices),
	}
}

func (h *APIHandler) Dispatch(c *gin.Context) {
	route, ok := middleware.CurrentRoute(c)
	if !ok {
		respondError(c, gpodder.NotFound("Not found"))
		return
	}

	if route.Format == gpodder.FormatOPML &&
		(route.Section != gpodder.SectionSubscriptions || route.Method != http.MethodGet) {
		respondError(c, gpodder.NotImplemented("OPML is only available for subscription lists"))
		return
	}

	switch route.Section {
	case gpodder.SectionAuth:
		h.auth.Handle(c, route)
	case gpodder.SectionSubscriptions:
		h.subscriptions.Handle(c, route)
	case gpodder.SectionEpisodes:
		h.episodes.Handle(c, route)
	case gpodder.SectionDevices:
		h.devices.Handle(c, route)
	case gpodder.SectionTag, gpodder.SectionTags, gpodder.SectionData,
		gpodder.SectionToplist, gpodder.SectionSuggestions, gpodder.SectionFavorites:
		c.JSON(http.StatusOK, []any{})
	case gpodder.SectionSettings, gpodder.SectionLists, gpodder.SectionSyncDevices:
		respondError(c, gpodder.Unavailable("Not implemented"))
	case gpodder.SectionUpdates:
		respondError(c, gpodder.NotImplemented("Not implemented"))
	default:
		respondError(c, gpodder.NotFound("Not found"))
	}
}
