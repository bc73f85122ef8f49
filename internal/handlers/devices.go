package handlers

import (
	"errors"
	"io"
	"net/http"

	"gposync/internal/gpodder"
	"gposync/internal/services"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	devices *services.DeviceService
}

func NewDeviceHandler(devices *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{devices: devices}
}

func (h *DeviceHandler) Handle(c *gin.Context, route gpodder.Route) {
	switch c.Request.Method {
	case http.MethodGet:
		h.List(c)
	case http.MethodPost:
		h.Update(c, route)
	default:
		respondError(c, gpodder.MethodNotAllowed("Method not allowed"))
	}
}

func (h *DeviceHandler) List(c *gin.Context) {
	user := currentUser(c)
	devices, err := h.devices.List(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

// Update serves POST api/2/devices/{user}/{deviceid}.json. The body is merged
// into the stored device data; an empty body only registers the device.
func (h *DeviceHandler) Update(c *gin.Context, route gpodder.Route) {
	segments := route.Segments()
	if len(segments) < 2 {
		respondError(c, gpodder.BadRequest("Invalid device ID"))
		return
	}

	patch := map[string]any{}
	if err := decodeJSON(c, &patch); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, err)
		return
	}

	user := currentUser(c)
	if err := h.devices.Update(c.Request.Context(), user.ID, segments[1], patch); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
