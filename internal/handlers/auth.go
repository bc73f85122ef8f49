package handlers

import (
	"errors"
	"net/http"

	"gposync/internal/gpodder"
	"gposync/internal/middleware"
	"gposync/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Handle serves api/2/auth/{user}/{login,logout}.
func (h *AuthHandler) Handle(c *gin.Context, route gpodder.Route) {
	segments := route.Segments()
	action := ""
	if len(segments) > 0 {
		action = segments[len(segments)-1]
	}

	switch action {
	case "login":
		h.Login(c)
	case "logout":
		h.Logout(c)
	default:
		respondError(c, gpodder.NotFound("Unknown auth action"))
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		respondError(c, gpodder.MethodNotAllowed("Login requires POST"))
		return
	}

	name, password, ok := c.Request.BasicAuth()
	if !ok {
		respondError(c, gpodder.Unauthorized("No username or password provided"))
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), name, password)
	if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidPassword) {
		respondError(c, gpodder.Unauthorized("Invalid username or password"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetUser(c, user)
	if err := middleware.Login(c, user); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Logout always succeeds, with or without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
