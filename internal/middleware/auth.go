package middleware

import (
	"errors"

	"gposync/internal/gpodder"
	"gposync/internal/models"
	"gposync/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// CheckUserKey holds the authenticated *models.User in the gin context.
	CheckUserKey = "user"

	SessionCookieName = "sessionid"
	SessionUserKey    = "user_id"
)

// RequireAuth resolves the session user for every route except auth. A user
// bound earlier in the chain (NextCloud Basic auth) is accepted as is.
func RequireAuth(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if route, ok := CurrentRoute(c); ok && route.Section == gpodder.SectionAuth {
			c.Next()
			return
		}
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}

		if _, err := c.Cookie(SessionCookieName); err != nil {
			AbortWithError(c, gpodder.Unauthorized("Session cookie is required"))
			return
		}

		session := sessions.Default(c)
		userID, ok := session.Get(SessionUserKey).(uint)
		if !ok {
			AbortWithError(c, gpodder.BadRequest("Invalid session"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if errors.Is(err, services.ErrUserNotFound) {
			AbortWithError(c, gpodder.BadRequest("User does not exist"))
			return
		}
		if err != nil {
			AbortWithError(c, err)
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

func SetUser(c *gin.Context, user *models.User) {
	c.Set(CheckUserKey, user)
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CheckUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// Login binds the session to user. The caller's response carries the cookie.
func Login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(SessionUserKey, user.ID)
	return session.Save()
}

// Logout deletes the stored session and expires its cookie.
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
