package middleware

import (
	"errors"

	"gposync/internal/gpodder"

	"github.com/gin-gonic/gin"
)

const RouteKey = "gpodder_route"

// ParseRoute resolves the request path into a gpodder route. Unknown
// resources are 404, unsupported output formats 501.
func ParseRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		route, err := gpodder.ParseRoute(c.Request.Method, c.Request.URL.Path)
		if errors.Is(err, gpodder.ErrNoRoute) {
			AbortWithError(c, gpodder.NotFound("Not found"))
			return
		}
		// the section is known even when the format is not
		c.Set(RouteKey, route)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func CurrentRoute(c *gin.Context) (gpodder.Route, bool) {
	v, ok := c.Get(RouteKey)
	if !ok {
		return gpodder.Route{}, false
	}
	route, ok := v.(gpodder.Route)
	return route, ok
}
