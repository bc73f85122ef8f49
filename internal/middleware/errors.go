package middleware

import (
	"errors"
	"net/http"

	"gposync/internal/gpodder"
	"gposync/internal/logging"

	"github.com/gin-gonic/gin"
)

// AbortWithError ends the request with a {code, message} body. Protocol
// errors keep their status; anything else is logged and reported as 500.
func AbortWithError(c *gin.Context, err error) {
	var gerr *gpodder.Error
	if !errors.As(err, &gerr) {
		logging.Error().Err(err).
			Str("request_id", RequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		gerr = gpodder.NewError(http.StatusInternalServerError, "internal server error")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(gerr.Code, gerr)
}
