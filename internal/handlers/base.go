package handlers

import (
	"io"
	"net/http"
	"strings"

	"gposync/internal/gpodder"
	"gposync/internal/middleware"
	"gposync/internal/models"
	"gposync/internal/services"
	"gposync/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Error helper
func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// currentUser is set by RequireAuth for every non-auth route.
func currentUser(c *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}

// decodeJSON reads the whole body into v. An empty body is reported as
// io.EOF so callers can pick a default.
func decodeJSON(c *gin.Context, v any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return io.EOF
	}
	if err := json.Unmarshal(body, v); err != nil {
		return gpodder.BadRequest("Invalid JSON body: %s", err.Error())
	}
	return nil
}

// readLines splits a text body into non-empty trimmed lines.
func readLines(c *gin.Context) ([]string, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(body), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func sinceParam(c *gin.Context) int64 {
	return utils.StringToInt64(c.Query("since"))
}

// renderURLs writes a plain URL list in the route's format.
func renderURLs(c *gin.Context, format gpodder.Format, title string, urls []string) {
	switch format {
	case gpodder.FormatTXT:
		c.String(http.StatusOK, strings.Join(urls, "\n"))
	case gpodder.FormatOPML:
		out, err := services.RenderOPML(title, urls)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/x-opml; charset=utf-8", out)
	default:
		c.JSON(http.StatusOK, urls)
	}
}

// BaseURL returns the configured public root, or one derived from the
// request. It always ends with a slash.
func BaseURL(c *gin.Context, configured string) string {
	if configured != "" {
		if !strings.HasSuffix(configured, "/") {
			configured += "/"
		}
		return configured
	}

	scheme := "http"
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	} else if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/"
}
