package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gposync/internal/gpodder"
	"gposync/internal/middleware"
	"gposync/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// nextcloudTargets maps gpoddersync app endpoints onto native API paths.
var nextcloudTargets = map[string]string{
	"subscriptions":              "/api/2/subscriptions/current/default.json",
	"subscription_change/create": "/api/2/subscriptions/current/default.json",
	"episode_action":             "/api/2/episodes/current.json",
	"episode_action/create":      "/api/2/episodes/current.json",
}

// NextCloudHandler lets NextCloud gpoddersync clients use the server: it runs
// the login flow v2 handshake and maps the app's endpoints onto the gpodder API.
type NextCloudHandler struct {
	users    *services.UserService
	logins   *services.LoginService
	baseURL  string
	loginURL string
}

func NewNextCloudHandler(svc *services.Services, baseURL, loginURL string) *NextCloudHandler {
	return &NextCloudHandler{
		users:    svc.Users,
		logins:   svc.Logins,
		baseURL:  baseURL,
		loginURL: loginURL,
	}
}

type loginStartResponse struct {
	Poll  loginPoll `json:"poll"`
	Login string    `json:"login"`
}

type loginPoll struct {
	Token    string `json:"token"`
	Endpoint string `json:"endpoint"`
}

type loginPollResponse struct {
	Server      string `json:"server"`
	LoginName   string `json:"loginName"`
	AppPassword string `json:"appPassword"`
}

// StartLogin serves POST index.php/login/v2.
func (h *NextCloudHandler) StartLogin(c *gin.Context) {
	login, err := h.logins.Start(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	base := BaseURL(c, h.baseURL)
	c.JSON(http.StatusOK, loginStartResponse{
		Poll: loginPoll{
			Token:    login.Token,
			Endpoint: base + "index.php/login/v2/poll",
		},
		Login: h.loginPage(base) + "?token=" + url.QueryEscape(login.Token),
	})
}

func (h *NextCloudHandler) loginPage(base string) string {
	if h.loginURL != "" {
		return h.loginURL
	}
	return base + "login"
}

// PollLogin serves POST index.php/login/v2/poll. The token comes as a form
// field or in a JSON body.
func (h *NextCloudHandler) PollLogin(c *gin.Context) {
	token := c.PostForm("token")
	if token == "" && c.ContentType() == binding.MIMEJSON {
		var body struct {
			Token string `json:"token"`
		}
		if err := decodeJSON(c, &body); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, err)
			return
		}
		token = body.Token
	}

	login, err := h.logins.Poll(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetUser(c, login.User)
	if err := middleware.Login(c, login.User); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginPollResponse{
		Server:      BaseURL(c, h.baseURL),
		LoginName:   login.User.Name,
		AppPassword: login.AppPassword,
	})
}

// Rewrite authenticates index.php/apps/gpoddersync/* with the app password
// and points the request at the matching gpodder route. It must run before
// ParseRoute.
func (h *NextCloudHandler) Rewrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		name, password, ok := c.Request.BasicAuth()
		if !ok || name == "" {
			respondError(c, gpodder.Unauthorized("No username or password provided"))
			return
		}

		user, err := h.users.AuthenticateAppPassword(c.Request.Context(), name, password)
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			respondError(c, gpodder.Unauthorized("Invalid username"))
			return
		case errors.Is(err, services.ErrInvalidPassword):
			respondError(c, gpodder.Unauthorized("Invalid username/password"))
			return
		case err != nil:
			respondError(c, err)
			return
		}

		middleware.SetUser(c, user)
		if id, ok := sessions.Default(c).Get(middleware.SessionUserKey).(uint); !ok || id != user.ID {
			if err := middleware.Login(c, user); err != nil {
				respondError(c, err)
				return
			}
		}

		endpoint := strings.Trim(c.Param("path"), "/")
		target, ok := nextcloudTargets[endpoint]
		if !ok {
			respondError(c, gpodder.NotFound("Undefined Nextcloud API endpoint"))
			return
		}
		c.Request.URL.Path = target
		c.Request.URL.RawPath = ""
		c.Next()
	}
}
