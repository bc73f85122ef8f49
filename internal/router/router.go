package router

import (
	"net/http"
	"time"

	"gposync/internal/gpodder"
	"gposync/internal/handlers"
	"gposync/internal/middleware"
	"gposync/internal/services"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Config struct {
	Services      *services.Services
	DB            *gorm.DB
	SessionSecret string
	SessionMaxAge time.Duration
	SecureCookies bool
	BaseURL       string
	LoginURL      string
	// RateLimiter guards the login endpoints; nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

// New builds the gin engine with all routes.
func New(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	// Setup Sessions; rows live in the "sessions" table so logout revokes them
	store := gormsessions.NewStore(cfg.DB, true, []byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(middleware.SessionCookieName, store))

	RegisterRoutes(r, cfg)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg Config) {
	// Handlers
	apiHandler := handlers.NewAPIHandler(cfg.Services)
	nextcloudHandler := handlers.NewNextCloudHandler(cfg.Services, cfg.BaseURL, cfg.LoginURL)
	healthHandler := handlers.NewHealthHandler(cfg.DB)

	// gpodder API
	api := []gin.HandlerFunc{
		middleware.ParseRoute(),
		middleware.RateLimitSection(cfg.RateLimiter, gpodder.SectionAuth),
		middleware.RequireAuth(cfg.Services.Users),
		apiHandler.Dispatch,
	}
	r.Any("/api/2/*path", api...)
	r.Any("/subscriptions/*path", api...)
	r.Any("/suggestions/*path", api...)
	r.Any("/toplist/*path", api...)

	// NextCloud gpoddersync
	login := r.Group("/index.php/login/v2")
	login.Use(middleware.RateLimit(cfg.RateLimiter))
	{
		login.POST("", nextcloudHandler.StartLogin)
		login.POST("/poll", nextcloudHandler.PollLogin)
	}
	r.Any("/index.php/apps/gpoddersync/*path",
		nextcloudHandler.Rewrite(),
		middleware.ParseRoute(),
		middleware.RequireAuth(cfg.Services.Users),
		apiHandler.Dispatch,
	)

	// Operations
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", healthHandler.Check)

	r.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, gpodder.NotFound("Not found"))
	})
}
