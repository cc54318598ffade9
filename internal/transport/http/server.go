package http

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appsvc "sharespace/internal/app"
	"sharespace/internal/bootstrap"
	"sharespace/internal/config"
	"sharespace/internal/observability"
	"sharespace/internal/transport/http/handler"
	"sharespace/internal/transport/http/middleware"
)

// Dependencies is everything the HTTP layer needs. Redis and Metrics are
// optional.
type Dependencies struct {
	Config      *config.Config
	Log         *zap.Logger
	AuthService *appsvc.AuthService
	UserService *appsvc.UserService
	Redis       *redisv9.Client
	Metrics     *observability.Metrics
	Checks      map[string]handler.Checker
	StartedAt   time.Time
}

func NewRouter(app *bootstrap.App) *gin.Engine {
	return NewEngine(Dependencies{
		Config:      app.Config,
		Log:         app.Log,
		AuthService: app.AuthService,
		UserService: app.UserService,
		Redis:       app.Redis,
		Metrics:     app.Metrics,
		Checks:      toCheckers(app.HealthChecks()),
		StartedAt:   app.StartedAt,
	})
}

func NewEngine(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(log.Named("http")))
	// metrics sit outside the error handler so they see the final status
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(
		middleware.Recovery(log),
		middleware.ErrorHandler(log),
		cors.New(corsConfig(cfg.Origins())),
	)

	var observer handler.AuthObserver
	if deps.Metrics != nil {
		observer = deps.Metrics
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	healthHandler := handler.NewHealthHandler(cfg.App.Name, cfg.App.Env, deps.StartedAt, deps.Checks)
	authHandler := handler.NewAuthHandler(deps.AuthService, observer)
	userHandler := handler.NewUserHandler(deps.UserService)

	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")

	authLimit := func(resource string) gin.HandlerFunc {
		return middleware.RateLimit(deps.Redis, resource, cfg.Redis.LoginRateLimit, cfg.LoginRateWindow(), log)
	}
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authLimit("signup"), authHandler.Signup)
	authGroup.POST("/register", authLimit("signup"), authHandler.Signup)
	authGroup.POST("/login", authLimit("login"), authHandler.Login)
	authGroup.GET("/verify", authHandler.Verify)

	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthJWT(cfg.Auth.JWTSecret))
	userGroup.GET("/me", userHandler.GetMe)
	userGroup.PUT("/me", userHandler.UpdateMe)

	return router
}

func toCheckers(pings map[string]func(ctx context.Context) error) map[string]handler.Checker {
	checks := make(map[string]handler.Checker, len(pings))
	for name, ping := range pings {
		checks[name] = ping
	}
	return checks
}

// corsConfig allows any origin without credentials when none is configured.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
