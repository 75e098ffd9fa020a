package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/task-api/internal/requestid"
	"github.com/ErlanBelekov/task-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-api/internal/transport/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
)

type RouterConfig struct {
	Logger      *slog.Logger
	CORSOrigins []string
	AuthGuard   gin.HandlerFunc
	Auth        *handler.AuthHandler
	Tasks       *handler.TaskHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestid.Header},
			ExposeHeaders:    []string{requestid.Header},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		sloggin.NewWithConfig(cfg.Logger, sloggin.Config{
			DefaultLevel:     slog.LevelInfo,
			ClientErrorLevel: slog.LevelWarn,
			ServerErrorLevel: slog.LevelError,
			WithRequestID:    true,
			Filters:          []sloggin.Filter{sloggin.IgnorePath("/favicon.ico")},
		}),
		middleware.Metrics(),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	v1 := r.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", cfg.Auth.Register)
	authGroup.POST("/login", cfg.Auth.Login)
	authGroup.POST("/refresh-token", cfg.Auth.RefreshToken)
	authGroup.POST("/logout", cfg.Auth.Logout)
	authGroup.GET("/session", cfg.AuthGuard, cfg.Auth.Session)

	tasks := v1.Group("/tasks", cfg.AuthGuard)
	tasks.POST("", cfg.Tasks.Create)
	tasks.GET("", cfg.Tasks.List)
	tasks.GET("/:id", cfg.Tasks.Get)
	tasks.PATCH("/:id", cfg.Tasks.Update)
	tasks.DELETE("/:id", cfg.Tasks.Delete)

	return r
}
