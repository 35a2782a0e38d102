package httptransport

import (
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/task-manager-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-manager-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
	Task *handler.TaskHandler
}

func NewRouter(logger *slog.Logger, h Handlers, resolver middleware.IdentityResolver) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(resolver, logger)

	r.GET("/", handler.Root)
	r.GET("/html", handler.RootHTML)

	auth := r.Group("/auth")
	auth.POST("/token", h.Auth.Login)
	auth.POST("/refresh_token", authMW, h.Auth.Refresh)

	// Collection routes answer with and without the trailing slash.
	users := r.Group("/users")
	for _, root := range []string{"", "/"} {
		users.POST(root, h.User.Create)
		users.GET(root, h.User.List)
	}
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", authMW, h.User.Update)
	users.DELETE("/:id", authMW, h.User.Delete)

	tasks := r.Group("/tasks", authMW)
	for _, root := range []string{"", "/"} {
		tasks.POST(root, h.Task.Create)
		tasks.GET(root, h.Task.List)
	}
	tasks.PATCH("/:id", h.Task.Update)
	tasks.DELETE("/:id", h.Task.Delete)

	return r, nil
}
