package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platefinder/api/internal/auth"
	"github.com/platefinder/api/internal/config"
	"github.com/platefinder/api/internal/handler"
	middlewarepkg "github.com/platefinder/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserAdminHandler
	Recommend *handler.RecommendHandler
	Prompt    *handler.PromptRecommendHandler
	Queries   *handler.QueryAuditHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	limiter := middlewarepkg.RecommendRateLimiter(cfg.RateLimitRecommend)
	secured.POST("/recommendations", handlers.Recommend.Recommend, limiter)
	if handlers.Prompt != nil {
		secured.POST("/recommendations/prompt", handlers.Prompt.Recommend, limiter)
	}

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
	if handlers.Queries != nil {
		admin.GET("/queries", handlers.Queries.List)
	}
}
