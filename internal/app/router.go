package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"gantabya/internal/auth"
	"gantabya/internal/handler"
	"gantabya/internal/middleware"
	"gantabya/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler      *handler.UserHandler
	CaptainHandler   *handler.CaptainHandler
	Authenticator    middleware.Authenticator
	IdempotencyStore redis.IdempotencyStoreInterface
	NewRelicApp      *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
// Account routes are served both at the root, where the web client calls
// them, and under /v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerAccountRoutes(&router.RouterGroup, deps)
	registerAccountRoutes(router.Group("/v1"), deps)

	return router
}

func registerAccountRoutes(rg *gin.RouterGroup, deps RouterDeps) {
	idempotent := middleware.IdempotencyMiddleware(deps.IdempotencyStore)

	users := rg.Group("/users")
	{
		users.POST("/register", idempotent, deps.UserHandler.Register)
		users.POST("/login", deps.UserHandler.Login)

		authed := users.Group("", middleware.RequireAuth(deps.Authenticator, auth.RoleUser))
		authed.GET("/profile", deps.UserHandler.Profile)
		authed.GET("/logout", deps.UserHandler.Logout)
	}

	captains := rg.Group("/captains")
	{
		captains.POST("/register", idempotent, deps.CaptainHandler.Register)
		captains.POST("/login", deps.CaptainHandler.Login)

		authed := captains.Group("", middleware.RequireAuth(deps.Authenticator, auth.RoleCaptain))
		authed.GET("/profile", deps.CaptainHandler.Profile)
		authed.GET("/logout", deps.CaptainHandler.Logout)
	}
}
