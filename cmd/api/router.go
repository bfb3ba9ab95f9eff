package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"beetlevault-backend/internal/shared/middleware"
	"beetlevault-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupBeetleRoutes(v1, c)
		setupPublicRoutes(v1, c)
		setupUploadRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	requireSession := middleware.SessionAuth(c.Tokens, c.UserRepository)

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.UserHandler.Signup)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/logout", c.UserHandler.Logout)
		auth.GET("/me", requireSession, c.UserHandler.Me)
	}
}

func setupBeetleRoutes(v1 *gin.RouterGroup, c *container.Container) {
	beetles := v1.Group("/beetles")
	beetles.Use(middleware.SessionAuth(c.Tokens, c.UserRepository))
	{
		beetles.POST("", c.BeetleHandler.Create)
		beetles.GET("", c.BeetleHandler.List)
		beetles.GET("/:id", c.BeetleHandler.Get)
		beetles.PATCH("/:id", c.BeetleHandler.Update)
		beetles.DELETE("/:id", c.BeetleHandler.Delete)
	}
}

// Public catalog routes need no session
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	public := v1.Group("/public/beetles")
	{
		public.GET("", c.PublicHandler.List)
		public.GET("/:id", c.PublicHandler.Get)
	}
}

func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/upload", middleware.SessionAuth(c.Tokens, c.UserRepository), c.UploadHandler.Upload)
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := gin.H{}

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(c.Request.Context()); err != nil {
			dbStatus = "disconnected"
		}
		services["database"] = dbStatus

		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = "disconnected"
		}
		services["cache"] = cacheStatus

		status := 200
		overall := "ok"
		if dbStatus != "ok" {
			status = 503
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":    overall,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}
