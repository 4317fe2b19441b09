package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"samplemarine-backend/internal/shared/middleware"
	"samplemarine-backend/internal/shared/response"
	"samplemarine-backend/pkg/container"
)

// SetupRouter mounts the full API surface. Public storefront routes first,
// then auth, then the admin group behind JWT + role middleware.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	// Larger multipart parts spill to temp files past this bound.
	router.MaxMultipartMemory = 32 << 20

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck(c))

		// Public storefront
		v1.GET("/categories", c.CategoryHandler.List)
		v1.GET("/products", c.ProductHandler.List)
		v1.GET("/products/:id", c.ProductHandler.GetByID)
		v1.GET("/blogs", c.BlogHandler.List)
		v1.POST("/contact", c.ContactHandler.Submit)

		// Auth
		auth := v1.Group("/auth")
		{
			auth.POST("/login", c.UserHandler.Login)
			auth.POST("/logout", c.UserHandler.Logout)
		}

		// Admin
		admin := v1.Group("")
		admin.Use(middleware.Auth(c.JWTManager), middleware.RequireAdmin())
		{
			admin.POST("/products", c.ProductHandler.Create)
			admin.DELETE("/products/:id", c.ProductHandler.Delete)
			admin.GET("/products/dashboard/stats", c.ProductHandler.DashboardStats)
			admin.GET("/products/export", c.ProductHandler.Export)
			admin.POST("/blogs", c.BlogHandler.Create)
			admin.GET("/contact", c.ContactHandler.List)
		}
	}

	return router
}

func healthCheck(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{"database": "ok", "cache": "ok"}
		healthy := true

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
			healthy = false
		}

		if !healthy {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"version": c.Config.App.Version,
				"checks":  checks,
			})
			return
		}
		response.Success(ctx, http.StatusOK, "", gin.H{
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
