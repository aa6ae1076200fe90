package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio-backend/internal/shared/middleware"
	"devfolio-backend/internal/shared/response"
	"devfolio-backend/pkg/container"
)

// SetupRouter wires middleware and all route groups.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "redis unreachable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	auth := middleware.AuthMiddleware(c.JWTManager)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", c.AuthHandler.Signup)
			authGroup.POST("/signin", c.AuthHandler.Signin)
			authGroup.POST("/refresh", c.AuthHandler.Refresh)
			authGroup.POST("/verify-email", auth, c.AuthHandler.VerifyEmail)
			authGroup.POST("/resend-verification", auth, c.AuthHandler.ResendVerification)
			authGroup.POST("/logout", auth, c.AuthHandler.Logout)
		}

		users := v1.Group("/users")
		{
			users.GET("/developers", c.UserHandler.ListDevelopers)

			me := users.Group("/me", auth)
			{
				me.GET("", c.UserHandler.GetMe)
				me.PATCH("", c.UserHandler.UpdateMe)
				me.PATCH("/avatar", c.UserHandler.UploadAvatar)
				me.POST("/send-work-email-code", c.UserHandler.SendWorkEmailCode)
				me.POST("/verify-work-email", c.UserHandler.VerifyWorkEmail)
			}

			users.GET("/:username", c.UserHandler.GetPublicProfile)
		}

		v1.GET("/skills", c.SkillHandler.List)

		projects := v1.Group("/projects")
		{
			projects.GET("/public/:username/:slug", c.ProjectHandler.GetPublic)

			owned := projects.Group("", auth)
			{
				owned.POST("", c.ProjectHandler.Create)
				owned.GET("", c.ProjectHandler.List)
				owned.GET("/:id", c.ProjectHandler.Get)
				owned.PATCH("/:id", c.ProjectHandler.Update)
				owned.DELETE("/:id", c.ProjectHandler.Delete)
				owned.PATCH("/:id/publish", c.ProjectHandler.Publish)
				owned.PATCH("/:id/unpublish", c.ProjectHandler.Unpublish)
				owned.POST("/:id/images", c.ProjectHandler.AddImage)
				owned.DELETE("/:id/images/:imageId", c.ProjectHandler.RemoveImage)
			}
		}

		saved := v1.Group("/saved-developers", auth)
		{
			saved.GET("", c.SavedDevHandler.List)
			saved.POST("/:developerId", c.SavedDevHandler.Save)
			saved.DELETE("/:developerId", c.SavedDevHandler.Unsave)
			saved.GET("/:developerId/status", c.SavedDevHandler.Status)
		}
	}

	return router
}
