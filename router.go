package main

import (
	"github.com/gin-gonic/gin"

	"portfolio/api/config"
	"portfolio/api/handlers"
	"portfolio/api/middleware"
)

// setupRouter wires every endpoint group. The auth group is only mounted when
// the auth revision is enabled; the reference deployment runs without it.
func setupRouter(
	cfg *config.Config,
	analytics *handlers.AnalyticsHandlers,
	contact *handlers.ContactHandlers,
	github *handlers.GitHubHandlers,
	auth *handlers.AuthHandlers,
) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health)
	r.GET("/ping", handlers.Ping)

	api := r.Group("/api")
	{
		analyticsGroup := api.Group("/analytics")
		{
			analyticsGroup.POST("/track-visitor", analytics.TrackVisitor)
			analyticsGroup.GET("/stats", analytics.GetStats)
			analyticsGroup.POST("/page-view", analytics.TrackPageView)
			analyticsGroup.GET("/visitors", analytics.GetVisitors)
		}

		contactGroup := api.Group("/contact")
		{
			contactGroup.POST("/send-message", contact.SendMessage)
			contactGroup.GET("/messages", contact.GetMessages)
			contactGroup.PUT("/messages/:id/mark-read", contact.MarkMessageRead)
			contactGroup.GET("/stats", contact.GetStats)
		}

		githubGroup := api.Group("/github")
		{
			githubGroup.GET("/profile", github.GetProfile)
			githubGroup.GET("/repositories", github.GetRepositories)
			githubGroup.GET("/stats", github.GetStats)
			githubGroup.GET("/languages", github.GetLanguages)
			githubGroup.GET("/contributions", github.GetContributions)
		}

		if auth != nil {
			authGroup := api.Group("/auth")
			{
				authGroup.POST("/signup", auth.Signup)
				authGroup.POST("/login", auth.Login)
				authGroup.POST("/logout", auth.Logout)
			}
		}
	}

	return r
}
