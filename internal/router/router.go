package router

import (
	"askstack/internal/handlers"
	"askstack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	questionHandler := handlers.NewQuestionHandler()
	answerHandler := handlers.NewAnswerHandler()
	voteHandler := handlers.NewVoteHandler()
	tagHandler := handlers.NewTagHandler()
	userHandler := handlers.NewUserHandler()
	notificationHandler := handlers.NewNotificationHandler()

	api := r.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	api.GET("/questions", questionHandler.List)
	api.GET("/questions/:id", questionHandler.Detail)
	api.GET("/questions/:id/answers", questionHandler.Answers)

	api.GET("/tags", tagHandler.Search)
	api.GET("/tags/popular", tagHandler.Popular)

	api.GET("/users/top", userHandler.Top)
	api.GET("/users/:id", userHandler.Profile)

	// Protected routes
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)
		authorized.PUT("/me", userHandler.UpdateProfile)
		authorized.GET("/me/reputation", userHandler.ReputationLog)

		authorized.POST("/questions", questionHandler.Create)
		authorized.PUT("/questions/:id", questionHandler.Update)
		authorized.DELETE("/questions/:id", questionHandler.Delete)

		authorized.POST("/answers", answerHandler.Create)
		authorized.PUT("/answers/:id", answerHandler.Update)
		authorized.DELETE("/answers/:id", answerHandler.Delete)
		authorized.POST("/answers/:id/accept", answerHandler.Accept)

		authorized.POST("/vote/:type/:id", voteHandler.Vote)
		authorized.GET("/votes", voteHandler.Mine)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
	}
}
