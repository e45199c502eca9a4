package routes

import (
	"net/http"

	"moviedetectives/handlers"
	"moviedetectives/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	movieHandler *handlers.MovieHandler,
	quizHandler *handlers.QuizHandler,
	mediaHandler *handlers.MediaHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	api.Use(middleware.OptionalAuth(jwtSecret))
	{
		movies := api.Group("/movies")
		{
			movies.GET("", movieHandler.GetMovies)
			movies.GET("/random", movieHandler.GetRandomMovie)
		}

		quiz := api.Group("/quiz")
		{
			quiz.POST("", quizHandler.StartQuiz)
			quiz.POST("/:id/answer", quizHandler.FinishQuiz)
		}

		api.GET("/sessions", quizHandler.GetSessions)
		api.GET("/limit", quizHandler.GetLimit)
		api.GET("/stats", quizHandler.GetStats)
		api.GET("/stats/me", quizHandler.GetUserStats)
	}

	// Generated media
	router.GET("/audio/:filename", mediaHandler.GetAudio)
	router.GET("/images/:filename", mediaHandler.GetImage)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
