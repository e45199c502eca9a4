package handlers

import (
	"errors"
	"net/http"

	"moviedetectives/models"
	"moviedetectives/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
	limiter     *services.RateLimiter
	stats       *services.StatsService
}

func NewQuizHandler(quizService *services.QuizService, limiter *services.RateLimiter, stats *services.StatsService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		limiter:     limiter,
		stats:       stats,
	}
}

// quizStatus maps the error taxonomy to HTTP status codes 1:1.
func quizStatus(err error) int {
	var configErr *services.ConfigurationError
	var malformedErr *services.MalformedOutputError
	var generationErr *services.GenerationError

	switch {
	case errors.Is(err, services.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, services.ErrNoMatch), errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidAnswer), errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.As(err, &malformedErr), errors.As(err, &generationErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req models.StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.quizService.StartQuiz(c.Request.Context(), &req)
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *QuizHandler) FinishQuiz(c *gin.Context) {
	quizID := c.Param("id")

	var req models.FinishQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.quizService.FinishQuiz(c.Request.Context(), quizID, req.Answer, c.GetString("user_id"))
	if err != nil {
		c.JSON(quizStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *QuizHandler) GetSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.quizService.Sessions())
}

func (h *QuizHandler) GetLimit(c *gin.Context) {
	c.JSON(http.StatusOK, h.limiter.Status())
}

func (h *QuizHandler) GetStats(c *gin.Context) {
	games, points, err := h.stats.Totals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.StatsResponse{
		QuizCountTotal: games,
		PointsTotal:    points,
		Limit:          h.limiter.Status(),
	})
}

// GetUserStats returns the per-quiz-type rows for the authenticated user.
func (h *QuizHandler) GetUserStats(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	rows, err := h.stats.UserStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}
