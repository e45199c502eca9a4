package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviedetectives/models"
	"moviedetectives/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMetadata struct {
	movie *models.Movie
}

func (s *stubMetadata) GetMovies(ctx context.Context, page int, voteAvgMin, voteCountMin float64) ([]models.MovieSummary, error) {
	return []models.MovieSummary{{ID: s.movie.ID, Title: s.movie.Title}}, nil
}

func (s *stubMetadata) GetMovie(ctx context.Context, movieID int) (*models.Movie, error) {
	return s.movie, nil
}

func (s *stubMetadata) GetRandomMovie(ctx context.Context, pageMin, pageMax int, voteAvgMin, voteCountMin float64) (*models.Movie, error) {
	return s.movie, nil
}

type stubGenerator struct {
	replies []string
}

func (g *stubGenerator) StartChat() *services.Chat {
	return &services.Chat{}
}

func (g *stubGenerator) Send(ctx context.Context, chat *services.Chat, prompt string) (string, error) {
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func (g *stubGenerator) SynthesizeSpeech(ctx context.Context, text string) (string, error) {
	return "/audio/stub.mp3", nil
}

func (g *stubGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "/images/stub.png", nil
}

func newTestRouter(t *testing.T, gen *stubGenerator, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prompts, err := services.NewPromptService()
	require.NoError(t, err)

	limiter := services.NewRateLimiter(limit, nil)
	movie := &models.Movie{ID: 42, Title: "Some Movie", Tagline: "t", Overview: "o", ReleaseDate: "2021-01-01"}
	quizService := services.NewQuizService(&stubMetadata{movie: movie}, gen, prompts, services.NewSessionStore(), limiter, nil)

	handler := NewQuizHandler(quizService, limiter, nil)

	router := gin.New()
	router.POST("/api/quiz", handler.StartQuiz)
	router.POST("/api/quiz/:id/answer", handler.FinishQuiz)
	router.GET("/api/limit", handler.GetLimit)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const questionReply = `{"question": "Where does the family flee to?", "hint1": "h1", "hint2": "h2"}`

func TestStartAndAnswerOverHTTP(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		questionReply,
		`{"points": "3", "answer": "Greenland!"}`,
	}}
	router := newTestRouter(t, gen, 10)

	w := postJSON(router, "/api/quiz", gin.H{"quiz_type": "title-detectives"})
	require.Equal(t, http.StatusOK, w.Code)

	var started models.StartQuizResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	require.NotEmpty(t, started.QuizID)

	w = postJSON(router, "/api/quiz/"+started.QuizID+"/answer", gin.H{"answer": "Greenland"})
	require.Equal(t, http.StatusOK, w.Code)

	var finished models.FinishQuizResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &finished))
	assert.Equal(t, 3, finished.Result.Points)

	// double submission: the session is already consumed
	w = postJSON(router, "/api/quiz/"+started.QuizID+"/answer", gin.H{"answer": "Greenland"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartQuizStatusCodes(t *testing.T) {
	gen := &stubGenerator{replies: []string{questionReply}}
	router := newTestRouter(t, gen, 1)

	// unknown quiz type
	w := postJSON(router, "/api/quiz", gin.H{"quiz_type": "karaoke"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing quiz type fails binding
	w = postJSON(router, "/api/quiz", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// first start passes, second exceeds the daily limit
	w = postJSON(router, "/api/quiz", gin.H{"quiz_type": "title-detectives"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/api/quiz", gin.H{"quiz_type": "title-detectives"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestGetLimitOverHTTP(t *testing.T) {
	router := newTestRouter(t, &stubGenerator{}, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/limit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var limit models.LimitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &limit))
	assert.Equal(t, 7, limit.DailyLimit)
	assert.Equal(t, 0, limit.QuizCount)
}
