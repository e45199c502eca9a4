package services

import (
	"context"
	"log"
	"time"

	"moviedetectives/models"
)

// MetadataProvider is the abstraction over the movie catalog. TmdbService
// implements it; tests stub it.
type MetadataProvider interface {
	GetMovies(ctx context.Context, page int, voteAvgMin, voteCountMin float64) ([]models.MovieSummary, error)
	GetMovie(ctx context.Context, movieID int) (*models.Movie, error)
	GetRandomMovie(ctx context.Context, pageMin, pageMax int, voteAvgMin, voteCountMin float64) (*models.Movie, error)
}

// quizStart is what a mode produces when a session begins: the full question
// payload for the session, an answer-safe view for the response, and the
// generated media references.
type quizStart struct {
	Question  any
	View      any
	Movie     *models.Movie
	MovieHint *models.MovieHint
	Speech    string
	Poster    string
}

// quizMode is one quiz variant. Start generates the question through the
// chat; Finish grades the answer through the same chat.
type quizMode interface {
	Start(ctx context.Context, chat *Chat, req *models.StartQuizRequest) (*quizStart, error)
	Finish(ctx context.Context, chat *Chat, session *SessionData, answer string) (models.QuizResult, string, error)
}

// QuizService orchestrates the quiz lifecycle: quota check, movie lookup,
// prompt generation, response parsing, session storage and answer grading.
type QuizService struct {
	generator Generator
	prompts   *PromptService
	sessions  *SessionStore
	limiter   *RateLimiter
	stats     *StatsService
	modes     map[models.QuizType]quizMode
}

func NewQuizService(
	tmdb MetadataProvider,
	generator Generator,
	prompts *PromptService,
	sessions *SessionStore,
	limiter *RateLimiter,
	stats *StatsService,
) *QuizService {
	return &QuizService{
		generator: generator,
		prompts:   prompts,
		sessions:  sessions,
		limiter:   limiter,
		stats:     stats,
		modes: map[models.QuizType]quizMode{
			models.QuizTypeTitleDetectives: &titleDetectivesMode{tmdb: tmdb, generator: generator, prompts: prompts},
			models.QuizTypeTrivia:          &triviaMode{tmdb: tmdb, generator: generator, prompts: prompts},
			models.QuizTypeSequelSalad:     &sequelSaladMode{generator: generator, prompts: prompts},
		},
	}
}

// validateRequest rejects unknown quiz/personality/language keys before any
// quota or external call happens.
func (s *QuizService) validateRequest(req *models.StartQuizRequest) (quizMode, error) {
	mode, ok := s.modes[req.QuizType]
	if !ok {
		return nil, &ConfigurationError{Key: string(req.QuizType)}
	}
	if _, err := s.prompts.RenderPersonality(req.Personality); err != nil {
		return nil, err
	}
	if _, err := s.prompts.RenderLanguage(req.Language); err != nil {
		return nil, err
	}
	return mode, nil
}

// StartQuiz runs the generation pipeline and stores the session. No session
// is created on any failure; a started session counts against the daily
// quota even if it is never answered.
func (s *QuizService) StartQuiz(ctx context.Context, req *models.StartQuizRequest) (*models.StartQuizResponse, error) {
	mode, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	if !s.limiter.CheckAndIncrement(ctx) {
		return nil, ErrQuotaExceeded
	}

	chat := s.generator.StartChat()
	start, err := mode.Start(ctx, chat, req)
	if err != nil {
		return nil, err
	}

	session := &SessionData{
		QuizType:  req.QuizType,
		Question:  start.Question,
		Movie:     start.Movie,
		Chat:      chat,
		StartedAt: time.Now(),
	}
	quizID := s.sessions.Create(session)

	log.Printf("Started %s quiz %s", req.QuizType, quizID)

	return &models.StartQuizResponse{
		QuizID:   quizID,
		QuizType: req.QuizType,
		Question: start.View,
		Movie:    start.MovieHint,
		Speech:   start.Speech,
		Poster:   start.Poster,
	}, nil
}

// FinishQuiz consumes the session and grades the answer. Taking the session
// first makes a second submission with the same id fail with
// ErrSessionNotFound, even if grading itself fails.
func (s *QuizService) FinishQuiz(ctx context.Context, quizID, answer, userID string) (*models.FinishQuizResponse, error) {
	session, err := s.sessions.Take(quizID)
	if err != nil {
		log.Printf("Session not found: %s", quizID)
		return nil, err
	}

	mode := s.modes[session.QuizType]
	result, speech, err := mode.Finish(ctx, session.Chat, session, answer)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.RecordResult(userID, session.QuizType, result.Points); err != nil {
			log.Printf("Failed to record quiz stats: %v", err)
		}
	}

	log.Printf("Finished %s quiz %s with %d points", session.QuizType, quizID, result.Points)

	return &models.FinishQuizResponse{
		QuizID:     quizID,
		QuizType:   session.QuizType,
		Question:   session.Question,
		Movie:      session.Movie,
		UserAnswer: answer,
		Result:     result,
		Speech:     speech,
	}, nil
}

// Sessions lists the open sessions without exposing question payloads.
func (s *QuizService) Sessions() []models.SessionResponse {
	sessions := s.sessions.Sessions()

	responses := make([]models.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, models.SessionResponse{
			QuizID:    session.QuizID,
			QuizType:  session.QuizType,
			StartedAt: session.StartedAt,
		})
	}
	return responses
}

// synthesizeSpeech degrades to an empty URL when speech generation fails;
// a quiz without audio is still a valid quiz.
func synthesizeSpeech(ctx context.Context, generator Generator, text string) string {
	speech, err := generator.SynthesizeSpeech(ctx, text)
	if err != nil {
		log.Printf("Could not synthesize speech: %v", err)
		return ""
	}
	return speech
}
