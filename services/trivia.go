package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"moviedetectives/models"
)

// Trivia picks from well-known movies only: first discover pages, decent
// rating, high vote count.
const (
	triviaPageMin      = 1
	triviaPageMax      = 10
	triviaVoteAvgMin   = 4.0
	triviaVoteCountMin = 4000.0
)

const triviaCorrectPoints = 3

// triviaMode asks one multiple-choice question about a named movie. The
// answer is graded locally against the stored option index; the model only
// supplies the explanation text.
type triviaMode struct {
	tmdb      MetadataProvider
	generator Generator
	prompts   *PromptService
}

func (m *triviaMode) Start(ctx context.Context, chat *Chat, req *models.StartQuizRequest) (*quizStart, error) {
	movie, err := m.tmdb.GetRandomMovie(ctx, triviaPageMin, triviaPageMax, triviaVoteAvgMin, triviaVoteCountMin)
	if err != nil {
		return nil, err
	}

	prompt, err := m.prompts.QuestionPrompt(models.QuizTypeTrivia, req.Personality, req.Language, MovieVars(movie))
	if err != nil {
		return nil, err
	}

	reply, err := m.generator.Send(ctx, chat, prompt)
	if err != nil {
		return nil, err
	}

	question := &models.TriviaQuestion{}
	if err := ParseReply(reply, question); err != nil {
		return nil, err
	}

	hint := movie.Hint()
	return &quizStart{
		Question:  question,
		View:      question.View(),
		Movie:     movie,
		MovieHint: &hint,
		Speech:    synthesizeSpeech(ctx, m.generator, question.Question),
	}, nil
}

func (m *triviaMode) Finish(ctx context.Context, chat *Chat, session *SessionData, answer string) (models.QuizResult, string, error) {
	question, ok := session.Question.(*models.TriviaQuestion)
	if !ok {
		return models.QuizResult{}, "", fmt.Errorf("session %s holds no trivia question", session.QuizID)
	}

	picked, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || picked < 1 || picked > 4 {
		return models.QuizResult{}, "", ErrInvalidAnswer
	}

	correct := picked == int(question.CorrectAnswer)
	verdict := "incorrect"
	if correct {
		verdict = "correct"
	}

	prompt, err := m.prompts.AnswerPrompt(models.QuizTypeTrivia,
		fmt.Sprintf("%s (option %d), which is %s", question.Option(picked), picked, verdict))
	if err != nil {
		return models.QuizResult{}, "", err
	}

	reply, err := m.generator.Send(ctx, chat, prompt)
	if err != nil {
		return models.QuizResult{}, "", err
	}

	graded := &models.GradedAnswer{}
	if err := ParseReply(reply, graded); err != nil {
		return models.QuizResult{}, "", err
	}

	points := 0
	if correct {
		points = triviaCorrectPoints
	}

	result := models.QuizResult{Points: points, Answer: graded.Answer}
	return result, synthesizeSpeech(ctx, m.generator, graded.Answer), nil
}
