package services

import (
	"context"

	"moviedetectives/models"
)

const (
	defaultVoteAvgMin   = 5.0
	defaultVoteCountMin = 1000.0
)

// pageRange maps the popularity bucket to TMDB discover page ranges: higher
// buckets stay on the first, most popular pages.
func pageRange(popularity int) (int, int) {
	switch popularity {
	case 3:
		return 1, 5
	case 2:
		return 10, 100
	case 1:
		return 50, 300
	}
	return 1, 3
}

// titleDetectivesMode asks the player to name a movie from a riddle and two
// hints. The movie title never appears in the start response.
type titleDetectivesMode struct {
	tmdb      MetadataProvider
	generator Generator
	prompts   *PromptService
}

func (m *titleDetectivesMode) Start(ctx context.Context, chat *Chat, req *models.StartQuizRequest) (*quizStart, error) {
	voteAvgMin := req.VoteAvgMin
	if voteAvgMin == 0 {
		voteAvgMin = defaultVoteAvgMin
	}
	voteCountMin := req.VoteCountMin
	if voteCountMin == 0 {
		voteCountMin = defaultVoteCountMin
	}
	pageMin, pageMax := pageRange(req.Popularity)

	movie, err := m.tmdb.GetRandomMovie(ctx, pageMin, pageMax, voteAvgMin, voteCountMin)
	if err != nil {
		return nil, err
	}

	prompt, err := m.prompts.QuestionPrompt(models.QuizTypeTitleDetectives, req.Personality, req.Language, MovieVars(movie))
	if err != nil {
		return nil, err
	}

	reply, err := m.generator.Send(ctx, chat, prompt)
	if err != nil {
		return nil, err
	}

	question := &models.TitleDetectivesQuestion{}
	if err := ParseReply(reply, question); err != nil {
		return nil, err
	}

	hint := movie.Hint()
	return &quizStart{
		Question:  question,
		View:      question,
		Movie:     movie,
		MovieHint: &hint,
		Speech:    synthesizeSpeech(ctx, m.generator, question.Question),
	}, nil
}

func (m *titleDetectivesMode) Finish(ctx context.Context, chat *Chat, session *SessionData, answer string) (models.QuizResult, string, error) {
	prompt, err := m.prompts.AnswerPrompt(models.QuizTypeTitleDetectives, answer)
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

	result := models.QuizResult{Points: int(graded.Points), Answer: graded.Answer}
	return result, synthesizeSpeech(ctx, m.generator, graded.Answer), nil
}
