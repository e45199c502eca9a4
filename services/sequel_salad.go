package services

import (
	"context"
	"log"

	"moviedetectives/models"
)

// sequelSaladMode lets the model pitch an invented sequel for a real
// franchise; the player has to guess the franchise. No movie lookup is
// involved, but a poster image is generated from the pitch.
type sequelSaladMode struct {
	generator Generator
	prompts   *PromptService
}

func (m *sequelSaladMode) Start(ctx context.Context, chat *Chat, req *models.StartQuizRequest) (*quizStart, error) {
	prompt, err := m.prompts.QuestionPrompt(models.QuizTypeSequelSalad, req.Personality, req.Language, nil)
	if err != nil {
		return nil, err
	}

	reply, err := m.generator.Send(ctx, chat, prompt)
	if err != nil {
		return nil, err
	}

	question := &models.SequelSaladQuestion{}
	if err := ParseReply(reply, question); err != nil {
		return nil, err
	}

	// A missing poster degrades the quiz, it does not fail it.
	poster, err := m.generator.GenerateImage(ctx, question.PosterPrompt)
	if err != nil {
		log.Printf("Could not generate sequel poster: %v", err)
		poster = ""
	}

	return &quizStart{
		Question: question,
		View:     question.View(),
		Speech:   synthesizeSpeech(ctx, m.generator, question.SequelPlot),
		Poster:   poster,
	}, nil
}

func (m *sequelSaladMode) Finish(ctx context.Context, chat *Chat, session *SessionData, answer string) (models.QuizResult, string, error) {
	prompt, err := m.prompts.AnswerPrompt(models.QuizTypeSequelSalad, answer)
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
