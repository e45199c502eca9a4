package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type QuizType string

const (
	QuizTypeTitleDetectives QuizType = "title-detectives"
	QuizTypeTrivia          QuizType = "trivia"
	QuizTypeSequelSalad     QuizType = "sequel-salad"
)

type Personality string

const (
	PersonalityDefault   Personality = "default"
	PersonalityChristmas Personality = "christmas"
	PersonalityScientist Personality = "scientist"
	PersonalityDad       Personality = "dad"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// FlexInt decodes from a JSON number or a numeric string. Generative models
// occasionally quote numeric fields ("points": "3"); both forms are accepted,
// anything else is a decoding error.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid numeric string %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// TitleDetectivesQuestion is the generated payload for the title-detectives
// mode: a riddle describing a movie without naming it.
type TitleDetectivesQuestion struct {
	Question string `json:"question"`
	Hint1    string `json:"hint1"`
	Hint2    string `json:"hint2"`
}

func (q *TitleDetectivesQuestion) Validate() error {
	if q.Question == "" || q.Hint1 == "" || q.Hint2 == "" {
		return fmt.Errorf("missing required field in title-detectives question")
	}
	return nil
}

// TriviaQuestion is a multiple-choice question about a named movie. The
// correct answer index never leaves the server while the session is open.
type TriviaQuestion struct {
	Question      string  `json:"question"`
	Option1       string  `json:"option_1"`
	Option2       string  `json:"option_2"`
	Option3       string  `json:"option_3"`
	Option4       string  `json:"option_4"`
	CorrectAnswer FlexInt `json:"correct_answer"`
}

func (q *TriviaQuestion) Validate() error {
	if q.Question == "" || q.Option1 == "" || q.Option2 == "" || q.Option3 == "" || q.Option4 == "" {
		return fmt.Errorf("missing required field in trivia question")
	}
	if q.CorrectAnswer < 1 || q.CorrectAnswer > 4 {
		return fmt.Errorf("correct_answer %d out of range", q.CorrectAnswer)
	}
	return nil
}

// Option returns the text of a 1-based option index.
func (q *TriviaQuestion) Option(n int) string {
	switch n {
	case 1:
		return q.Option1
	case 2:
		return q.Option2
	case 3:
		return q.Option3
	case 4:
		return q.Option4
	}
	return ""
}

// View strips the correct answer index for the start response.
func (q *TriviaQuestion) View() map[string]any {
	return map[string]any{
		"question": q.Question,
		"option_1": q.Option1,
		"option_2": q.Option2,
		"option_3": q.Option3,
		"option_4": q.Option4,
	}
}

// SequelSaladQuestion is an invented sequel pitch for a real franchise. The
// franchise is the answer and the poster prompt is internal, so neither is
// exposed in the start response.
type SequelSaladQuestion struct {
	SequelPlot   string `json:"sequel_plot"`
	SequelTitle  string `json:"sequel_title"`
	PosterPrompt string `json:"poster_prompt"`
	Franchise    string `json:"franchise"`
}

func (q *SequelSaladQuestion) Validate() error {
	if q.SequelPlot == "" || q.SequelTitle == "" || q.PosterPrompt == "" || q.Franchise == "" {
		return fmt.Errorf("missing required field in sequel-salad question")
	}
	return nil
}

func (q *SequelSaladQuestion) View() map[string]any {
	return map[string]any{
		"sequel_plot":  q.SequelPlot,
		"sequel_title": q.SequelTitle,
	}
}

// GradedAnswer is the model's grading verdict for a submitted answer.
type GradedAnswer struct {
	Points FlexInt `json:"points"`
	Answer string  `json:"answer"`
}

func (a *GradedAnswer) Validate() error {
	if a.Answer == "" {
		return fmt.Errorf("missing answer field in grading result")
	}
	return nil
}

type StartQuizRequest struct {
	QuizType     QuizType    `json:"quiz_type" binding:"required"`
	Personality  Personality `json:"personality"`
	Language     Language    `json:"language"`
	VoteAvgMin   float64     `json:"vote_avg_min"`
	VoteCountMin float64     `json:"vote_count_min"`
	Popularity   int         `json:"popularity"`
}

type FinishQuizRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type StartQuizResponse struct {
	QuizID   string     `json:"quiz_id"`
	QuizType QuizType   `json:"quiz_type"`
	Question any        `json:"question"`
	Movie    *MovieHint `json:"movie,omitempty"`
	Speech   string     `json:"speech,omitempty"`
	Poster   string     `json:"poster,omitempty"`
}

type QuizResult struct {
	Points int    `json:"points"`
	Answer string `json:"answer"`
}

type FinishQuizResponse struct {
	QuizID     string     `json:"quiz_id"`
	QuizType   QuizType   `json:"quiz_type"`
	Question   any        `json:"question"`
	Movie      *Movie     `json:"movie,omitempty"`
	UserAnswer string     `json:"user_answer"`
	Result     QuizResult `json:"result"`
	Speech     string     `json:"speech,omitempty"`
}

type SessionResponse struct {
	QuizID    string    `json:"quiz_id"`
	QuizType  QuizType  `json:"quiz_type"`
	StartedAt time.Time `json:"started_at"`
}

type LimitResponse struct {
	DailyLimit    int       `json:"daily_limit"`
	QuizCount     int       `json:"quiz_count"`
	LastResetTime time.Time `json:"last_reset_time"`
	LastResetDate string    `json:"last_reset_date"`
	CurrentDate   string    `json:"current_date"`
}

type StatsResponse struct {
	QuizCountTotal int           `json:"quiz_count_total"`
	PointsTotal    int           `json:"points_total"`
	Limit          LimitResponse `json:"limit"`
}
