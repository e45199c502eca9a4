package services

import (
	"testing"

	"moviedetectives/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplyQuestion(t *testing.T) {
	raw := `{"question": "Which movie?", "hint1": "vague", "hint2": "revealing"}`

	question := &models.TitleDetectivesQuestion{}
	require.NoError(t, ParseReply(raw, question))

	assert.Equal(t, "Which movie?", question.Question)
	assert.Equal(t, "vague", question.Hint1)
	assert.Equal(t, "revealing", question.Hint2)
}

func TestParseReplyMissingField(t *testing.T) {
	raw := `{"question": "Which movie?", "hint1": "vague"}`

	var malformed *MalformedOutputError
	err := ParseReply(raw, &models.TitleDetectivesQuestion{})
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, raw, malformed.Raw)
}

func TestParseReplyExtraField(t *testing.T) {
	raw := `{"question": "q", "hint1": "a", "hint2": "b", "spoiler": "the answer"}`

	var malformed *MalformedOutputError
	assert.ErrorAs(t, ParseReply(raw, &models.TitleDetectivesQuestion{}), &malformed)
}

func TestParseReplyMistypedField(t *testing.T) {
	raw := `{"points": {"value": 3}, "answer": "nope"}`

	var malformed *MalformedOutputError
	assert.ErrorAs(t, ParseReply(raw, &models.GradedAnswer{}), &malformed)
}

func TestParseReplyNotJSON(t *testing.T) {
	raw := `Sure! Here is your question: ...`

	var malformed *MalformedOutputError
	err := ParseReply(raw, &models.TitleDetectivesQuestion{})
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, raw, malformed.Raw)
}

func TestParseReplyTrailingData(t *testing.T) {
	raw := `{"points": 3, "answer": "ok"} trailing`

	var malformed *MalformedOutputError
	assert.ErrorAs(t, ParseReply(raw, &models.GradedAnswer{}), &malformed)
}

func TestParseReplyPointsAsString(t *testing.T) {
	raw := `{"points": "3", "answer": "Correct, well done!"}`

	graded := &models.GradedAnswer{}
	require.NoError(t, ParseReply(raw, graded))

	assert.Equal(t, models.FlexInt(3), graded.Points)
	assert.Equal(t, "Correct, well done!", graded.Answer)
}

func TestParseReplyPointsAsNonNumericString(t *testing.T) {
	raw := `{"points": "three", "answer": "nope"}`

	var malformed *MalformedOutputError
	assert.ErrorAs(t, ParseReply(raw, &models.GradedAnswer{}), &malformed)
}

func TestParseReplyTriviaQuestion(t *testing.T) {
	raw := `{"question": "q", "option_1": "a", "option_2": "b", "option_3": "c", "option_4": "d", "correct_answer": 4}`

	question := &models.TriviaQuestion{}
	require.NoError(t, ParseReply(raw, question))

	assert.Equal(t, models.FlexInt(4), question.CorrectAnswer)
	assert.Equal(t, "d", question.Option(4))

	// the start response view must not leak the correct answer
	view := question.View()
	assert.NotContains(t, view, "correct_answer")
}

func TestParseReplyTriviaAnswerOutOfRange(t *testing.T) {
	raw := `{"question": "q", "option_1": "a", "option_2": "b", "option_3": "c", "option_4": "d", "correct_answer": 7}`

	var malformed *MalformedOutputError
	assert.ErrorAs(t, ParseReply(raw, &models.TriviaQuestion{}), &malformed)
}
