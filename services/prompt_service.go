package services

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"moviedetectives/models"
)

//go:embed templates
var templateFS embed.FS

// PromptService renders generation prompts from the embedded template tree.
// Templates are keyed by their path below templates/, e.g.
// "trivia/prompt_question" or "personality/christmas". Rendering is pure:
// the same inputs always produce the same prompt.
type PromptService struct {
	templates *template.Template
}

func NewPromptService() (*PromptService, error) {
	root := template.New("prompts")

	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := templateFS.ReadFile(path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".tmpl")
		_, err = root.New(name).Parse(string(content))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	return &PromptService{templates: root}, nil
}

// Render executes the named template. Unknown names are a configuration
// error, never a silent fallback.
func (s *PromptService) Render(name string, data any) (string, error) {
	tmpl := s.templates.Lookup(name)
	if tmpl == nil {
		return "", &ConfigurationError{Key: name}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderPersonality resolves a personality fragment for prompt embedding.
func (s *PromptService) RenderPersonality(personality models.Personality) (string, error) {
	if personality == "" {
		personality = models.PersonalityDefault
	}
	return s.Render("personality/"+string(personality), nil)
}

// RenderLanguage resolves the reply-language instruction fragment.
func (s *PromptService) RenderLanguage(language models.Language) (string, error) {
	if language == "" {
		language = models.LanguageEnglish
	}
	return s.Render("language/"+string(language), nil)
}

// QuestionPrompt builds the question prompt for a quiz type. The vars map is
// handed to the mode template together with the resolved personality and
// language fragments.
func (s *PromptService) QuestionPrompt(quizType models.QuizType, personality models.Personality, language models.Language, vars map[string]any) (string, error) {
	personalityText, err := s.RenderPersonality(personality)
	if err != nil {
		return "", err
	}
	languageText, err := s.RenderLanguage(language)
	if err != nil {
		return "", err
	}

	data := map[string]any{
		"Personality": personalityText,
		"Language":    languageText,
	}
	for k, v := range vars {
		data[k] = v
	}

	return s.Render(string(quizType)+"/prompt_question", data)
}

// AnswerPrompt builds the grading prompt for a quiz type.
func (s *PromptService) AnswerPrompt(quizType models.QuizType, answer string) (string, error) {
	return s.Render(string(quizType)+"/prompt_answer", map[string]any{"Answer": answer})
}

// MovieVars flattens movie metadata into template variables shared by the
// movie-based quiz types.
func MovieVars(movie *models.Movie) map[string]any {
	return map[string]any{
		"Title":         movie.Title,
		"Tagline":       movie.Tagline,
		"Overview":      movie.Overview,
		"Genres":        strings.Join(movie.GenreNames(), ", "),
		"Budget":        movie.Budget,
		"Revenue":       movie.Revenue,
		"AverageRating": movie.VoteAverage,
		"RatingCount":   movie.VoteCount,
		"ReleaseDate":   movie.ReleaseDate,
		"Runtime":       movie.Runtime,
	}
}
