package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// Chat carries the message history of one generation conversation, so the
// grading prompt can refer back to the generated question.
type Chat struct {
	Messages []openai.ChatCompletionMessage
}

// Generator is the abstraction over the generative model. Quiz modes depend
// on it; tests stub it.
type Generator interface {
	StartChat() *Chat
	Send(ctx context.Context, chat *Chat, prompt string) (string, error)
	SynthesizeSpeech(ctx context.Context, text string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// GenerationService talks to an OpenAI-compatible API. Chat completions run
// in JSON mode; speech and images are written into the media directories and
// referenced by URL path.
type GenerationService struct {
	client    *openai.Client
	model     string
	audioDir  string
	imagesDir string
}

func NewGenerationService(apiKey, model, mediaDir string) *GenerationService {
	return &GenerationService{
		client:    openai.NewClient(apiKey),
		model:     model,
		audioDir:  filepath.Join(mediaDir, "audio"),
		imagesDir: filepath.Join(mediaDir, "images"),
	}
}

func (s *GenerationService) StartChat() *Chat {
	return &Chat{}
}

// Send appends the prompt to the chat, requests a completion and records the
// model's reply in the history. Transport and model failures come back as
// *GenerationError; the pipeline never retries them.
func (s *GenerationService) Send(ctx context.Context, chat *Chat, prompt string) (string, error) {
	chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    chat.Messages,
		Temperature: 0.5,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Err: errors.New("no choices in completion response")}
	}

	reply := resp.Choices[0].Message.Content
	chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: reply,
	})

	return reply, nil
}

// SynthesizeSpeech writes the spoken text as an mp3 file and returns its
// serving path.
func (s *GenerationService) SynthesizeSpeech(ctx context.Context, text string) (string, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.VoiceOnyx,
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          0.85,
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Close()

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", err
	}

	fileID := uuid.NewString()
	filePath := filepath.Join(s.audioDir, fileID+".mp3")

	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.ReadFrom(resp); err != nil {
		return "", err
	}

	return "/audio/" + fileID + ".mp3", nil
}

// GenerateImage renders a poster image for the prompt and returns its
// serving path.
func (s *GenerationService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          openai.CreateImageModelDallE3,
		N:              1,
		Size:           openai.CreateImageSize1024x1792,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if len(resp.Data) == 0 {
		return "", &GenerationError{Err: errors.New("no image in generation response")}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return "", fmt.Errorf("failed to decode generated image: %w", err)
	}

	if err := os.MkdirAll(s.imagesDir, 0o755); err != nil {
		return "", err
	}

	fileID := uuid.NewString()
	filePath := filepath.Join(s.imagesDir, fileID+".png")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", err
	}

	return "/images/" + fileID + ".png", nil
}

// Validatable is implemented by generation payload types that can check
// their own required fields.
type Validatable interface {
	Validate() error
}

// ParseReply strictly decodes a model reply into the expected payload shape.
// Unknown fields, trailing data, type mismatches and missing required fields
// all fail with *MalformedOutputError carrying the raw reply. A malformed
// reply is never returned partially populated and never retried.
func ParseReply(raw string, out Validatable) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(out); err != nil {
		log.Printf("Model replied with an unexpected format: %v", err)
		return &MalformedOutputError{Raw: raw, Err: err}
	}
	if dec.More() {
		return &MalformedOutputError{Raw: raw, Err: errors.New("trailing data after JSON document")}
	}
	if err := out.Validate(); err != nil {
		return &MalformedOutputError{Raw: raw, Err: err}
	}

	return nil
}
