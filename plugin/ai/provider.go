// Package ai wraps the OpenAI-compatible API behind a small provider
// interface used by the agents. All calls retry with exponential backoff.
package ai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Message represents a chat message.
type Message struct {
	Role    string
	Content string
}

// Provider exposes the model calls the agents need. The concrete
// implementation talks to an OpenAI-compatible endpoint; tests supply
// a stub.
type Provider interface {
	// Chat performs a text chat completion.
	Chat(ctx context.Context, messages []Message) (string, error)
	// ChatVision performs a chat completion with an inline image.
	ChatVision(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error)
	// Transcribe turns recorded audio into text.
	Transcribe(ctx context.Context, audioData []byte, format string) (string, error)
}

// Config holds the AI provider configuration.
type Config struct {
	BaseURL         string
	APIKey          string
	ChatModel       string
	VisionModel     string
	TranscribeModel string
	MaxRetries      int
	Timeout         time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://api.openai.com/v1",
		APIKey:          "",
		ChatModel:       "gpt-4o",
		VisionModel:     "gpt-4o",
		TranscribeModel: "whisper-1",
		MaxRetries:      3,
		Timeout:         60 * time.Second,
	}
}

// OpenAIProvider implements Provider against an OpenAI-compatible API.
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

var _ Provider = (*OpenAIProvider)(nil)

// NewProvider creates a new AI provider.
func NewProvider(cfg *Config) (*OpenAIProvider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o"
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = cfg.ChatModel
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = "whisper-1"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Validate checks that the provider is usable.
func (p *OpenAIProvider) Validate() error {
	if p.config.APIKey == "" {
		return fmt.Errorf("API key is required, set REPGENIE_OPENAI_API_KEY environment variable")
	}
	return nil
}

// Chat performs a chat completion.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	var result string
	err := p.doWithRetry(ctx, func() error {
		llmMessages := make([]openai.ChatCompletionMessage, len(messages))
		for i, msg := range messages {
			llmMessages[i] = openai.ChatCompletionMessage{
				Role:    msg.Role,
				Content: msg.Content,
			}
		}

		req := openai.ChatCompletionRequest{
			Model:    p.config.ChatModel,
			Messages: llmMessages,
		}

		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat response")
		}
		result = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}
	return result, nil
}

// ChatVision performs a chat completion with an inline base64 image.
func (p *OpenAIProvider) ChatVision(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURI := EncodeImageDataURI(imageData, mimeType)

	var result string
	err := p.doWithRetry(ctx, func() error {
		req := openai.ChatCompletionRequest{
			Model: p.config.VisionModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{Type: openai.ChatMessagePartTypeText, Text: prompt},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL:    dataURI,
								Detail: openai.ImageURLDetailAuto,
							},
						},
					},
				},
			},
		}

		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty vision response")
		}
		result = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to complete vision chat: %w", err)
	}
	return result, nil
}

// Transcribe turns recorded audio into text using the transcription model.
// format is the container name, e.g. "mp3" or "wav"; when empty it is
// sniffed from the payload.
func (p *OpenAIProvider) Transcribe(ctx context.Context, audioData []byte, format string) (string, error) {
	if format == "" {
		format = SniffAudioFormat(audioData)
	}

	var result string
	err := p.doWithRetry(ctx, func() error {
		req := openai.AudioRequest{
			Model:    p.config.TranscribeModel,
			FilePath: "audio." + format,
			Reader:   bytes.NewReader(audioData),
		}

		resp, err := p.client.CreateTranscription(ctx, req)
		if err != nil {
			return err
		}
		result = resp.Text
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return result, nil
}

// doWithRetry executes a function with exponential backoff retry.
func (p *OpenAIProvider) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < p.config.MaxRetries-1 {
				waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				slog.Debug("AI request failed, retrying",
					"attempt", attempt+1,
					"wait_time", waitTime,
					"error", err)
				select {
				case <-time.After(waitTime):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}

// NewProviderFromEnv creates a provider from environment variables.
func NewProviderFromEnv() (*OpenAIProvider, error) {
	return NewProvider(&Config{
		BaseURL:         getEnv("REPGENIE_OPENAI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:          getEnv("REPGENIE_OPENAI_API_KEY", ""),
		ChatModel:       getEnv("REPGENIE_CHAT_MODEL", "gpt-4o"),
		VisionModel:     getEnv("REPGENIE_VISION_MODEL", "gpt-4o"),
		TranscribeModel: getEnv("REPGENIE_TRANSCRIBE_MODEL", "whisper-1"),
	})
}

// getEnv gets an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
