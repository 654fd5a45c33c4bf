// Package gemini implements the llm.Client contract on top of the Google
// GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-evaluator/internal/llm"
)

const defaultModel = "gemini-2.5-flash"

// contentGenerator matches the genai Models surface used by the client so
// tests can substitute a fake.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds the provider settings consumed by New.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// Client is a single-shot Gemini completion client. It performs no retries.
type Client struct {
	models      contentGenerator
	model       string
	temperature float32
	logger      *zap.Logger
}

// New creates a Client configured for the Gemini API backend.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		models:      client.Models,
		model:       model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// Complete sends one generation request demanding a JSON-object response and
// returns the concatenated textual candidates.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}

	user := strings.TrimSpace(req.User)
	if user == "" {
		return "", errors.New("request content must not be empty")
	}

	temperature := c.temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}
	if system := strings.TrimSpace(req.System); system != "" {
		config.SystemInstruction = &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(user), config)
	if err != nil {
		return "", translateError(err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", llm.ErrEmptyResponse
	}

	return output, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// translateError maps SDK failures onto the shared llm error taxonomy so the
// retry policy can classify them without knowing about genai.
func translateError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.ProviderError{Status: apiErr.Code, Message: apiErr.Message}
	}

	return &llm.TransportError{Op: "generate content", Err: err}
}
