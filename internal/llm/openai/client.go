// Package openai implements the llm.Client contract against an
// OpenAI-compatible chat-completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spigell/resume-evaluator/internal/llm"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Config holds the provider settings consumed by New.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	HTTPClient  *http.Client
}

// Client is a single-shot OpenAI completion client. It performs no retries.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float32
	httpClient  *http.Client
}

// New creates a Client targeting the configured OpenAI-compatible API.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: cfg.Temperature,
		httpClient:  httpClient,
	}, nil
}

// chatRequest mirrors the /v1/chat/completions request body.
type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float32        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse mirrors the relevant fields of the response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat-completion request demanding a JSON-object response.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature:    c.temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &llm.TransportError{Op: "chat completion", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.TransportError{Op: "read chat response", Err: err}
	}

	var chat chatResponse
	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &chat) == nil && chat.Error != nil {
			message = chat.Error.Message
		}
		return "", &llm.ProviderError{Status: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(respBody, &chat); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}

	if chat.Error != nil {
		return "", &llm.ProviderError{Status: resp.StatusCode, Message: chat.Error.Message}
	}

	if len(chat.Choices) == 0 || strings.TrimSpace(chat.Choices[0].Message.Content) == "" {
		return "", llm.ErrEmptyResponse
	}

	return chat.Choices[0].Message.Content, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
