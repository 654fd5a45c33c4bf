package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-evaluator/internal/llm"
	"github.com/spigell/resume-evaluator/internal/llm/gemini"
	"github.com/spigell/resume-evaluator/internal/llm/openai"
	"github.com/spigell/resume-evaluator/internal/logger"
	"github.com/spigell/resume-evaluator/internal/secrets"
)

const (
	defaultProvider    = "gemini"
	defaultTemperature = 0.2
)

// newClient builds the provider client selected by the configuration.
func newClient(ctx context.Context, cfg *AIConfig, log *zap.Logger) (llm.Client, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = defaultProvider
	}

	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}

	switch provider {
	case "gemini":
		return newGeminiClient(ctx, cfg, log)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newGeminiClient(ctx context.Context, cfg *AIConfig, log *zap.Logger) (llm.Client, error) {
	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey := gcfg.APIKey
	if strings.TrimSpace(apiKey) == "" {
		apiKey = viper.GetString("ai.gemini.api-key")
	}

	key, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: apiKey,
		File:  gcfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	client, err := gemini.New(ctx, gemini.Config{
		APIKey:      key,
		Model:       gcfg.Model,
		Temperature: cfg.Temperature,
	}, logger.WithCommonFields(log, "gemini", gcfg.Model))
	if err != nil {
		return nil, fmt.Errorf("building gemini client: %w", err)
	}

	return client, nil
}

func newOpenAIClient(cfg *AIConfig) (llm.Client, error) {
	ocfg := cfg.OpenAI
	if ocfg == nil {
		ocfg = &OpenAIConfig{}
	}

	apiKey := ocfg.APIKey
	if strings.TrimSpace(apiKey) == "" {
		apiKey = viper.GetString("ai.openai.api-key")
	}

	key, err := secrets.Load(secrets.Source{
		Name:  "openai api key",
		Value: apiKey,
		File:  ocfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY)", err)
	}

	client, err := openai.New(openai.Config{
		APIKey:      key,
		BaseURL:     ocfg.BaseURL,
		Model:       ocfg.Model,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("building openai client: %w", err)
	}

	return client, nil
}
