package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/platewise/backend/config"
)

// geminiRequest is the generateContent request payload.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiGenerationConfig holds the sampling parameters. They are fixed per
// deployment, not varied per request.
type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiService calls the hosted text-generation model. A service with no
// API key is valid but unconfigured; callers are expected to skip it and use
// the template fallback.
type GeminiService struct {
	client *resty.Client
	cfg    config.GeminiConfig
	logger *zap.Logger
}

// NewGeminiService creates a new GeminiService instance
func NewGeminiService(cfg config.GeminiConfig, logger *zap.Logger) *GeminiService {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &GeminiService{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Configured reports whether a model credential is present.
func (s *GeminiService) Configured() bool {
	return s.cfg.APIKey != ""
}

// GenerateText sends a prompt to the model and returns the generated text.
// Any transport error, non-success status or empty candidate text is
// returned as an error.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     s.cfg.Temperature,
			MaxOutputTokens: s.cfg.MaxOutputTokens,
			TopP:            s.cfg.TopP,
			TopK:            s.cfg.TopK,
		},
	}

	var result geminiResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-goog-api-key", s.cfg.APIKey).
		SetBody(req).
		SetResult(&result).
		Post(s.cfg.APIURL)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if resp.IsError() {
		s.logger.Warn("model request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return "", fmt.Errorf("model API error: status %d", resp.StatusCode())
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no text in model response")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty text in model response")
	}

	return text, nil
}
