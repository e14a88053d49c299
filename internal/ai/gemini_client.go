package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	aiplatform "google.golang.org/api/aiplatform/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// publisherModelPrefix qualifies a bare Gemini model name for the Vertex AI
// publisher models endpoint.
const publisherModelPrefix = "publishers/google/models/"

// GeminiConfig configures the Gemini client. The API key is a Vertex AI
// express mode key.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
	// Endpoint overrides the default service endpoint.
	Endpoint string `mapstructure:"endpoint"`
}

// GeminiClient implements TextGenerator on Vertex AI publisher models.
type GeminiClient struct {
	svc   *aiplatform.Service
	model string
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := aiplatform.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aiplatform service: %w", err)
	}

	model := strings.TrimPrefix(cfg.Model, "models/")
	if !strings.Contains(model, "/") {
		model = publisherModelPrefix + model
	}

	return &GeminiClient{svc: svc, model: model}, nil
}

// GenerateText sends prompt as a single user turn. A 429 answer is reported
// as ErrUpstreamRateLimited.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := &aiplatform.GoogleCloudAiplatformV1GenerateContentRequest{
		Contents: []*aiplatform.GoogleCloudAiplatformV1Content{{
			Role:  "user",
			Parts: []*aiplatform.GoogleCloudAiplatformV1Part{{Text: prompt}},
		}},
	}

	resp, err := c.svc.Publishers.Models.GenerateContent(c.model, req).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %s", ErrUpstreamRateLimited, apiErr.Message)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
