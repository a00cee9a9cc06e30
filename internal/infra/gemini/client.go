// Package gemini wraps the Google GenAI SDK behind a single blocking
// completion call with one fixed response contract.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/schema-studio/schema-studio/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrEmptyCompletion is returned when the model reply carries no text.
var ErrEmptyCompletion = errors.New("empty response from completion model")

// CompletionRequest is one prompt for one model under one credential.
// APIKey and Model fall back to the configured defaults when empty.
type CompletionRequest struct {
	Prompt string
	Model  string
	APIKey string
}

// Client calls the Gemini API. The underlying *http.Client is shared across
// requests; the SDK client itself is rebuilt per request because the
// credential is request-scoped.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.Gemini.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GenerateContent sends the prompt and returns the reply text. The only
// response shape honored is resp.Text(); an empty text is ErrEmptyCompletion
// regardless of what else the reply carries.
func (c *Client) GenerateContent(ctx context.Context, req CompletionRequest) (string, error) {
	apiKey := req.APIKey
	if apiKey == "" {
		// process-wide fallback key; cross-session leakage risk in
		// multi-tenant deployments, see DESIGN.md
		apiKey = c.cfg.Gemini.APIKey
		c.log.Warn("completion request without credential, using configured fallback key")
	}
	if apiKey == "" {
		return "", errors.New("no API key provided and no fallback configured")
	}

	modelName := req.Model
	if modelName == "" {
		modelName = c.cfg.Gemini.DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), nil)
	if err != nil {
		c.log.Error("generate content failed",
			zap.String("model", modelName),
			zap.Error(err))
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
