package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yungbote/coursegen-backend/internal/platform/llm"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
)

const DefaultModel = "gemini-1.5-flash"

type Config struct {
	APIKey string
	Model  string
}

type client struct {
	log   *logger.Logger
	sdk   *genai.Client
	model string
}

// Client is the Gemini text-completion client. Close releases the underlying
// connection.
type Client interface {
	llm.Client
	Close() error
}

// NewClient dials the Gemini API. Extra options are applied after the API key
// and can redirect the endpoint or transport.
func NewClient(ctx context.Context, log *logger.Logger, cfg Config, opts ...option.ClientOption) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	sdk, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &client{
		log:   log.With("service", "GeminiClient", "model", model),
		sdk:   sdk,
		model: model,
	}, nil
}

func (c *client) Provider() string { return llm.ProviderGemini }
func (c *client) Model() string    { return c.model }

func (c *client) Close() error {
	if c == nil || c.sdk == nil {
		return nil
	}
	return c.sdk.Close()
}

// Generate builds a fresh GenerativeModel per call; the SDK model carries its
// sampling config as mutable fields, so sharing one across goroutines would race.
func (c *client) Generate(ctx context.Context, prompt string, s llm.Sampling) (string, error) {
	m := c.sdk.GenerativeModel(c.model)
	applySampling(m, s)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	c.log.Debug("gemini response received", "chars", len(text))
	return text, nil
}

func applySampling(m *genai.GenerativeModel, s llm.Sampling) {
	m.SetTemperature(float32(s.Temperature))
	m.SetTopK(int32(s.TopK))
	m.SetTopP(float32(s.TopP))
	m.SetMaxOutputTokens(int32(s.MaxOutputTokens))
}

var ErrEmptyResponse = errors.New("gemini returned no candidates")

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
