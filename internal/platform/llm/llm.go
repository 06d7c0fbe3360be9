// Package llm defines the text-completion contract shared by the model
// providers. A Client sends one user-role prompt and returns the raw text.
package llm

import (
	"context"
	"fmt"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Sampling carries the generation options every provider understands.
// Providers ignore options their API cannot express.
type Sampling struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

func DefaultSampling() Sampling {
	return Sampling{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 8192,
	}
}

// WithTemperature returns a copy with the temperature replaced.
func (s Sampling) WithTemperature(t float64) Sampling {
	s.Temperature = t
	return s
}

func (s Sampling) Validate() error {
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0,2], got %v", s.Temperature)
	}
	if s.TopP < 0 || s.TopP > 1 {
		return fmt.Errorf("topP must be within [0,1], got %v", s.TopP)
	}
	if s.TopK < 1 {
		return fmt.Errorf("topK must be positive, got %d", s.TopK)
	}
	if s.MaxOutputTokens < 1 {
		return fmt.Errorf("maxOutputTokens must be positive, got %d", s.MaxOutputTokens)
	}
	return nil
}

type Client interface {
	// Generate performs exactly one outbound call. It never retries.
	Generate(ctx context.Context, prompt string, s Sampling) (string, error)
	Provider() string
	Model() string
}
