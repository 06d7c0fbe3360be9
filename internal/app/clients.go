package app

import (
	"context"
	"fmt"

	"github.com/yungbote/coursegen-backend/internal/platform/gemini"
	"github.com/yungbote/coursegen-backend/internal/platform/llm"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
	"github.com/yungbote/coursegen-backend/internal/platform/openai"
)

type Clients struct {
	LLM llm.Client
	// Close releases provider resources; never nil.
	Close func() error
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...", "provider", cfg.Provider)

	switch cfg.Provider {
	case llm.ProviderOpenAI:
		c, err := openai.NewClient(log, cfg.OpenAI)
		if err != nil {
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
		return Clients{LLM: c, Close: func() error { return nil }}, nil
	case llm.ProviderGemini:
		c, err := gemini.NewClient(ctx, log, cfg.Gemini)
		if err != nil {
			return Clients{}, fmt.Errorf("init gemini client: %w", err)
		}
		return Clients{LLM: c, Close: c.Close}, nil
	default:
		return Clients{}, fmt.Errorf("unsupported MODEL_PROVIDER %q", cfg.Provider)
	}
}
