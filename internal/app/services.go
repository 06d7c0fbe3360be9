package app

import (
	"fmt"

	"github.com/yungbote/coursegen-backend/internal/modules/coursegen"
	"github.com/yungbote/coursegen-backend/internal/modules/coursegen/prompts"
	"github.com/yungbote/coursegen-backend/internal/observability"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
)

type Services struct {
	CourseGen *coursegen.Service
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	registry, err := prompts.Load(cfg.PromptsPath)
	if err != nil {
		return Services{}, fmt.Errorf("load prompts: %w", err)
	}
	svc, err := coursegen.New(log, clients.LLM, registry, metrics, coursegen.Config{
		Timeout:  cfg.Timeout,
		Sampling: cfg.Sampling,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init course generation service: %w", err)
	}
	return Services{CourseGen: svc}, nil
}
