package app

import (
	httpH "github.com/yungbote/coursegen-backend/internal/http/handlers"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
)

type Handlers struct {
	Generation *httpH.GenerationHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services, reposet Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Generation: httpH.NewGenerationHandler(log, services.CourseGen, reposet.AICallLog),
		Health:     httpH.NewHealthHandler(),
	}
}
