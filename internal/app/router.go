package app

import (
	"github.com/gin-gonic/gin"

	server "github.com/yungbote/coursegen-backend/internal/http"
	"github.com/yungbote/coursegen-backend/internal/observability"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	log.Info("Wiring router...")
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return server.NewRouter(server.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.Otel.ServiceName,
		AllowedOrigins:    cfg.AllowedOrigins,
		GenerationHandler: handlers.Generation,
		HealthHandler:     handlers.Health,
	})
}
