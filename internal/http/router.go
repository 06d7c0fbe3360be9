package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/coursegen-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursegen-backend/internal/http/middleware"
	"github.com/yungbote/coursegen-backend/internal/observability"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	GenerationHandler *httpH.GenerationHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestContext())
	r.Use(httpMW.Observe(cfg.Log, cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// AI generation
	if cfg.GenerationHandler != nil {
		ai := api.Group("/ai")
		ai.GET("/status", cfg.GenerationHandler.Status)
		ai.GET("/calls", cfg.GenerationHandler.ListCalls)
		ai.POST("/generate-course", cfg.GenerationHandler.GenerateCourse)
		ai.POST("/generate-lesson", cfg.GenerationHandler.GenerateLesson)
		ai.POST("/translate-hinglish", cfg.GenerationHandler.TranslateHinglish)
		ai.POST("/course-suggestions", cfg.GenerationHandler.CourseSuggestions)
	}

	return r
}
