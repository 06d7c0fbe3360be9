package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/coursegen-backend/internal/data/db"
	"github.com/yungbote/coursegen-backend/internal/modules/coursegen"
	"github.com/yungbote/coursegen-backend/internal/observability"
	"github.com/yungbote/coursegen-backend/internal/platform/envutil"
	"github.com/yungbote/coursegen-backend/internal/platform/gemini"
	"github.com/yungbote/coursegen-backend/internal/platform/llm"
	"github.com/yungbote/coursegen-backend/internal/platform/logger"
	"github.com/yungbote/coursegen-backend/internal/platform/openai"
)

const serviceName = "coursegen"

type Config struct {
	Port    string
	LogMode string

	Provider string
	Gemini   gemini.Config
	OpenAI   openai.Config
	Sampling llm.Sampling
	Timeout  time.Duration

	PromptsPath string

	Database db.Config

	MetricsEnabled bool
	MetricsAddr    string
	Otel           observability.OtelConfig

	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:     envutil.String("PORT", "8080"),
		LogMode:  envutil.String("LOG_MODE", "development"),
		Provider: strings.ToLower(envutil.String("MODEL_PROVIDER", llm.ProviderGemini)),
		Gemini: gemini.Config{
			APIKey: envutil.String("GEMINI_API_KEY", ""),
			Model:  envutil.String("GEMINI_MODEL", gemini.DefaultModel),
		},
		OpenAI: openai.Config{
			APIKey:  envutil.String("OPENAI_API_KEY", ""),
			BaseURL: envutil.String("OPENAI_BASE_URL", openai.DefaultBaseURL),
			Model:   envutil.String("OPENAI_MODEL", openai.DefaultModel),
		},
		Sampling: llm.Sampling{
			Temperature:     envutil.Float("MODEL_TEMPERATURE", llm.DefaultSampling().Temperature),
			TopK:            envutil.Int("MODEL_TOP_K", llm.DefaultSampling().TopK),
			TopP:            envutil.Float("MODEL_TOP_P", llm.DefaultSampling().TopP),
			MaxOutputTokens: envutil.Int("MODEL_MAX_OUTPUT_TOKENS", llm.DefaultSampling().MaxOutputTokens),
		},
		Timeout:     envutil.Seconds("MODEL_TIMEOUT_SECONDS", coursegen.DefaultTimeout),
		PromptsPath: envutil.String("COURSEGEN_PROMPTS_YAML", ""),
		Database: db.Config{
			Driver: strings.ToLower(envutil.String("DATABASE_DRIVER", "")),
			DSN:    envutil.String("DATABASE_DSN", ""),
		},
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false),
		MetricsAddr:    envutil.String("METRICS_ADDR", ":9090"),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", serviceName),
			Environment: envutil.String("APP_ENV", "development"),
			Version:     envutil.String("APP_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			Headers:     observability.ParseOTLPHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		},
		AllowedOrigins:  envutil.List("CORS_ALLOWED_ORIGINS", nil),
		ShutdownTimeout: 10 * time.Second,
	}
	if log != nil {
		log.Info("config loaded",
			"provider", cfg.Provider,
			"model", cfg.Model(),
			"timeout", cfg.Timeout.String(),
			"database_driver", cfg.Database.Driver,
			"metrics_enabled", cfg.MetricsEnabled,
			"otel_enabled", cfg.Otel.Enabled,
		)
	}
	return cfg
}

// Model is the model name for the selected provider.
func (c Config) Model() string {
	if c.Provider == llm.ProviderOpenAI {
		return c.OpenAI.Model
	}
	return c.Gemini.Model
}

// Validate reports configuration that must abort startup.
func (c Config) Validate() error {
	switch c.Provider {
	case llm.ProviderGemini:
		if strings.TrimSpace(c.Gemini.APIKey) == "" {
			return fmt.Errorf("missing GEMINI_API_KEY")
		}
	case llm.ProviderOpenAI:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			return fmt.Errorf("missing OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unsupported MODEL_PROVIDER %q", c.Provider)
	}
	if err := c.Sampling.Validate(); err != nil {
		return err
	}
	switch c.Database.Driver {
	case "", db.DriverSQLite:
	case db.DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("missing DATABASE_DSN for postgres")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("missing PORT")
	}
	return nil
}
