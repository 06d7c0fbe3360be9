package app

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/coursegen-backend/internal/platform/llm"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"MODEL_PROVIDER", "PORT", "GEMINI_MODEL", "MODEL_TEMPERATURE", "MODEL_TIMEOUT_SECONDS", "DATABASE_DRIVER", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
	t.Setenv("GEMINI_API_KEY", "key")

	cfg := LoadConfig(nil)
	if cfg.Provider != llm.ProviderGemini || cfg.Model() != "gemini-1.5-flash" {
		t.Fatalf("provider/model: got=%s/%s", cfg.Provider, cfg.Model())
	}
	if cfg.Port != "8080" {
		t.Fatalf("port: got=%q", cfg.Port)
	}
	if cfg.Sampling != llm.DefaultSampling() {
		t.Fatalf("sampling: got=%#v", cfg.Sampling)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("timeout: got=%s", cfg.Timeout)
	}
	if cfg.Database.Enabled() {
		t.Fatalf("database should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MODEL_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("MODEL_TEMPERATURE", "0.2")
	t.Setenv("MODEL_MAX_OUTPUT_TOKENS", "2048")
	t.Setenv("MODEL_TIMEOUT_SECONDS", "45")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc")

	cfg := LoadConfig(nil)
	if cfg.Provider != llm.ProviderOpenAI || cfg.Model() != "gpt-4.1-mini" {
		t.Fatalf("provider/model: got=%s/%s", cfg.Provider, cfg.Model())
	}
	if cfg.Sampling.Temperature != 0.2 || cfg.Sampling.MaxOutputTokens != 2048 || cfg.Sampling.TopK != 40 {
		t.Fatalf("sampling: got=%#v", cfg.Sampling)
	}
	if cfg.Timeout != 45*time.Second {
		t.Fatalf("timeout: got=%s", cfg.Timeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("origins: got=%#v", cfg.AllowedOrigins)
	}
	if cfg.Otel.Headers["x-api-key"] != "abc" {
		t.Fatalf("otel headers: got=%#v", cfg.Otel.Headers)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Port:     "8080",
			Provider: llm.ProviderGemini,
			Sampling: llm.DefaultSampling(),
		}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing gemini key", func(c *Config) {}, "missing GEMINI_API_KEY"},
		{"missing openai key", func(c *Config) { c.Provider = llm.ProviderOpenAI }, "missing OPENAI_API_KEY"},
		{"unknown provider", func(c *Config) { c.Provider = "claude" }, "unsupported MODEL_PROVIDER"},
		{"temperature out of range", func(c *Config) {
			c.Gemini.APIKey = "k"
			c.Sampling.Temperature = 2.5
		}, "temperature"},
		{"postgres without dsn", func(c *Config) {
			c.Gemini.APIKey = "k"
			c.Database.Driver = "postgres"
		}, "missing DATABASE_DSN"},
		{"unknown driver", func(c *Config) {
			c.Gemini.APIKey = "k"
			c.Database.Driver = "mysql"
		}, "unsupported DATABASE_DRIVER"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate: got=%v want substring %q", err, tc.want)
			}
		})
	}
}
