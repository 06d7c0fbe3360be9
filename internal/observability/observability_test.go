package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.APIInflightInc()
	m.APIInflightDec()
	m.ObserveLLMRequest("gemini", "m", "generate_course", "ok", time.Second)
	m.IncGeneration("generate_course", "success")
	if err := m.Serve(context.Background(), nil, ":0"); err != nil {
		t.Fatalf("Serve on nil metrics: %v", err)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestMetricsRecordAndExpose(t *testing.T) {
	m := NewMetrics()
	m.ObserveLLMRequest("gemini", "gemini-1.5-flash", "generate_course", "ok", 2*time.Second)
	m.ObserveLLMRequest("gemini", "gemini-1.5-flash", "generate_course", "error", 0)
	m.IncGeneration("generate_course", "success")
	m.IncGeneration("", "")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`coursegen_llm_requests_total{model="gemini-1.5-flash",operation="generate_course",provider="gemini",status="ok"} 1`,
		`coursegen_llm_request_duration_seconds_count{model="gemini-1.5-flash",operation="generate_course",provider="gemini"} 1`,
		`coursegen_generation_total{operation="unknown",outcome="unknown"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %s", want)
		}
	}
}

func TestParseOTLPHeaders(t *testing.T) {
	got := ParseOTLPHeaders("a=1, b = 2 ,broken,=x,c=")
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("unexpected headers: %#v", got)
	}
	if ParseOTLPHeaders("  ") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{})
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
