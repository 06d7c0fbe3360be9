package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestRedactsSensitiveKeys(t *testing.T) {
	log, logs := observed()
	log.With("GEMINI_API_KEY", "abc").Info("starting",
		"provider", "gemini",
		"Authorization", "Bearer sk-1",
		"refresh_token", "t",
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries: got=%d want=1", len(entries))
	}
	fields := entries[0].ContextMap()
	for _, k := range []string{"GEMINI_API_KEY", "Authorization", "refresh_token"} {
		if fields[k] != redacted {
			t.Fatalf("%s not redacted: %v", k, fields[k])
		}
	}
	if fields["provider"] != "gemini" {
		t.Fatalf("provider altered: %v", fields["provider"])
	}
}

func TestSanitizeKeepsDanglingValue(t *testing.T) {
	got := sanitizeKVs([]interface{}{"a", 1, "orphan"})
	if len(got) != 3 || got[2] != "orphan" {
		t.Fatalf("unexpected: %#v", got)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"production", "development", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.Debug("hello", "mode", mode)
	}
	NewNop().Info("discarded")
}
