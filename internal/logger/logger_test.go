package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "cli"} {
		t.Run(env, func(t *testing.T) {
			l, err := NewLogger(env, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_ = l.Sync()
		})
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging", ""); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected a no-op logger")
	}
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	ctx = With(ctx, zap.String("collection", "notes"))
	FromContext(ctx).Info("fetched")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["collection"]; got != "notes" {
		t.Errorf("collection = %v, want notes", got)
	}
}
