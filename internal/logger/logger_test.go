package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/vladimiradmaev/recipe-planner/internal/reqctx"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		" warn ":  LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	prev := globalLogger
	globalLogger = New(&buf, Config{Level: LevelInfo, Format: "json"})
	t.Cleanup(func() { globalLogger = prev })

	ctx := reqctx.With(context.Background(), reqctx.RequestContext{RequestID: "req-9", UserID: "user-3"})
	FromContext(ctx).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if entry["request_id"] != "req-9" {
		t.Errorf("request_id = %v", entry["request_id"])
	}
	if entry["user_id"] != "user-3" {
		t.Errorf("user_id = %v", entry["user_id"])
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Level: LevelWarn, Format: "text"})
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
	l.Warn("kept")
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestDebugFollowsGlobalLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	globalLogger = New(&buf, Config{Level: LevelInfo, Format: "text"})
	Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %q", buf.String())
	}

	globalLogger = New(&buf, Config{Level: LevelDebug, Format: "text"})
	Debug("Schema is up to date")
	if !bytes.Contains(buf.Bytes(), []byte("Schema is up to date")) {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}
