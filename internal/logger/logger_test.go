package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitWriterJSONLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "warn", true)

	Info("hidden")
	Warn("shown", "key", "value")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered at warn level: %s", out)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("expected a single json record, got %q: %v", out, err)
	}
	if rec["msg"] != "shown" || rec["key"] != "value" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info", false)

	if WithContext(context.Background()) != Get() {
		t.Fatal("expected default logger without a scoped one")
	}

	scoped := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := NewContext(context.Background(), scoped)
	WithContext(ctx).Info("hello")

	if !strings.Contains(buf.String(), "request_id=abc") {
		t.Fatalf("expected request id in output, got %q", buf.String())
	}
}
