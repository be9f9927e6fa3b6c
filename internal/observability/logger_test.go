package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerLevel(t *testing.T) {
	if got := NewLogger("debug", &bytes.Buffer{}).GetLevel(); got != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", got)
	}
	if got := NewLogger("chatty", &bytes.Buffer{}).GetLevel(); got != logrus.InfoLevel {
		t.Errorf("expected fallback to info, got %s", got)
	}
}

func TestEntryCarriesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	ctx := WithSubject(WithRequestID(context.Background(), "req-1"), "user-42")
	Entry(ctx, logger).Info("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line["request_id"] != "req-1" || line["subject"] != "user-42" {
		t.Errorf("missing context fields: %v", line)
	}
}
