package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "json", Component: ComponentDashboard, Output: &buf})

	logger.Debug("recomputed", FieldDays, 3)

	out := buf.String()
	if !strings.Contains(out, `"component":"dashboard"`) {
		t.Errorf("Expected component field, got %s", out)
	}
	if !strings.Contains(out, `"days":3`) {
		t.Errorf("Expected days field, got %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf}).WithComponent(ComponentHTTP)

	if logger.Component() != ComponentHTTP {
		t.Errorf("Expected component http, got %s", logger.Component())
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), "component=http") || strings.Contains(buf.String(), "component=app") {
		t.Errorf("Expected only component=http, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
