package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologLogger(t *testing.T) {
	t.Run("escreve pares chave/valor como campos JSON", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "info", "users-api")

		log.Info("user created", "user_id", "abc", "attempt", 2)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
		}
		if entry["message"] != "user created" {
			t.Errorf("message = %v", entry["message"])
		}
		if entry["user_id"] != "abc" {
			t.Errorf("user_id = %v", entry["user_id"])
		}
		if entry["attempt"] != float64(2) {
			t.Errorf("attempt = %v", entry["attempt"])
		}
		if entry["service"] != "users-api" {
			t.Errorf("service = %v", entry["service"])
		}
	})

	t.Run("respeita o nível configurado", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "warn", "users-api")

		log.Debug("hidden")
		log.Info("hidden")
		if buf.Len() != 0 {
			t.Fatalf("expected nothing below warn, got %q", buf.String())
		}

		log.Warn("shown")
		if buf.Len() == 0 {
			t.Fatal("expected warn entry")
		}
	})

	t.Run("With propaga o contexto", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "debug", "users-api").With("request_id", "r-1")

		log.Error("boom")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		if entry["request_id"] != "r-1" {
			t.Errorf("request_id = %v", entry["request_id"])
		}
		if entry["level"] != "error" {
			t.Errorf("level = %v", entry["level"])
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
