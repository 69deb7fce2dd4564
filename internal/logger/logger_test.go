package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestInitWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := InitWithWriter("warn", &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("dataset", "production").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"dataset":"production"`) {
		t.Errorf("warn message missing: %s", out)
	}
	if Log.GetLevel() != zerolog.WarnLevel {
		t.Errorf("global level = %v, want warn", Log.GetLevel())
	}
}
