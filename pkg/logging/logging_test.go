package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/testersconnect/site/pkg/logging"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}, &buf)
		logger.Info("event created", "slug", "kickoff")

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if record["msg"] != "event created" || record["slug"] != "kickoff" {
			t.Errorf("record = %v", record)
		}
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}, &buf)
		logger.Info("hidden")
		logger.Warn("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
			t.Errorf("output = %q", out)
		}
	})
}

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := map[logging.Level]slog.Level{
		logging.LevelDebug: slog.LevelDebug,
		logging.LevelInfo:  slog.LevelInfo,
		logging.LevelWarn:  slog.LevelWarn,
		logging.LevelError: slog.LevelError,
		"verbose":          slog.LevelInfo,
	}
	for level, want := range tests {
		if got := level.ToSlogLevel(); got != want {
			t.Errorf("%q.ToSlogLevel() = %v, want %v", level, got, want)
		}
	}
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logging.Config
		env     map[string]string
		level   logging.Level
		format  logging.Format
		wantErr bool
	}{
		{name: "defaults", level: logging.LevelInfo, format: logging.FormatText},
		{name: "env", env: map[string]string{"TEST_LOG_LEVEL": "debug", "TEST_LOG_FORMAT": "json"}, level: logging.LevelDebug, format: logging.FormatJSON},
		{name: "bad level", cfg: logging.Config{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: logging.Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := tt.cfg
			err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Level != tt.level || cfg.Format != tt.format {
				t.Errorf("got %+v", cfg)
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	c := logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	c.Merge(&logging.Config{Format: logging.FormatJSON})
	if c.Level != logging.LevelInfo || c.Format != logging.FormatJSON {
		t.Errorf("got %+v", c)
	}
}
