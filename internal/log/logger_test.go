package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"arwikicats/config"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger_SplitsStreamsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	conf := &config.Configuration{App: config.App{Name: "arwikicats", Version: "1.2.3"}, Log: config.Log{Level: "debug"}}
	logger := newLogger(conf, zapcore.AddSync(&stdout), zapcore.AddSync(&stderr))

	logger.Debug("debug line")
	logger.Warn("warn line")
	_ = logger.Sync()

	if !strings.Contains(stdout.String(), "debug line") || strings.Contains(stdout.String(), "warn line") {
		t.Errorf("Unexpected stdout: %s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "warn line") || strings.Contains(stderr.String(), "debug line") {
		t.Errorf("Unexpected stderr: %s", stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &record); err != nil {
		t.Fatalf("stderr is not JSON: %v", err)
	}
	if record["level"] != "warn" || record["service"] != "arwikicats" || record["version"] != "1.2.3" {
		t.Errorf("Unexpected record %v", record)
	}
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := newLogger(&config.Configuration{Log: config.Log{Level: "chatty"}}, zapcore.AddSync(&stdout), zapcore.AddSync(&stderr))

	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	if strings.Contains(stdout.String(), "hidden") || !strings.Contains(stdout.String(), "shown") {
		t.Errorf("Unexpected stdout: %s", stdout.String())
	}
}
