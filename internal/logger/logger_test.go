package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_FILE", "")

	var buf bytes.Buffer
	if err := Init(&buf); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Log.GetLevel())
	}

	Log.WithFields(logrus.Fields{"session": 3}).Debug("level advanced")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q is not JSON: %v", buf.String(), err)
	}
	if entry["msg"] != "level advanced" || entry["session"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_FILE", "")
	if err := Init(&bytes.Buffer{}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}
}

func TestInitLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_FILE", path)

	var screen bytes.Buffer
	if err := Init(&screen); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Log.Info("hello file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file = %q, want the message", data)
	}
	if screen.Len() != 0 {
		t.Errorf("fallback writer got %q", screen.String())
	}
}
