package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/AC350144/ClutchCall/internal/logger"
	"github.com/sirupsen/logrus"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(&buf, "info", "json")

	log.WithField("legs", 2).Info("slip analyzed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "slip analyzed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["legs"] != float64(2) {
		t.Errorf("legs = %v", entry["legs"])
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(&buf, "debug", "text")

	log.Debug("lookup failed")
	if !strings.Contains(buf.String(), "lookup failed") {
		t.Errorf("debug line missing: %q", buf.String())
	}
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, tt := range tests {
		if got := logger.NewWithOutput(&bytes.Buffer{}, tt.level, "json").GetLevel(); got != tt.want {
			t.Errorf("level %q = %v, want %v", tt.level, got, tt.want)
		}
	}
}
