package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level string
		env   string
		want  logrus.Level
	}{
		{"debug", "", logrus.DebugLevel},
		{"", "warn", logrus.WarnLevel},
		{"", "", logrus.InfoLevel},
		{"nonsense", "", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.env)
		Init(tt.level, "text")
		if got := Log.GetLevel(); got != tt.want {
			t.Errorf("Init(%q) with LOG_LEVEL=%q: expected %v, got %v", tt.level, tt.env, tt.want, got)
		}
	}
	Silence()
}

func TestInitJSONFormatter(t *testing.T) {
	Init("info", "JSON")
	if _, ok := Log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", Log.Formatter)
	}
	Init("info", "text")
	if _, ok := Log.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Expected text formatter, got %T", Log.Formatter)
	}
	Silence()
}
