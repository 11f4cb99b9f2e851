package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		wantLevel     logrus.Level
		wantJSON      bool
	}{
		{"debug", "text", logrus.DebugLevel, false},
		{"warn", "JSON", logrus.WarnLevel, true},
		{"nonsense", "", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		l := New(tt.level, tt.format)
		if l.GetLevel() != tt.wantLevel {
			t.Errorf("New(%q).GetLevel() = %v, want %v", tt.level, l.GetLevel(), tt.wantLevel)
		}
		_, isJSON := l.Formatter.(*logrus.JSONFormatter)
		if isJSON != tt.wantJSON {
			t.Errorf("New(_, %q) JSON formatter = %v, want %v", tt.format, isJSON, tt.wantJSON)
		}
	}
}

func TestWithFields(t *testing.T) {
	e := WithFields(New("info", ""), logrus.Fields{"gear_id": "fx6"})
	if e.Data["gear_id"] != "fx6" {
		t.Errorf("WithFields() data = %v", e.Data)
	}
}
