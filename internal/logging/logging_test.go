package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, production := range []bool{false, true} {
		logger, err := New("debug", production)
		if err != nil {
			t.Fatalf("production=%v: unexpected error: %v", production, err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("production=%v: expected debug level enabled", production)
		}
	}

	if _, err := New("loud", false); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
