package logging

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestConfigEncoding(t *testing.T) {
	t.Parallel()

	if got, want := config("", "").Encoding, "json"; got != want {
		t.Fatalf("encoding=%q want %q", got, want)
	}
	if got, want := config("", "Console").Encoding, "console"; got != want {
		t.Fatalf("encoding=%q want %q", got, want)
	}
	if got, want := config("debug", "").Level.Level(), zapcore.DebugLevel; got != want {
		t.Fatalf("level=%v want %v", got, want)
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("calculator-service")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("ok")
}

func TestUTCTimeEncoder(t *testing.T) {
	t.Parallel()

	enc := zapcore.NewMapObjectEncoder()
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.FixedZone("BST", 3600))
	if err := enc.AddArray("t", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		utcTimeEncoder(ts, arr)
		return nil
	})); err != nil {
		t.Fatalf("AddArray: %v", err)
	}
	got := enc.Fields["t"].([]interface{})
	if want := "2024-01-02T14:04:05Z"; len(got) != 1 || got[0] != want {
		t.Fatalf("encoded=%v want [%s]", got, want)
	}
}
