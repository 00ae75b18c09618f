package lineart

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello")
	if buf.Len() == 0 {
		t.Error("expected output after SetLogger")
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Info("silent")
	if buf.Len() != 0 {
		t.Errorf("nop logger wrote %q", buf.String())
	}
}

func TestDefaultLoggerDisabled(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should report disabled at every level")
	}
}
