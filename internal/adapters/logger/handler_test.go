package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depot/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: "restored\n"},
		{name: "warn", level: slog.LevelWarn, want: "! restored\n"},
		{name: "error", level: slog.LevelError, want: "✗ restored\n"},
		{name: "debug filtered", level: slog.LevelDebug, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, nil))
			lg.Log(t.Context(), tt.level, "restored")

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lg.With("id", "codegen").Debug("resolved", "version", "0.33.0")
	lg.WithGroup("pkg").Info("staged", "files", 3)

	assert.Equal(t, "resolved id=codegen version=0.33.0\nstaged pkg.files=3\n", buf.String())
}
