package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/logger"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer with colours disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("resolved codegen 0.33.0")

	goldie.New(t).Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("registry unreachable, using repository")

	goldie.New(t).Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("connection refused"), "failed to fetch versions"),
				"failed to resolve codegen",
			),
			goldenName: "error_chain",
		},
		{
			name: "domain error with metadata",
			err: func() error {
				err := zerr.Wrap(domain.ErrUnresolvedDependency, "dependency cannot be resolved")
				err = zerr.With(err, "range", "^9.0.0")
				return zerr.With(err, "id", "codegen")
			}(),
			goldenName: "error_metadata",
		},
		{
			name:       "multiline error",
			err:        errors.New("invalid character '}'\nat offset 12"),
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_StdlibChain(t *testing.T) {
	inner := errors.New("connection refused")
	outer := fmt.Errorf("failed to reach registry: %w", inner)

	lg, buf := newTestLogger(t)
	lg.Error(outer)

	assert.Equal(t, "✗ Error: failed to reach registry: connection refused\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.With(zerr.Wrap(errors.New("disk full"), "failed to write repository"), "path", "/tmp/x"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "failed to write repository")
	assert.Contains(t, out, "/tmp/x")
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.SetJSON(false)
	lg.Error(errors.New("back to pretty"))
	assert.Equal(t, "✗ Error: back to pretty\n", buf.String())
}

func TestLogger_SetQuiet(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetQuiet(true)
	lg.Info("hidden")
	lg.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())

	buf.Reset()
	lg.SetQuiet(false)
	lg.Info("visible again")
	assert.Equal(t, "visible again\n", buf.String())
}

func TestLogger_SetOutputNil(t *testing.T) {
	require.NotPanics(t, func() {
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(nil)
	})
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	done := make(chan struct{}, 3)
	go func() { lg.Info("info"); done <- struct{}{} }()
	go func() { lg.Warn("warn"); done <- struct{}{} }()
	go func() { lg.SetJSON(true); done <- struct{}{} }()

	for range 3 {
		<-done
	}
}
