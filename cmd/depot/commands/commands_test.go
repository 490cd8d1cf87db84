package commands_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/cmd/depot/commands"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/build"
	"go.trai.ch/depot/internal/core/domain"
)

type call struct {
	method string
	args   []string
}

type mockApp struct {
	calls    []call
	err      error
	cleaned  app.CleanOptions
	settings domain.Settings
}

func (m *mockApp) record(method string, args ...string) error {
	m.calls = append(m.calls, call{method: method, args: args})
	return m.err
}

func (m *mockApp) Restore(_ context.Context, dir string) error {
	return m.record("restore", dir)
}

func (m *mockApp) Publish(_ context.Context, dir, binary string) error {
	return m.record("publish", dir, binary)
}

func (m *mockApp) Watch(_ context.Context, dir, binary string) error {
	return m.record("watch", dir, binary)
}

func (m *mockApp) List(_ context.Context, id string, w io.Writer) error {
	_, _ = fmt.Fprintln(w, "listing", id)
	return m.record("list", id)
}

func (m *mockApp) Verify(_ context.Context, id, version string) error {
	return m.record("verify", id, version)
}

func (m *mockApp) Remove(_ context.Context, id, version string) error {
	return m.record("remove", id, version)
}

func (m *mockApp) Clean(_ context.Context, options app.CleanOptions) error {
	m.cleaned = options
	return m.record("clean")
}

func (m *mockApp) Settings() domain.Settings {
	return m.settings
}

func (m *mockApp) SetConfig(key, value string) error {
	return m.record("config set", key, value)
}

type logConfig struct {
	json  bool
	quiet bool
}

func (l *logConfig) SetJSON(enable bool)  { l.json = enable }
func (l *logConfig) SetQuiet(enable bool) { l.quiet = enable }

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m, nil)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_WireArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want call
	}{
		{name: "restore default dir", args: []string{"restore"}, want: call{"restore", []string{"."}}},
		{name: "restore dir", args: []string{"restore", "libs/hook"}, want: call{"restore", []string{"libs/hook"}}},
		{
			name: "publish binary",
			args: []string{"publish", "libs/hook", "--binary", "build/libhook.so"},
			want: call{"publish", []string{"libs/hook", "build/libhook.so"}},
		},
		{name: "publish header only", args: []string{"publish"}, want: call{"publish", []string{".", ""}}},
		{
			name: "publish watch",
			args: []string{"publish", "-w", "-b", "build/libhook.so"},
			want: call{"watch", []string{".", "build/libhook.so"}},
		},
		{name: "list all", args: []string{"list"}, want: call{"list", []string{""}}},
		{name: "list alias", args: []string{"ls", "hook"}, want: call{"list", []string{"hook"}}},
		{name: "verify all", args: []string{"verify", "hook"}, want: call{"verify", []string{"hook", ""}}},
		{name: "verify version", args: []string{"verify", "hook", "1.0.0"}, want: call{"verify", []string{"hook", "1.0.0"}}},
		{name: "remove version", args: []string{"rm", "hook", "1.0.0"}, want: call{"remove", []string{"hook", "1.0.0"}}},
		{
			name: "config set",
			args: []string{"config", "set", "registry", "https://mirror.example.com"},
			want: call{"config set", []string{"registry", "https://mirror.example.com"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.want, m.calls[0])
		})
	}
}

func TestCommands_ArgumentValidation(t *testing.T) {
	for _, args := range [][]string{
		{"verify"},
		{"verify", "hook", "1.0.0", "extra"},
		{"restore", "a", "b"},
		{"clean", "cache"},
		{"config", "set", "registry"},
	} {
		m := &mockApp{}
		_, err := execute(t, m, args...)
		require.Error(t, err, "args %v", args)
		assert.Empty(t, m.calls)
	}
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "default", args: []string{"clean"}, want: app.CleanOptions{Cache: true}},
		{name: "repository", args: []string{"clean", "-r"}, want: app.CleanOptions{Repository: true}},
		{name: "all", args: []string{"clean", "--all"}, want: app.CleanOptions{Cache: true, Repository: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.cleaned)
		})
	}
}

func TestCommands_ListWritesToStdout(t *testing.T) {
	out, err := execute(t, &mockApp{}, "list", "hook")

	require.NoError(t, err)
	assert.Equal(t, "listing hook\n", out)
}

func TestCommands_Config(t *testing.T) {
	m := &mockApp{settings: domain.Settings{
		CacheDir:  "/var/cache/depot",
		Registry:  "https://packages.example.com/api/v1",
		Timeout:   30 * time.Second,
		ConfigDir: "/etc/depot",
	}}

	out, err := execute(t, m, "config")

	require.NoError(t, err)
	assert.Equal(t, "cache:    /var/cache/depot\n"+
		"registry: https://packages.example.com/api/v1\n"+
		"timeout:  30s\n"+
		"config:   /etc/depot\n", out)
}

func TestCommands_ReturnsAppErrors(t *testing.T) {
	m := &mockApp{err: errors.New("simulated error")}

	_, err := execute(t, m, "restore")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_LogFlags(t *testing.T) {
	lc := &logConfig{}
	cli := commands.New(&mockApp{}, lc)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"restore", "--json", "-q"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, lc.json)
	assert.True(t, lc.quiet)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "depot version "+build.Version)
}
