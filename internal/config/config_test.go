package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	l := NewLoader()
	require.NoError(t, l.BindFlags(newFlags(t)))

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, 60*time.Second, cfg.GraphTimeout)
	assert.True(t, cfg.Checkout)
}

func TestLoad_Layers(t *testing.T) {
	file := writeFile(t, "commitscope.yaml", `
roster: teams.yaml
workers: 3
timeout: 90s
log_format: json
checkout: false
`)
	t.Setenv("COMMITSCOPE_WORKERS", "2")
	t.Setenv("COMMITSCOPE_STATE_DIR", "/tmp/state")

	l := NewLoader()
	require.NoError(t, l.BindFlags(newFlags(t, "--log-level", "debug")))

	cfg, err := l.Load(file)
	require.NoError(t, err)
	assert.Equal(t, file, l.ConfigFileUsed())

	assert.Equal(t, "teams.yaml", cfg.Roster)       // file
	assert.Equal(t, 90*time.Second, cfg.Timeout)    // file
	assert.False(t, cfg.Checkout)                   // file
	assert.Equal(t, 2, cfg.Workers)                 // env beats file
	assert.Equal(t, "/tmp/state", cfg.StateDir)     // env
	assert.Equal(t, "debug", cfg.LogLevel)          // flag
	assert.Equal(t, "repos.json", Default().Roster) // untouched
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	t.Setenv("COMMITSCOPE_WORKERS", "2")

	l := NewLoader()
	require.NoError(t, l.BindFlags(newFlags(t, "-w", "6", "--graph-command", "git-graph --svg --style round")))

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "git-graph --svg --style round", cfg.GraphCommand)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestLoad_Invalid(t *testing.T) {
	file := writeFile(t, "bad.yaml", "workers: 0\nlog_format: xml\n")

	_, err := NewLoader().Load(file)
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid config")
	assert.ErrorContains(t, err, "workers must be at least 1")
	assert.ErrorContains(t, err, "log_format")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no roster", func(c *Config) { c.Roster = "" }, "roster must not be empty"},
		{"layout without repo", func(c *Config) { c.Layout = "repos/{group}" }, "must contain {repo}"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"blank graph command", func(c *Config) { c.GraphCommand = "  " }, "graph_command"},
		{"json format", func(c *Config) { c.LogFormat = "JSON" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
