package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/incidents/tui"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		assert func(t *testing.T, stdout string, err error)
	}{
		{
			name: "show",
			args: []string{"config", "show"},
			assert: func(t *testing.T, stdout string, err error) {
				assert.NoError(t, err)
				assert.Contains(t, stdout, "Configuration")
				assert.Contains(t, stdout, "walkthrough:")
				assert.Contains(t, stdout, "colors: never")
			},
		},
		{
			name: "show_json",
			args: []string{"config", "show", "--format", "json"},
			assert: func(t *testing.T, stdout string, err error) {
				assert.NoError(t, err)
				var view tui.ConfigView
				require.NoError(t, json.Unmarshal([]byte(stdout), &view))
				assert.Contains(t, view.Values, "storage")
				assert.Contains(t, view.Values, "logging")
			},
		},
		{
			name: "show_csv",
			args: []string{"config", "show", "--format", "csv"},
			assert: func(t *testing.T, stdout string, err error) {
				assert.NoError(t, err)
				assert.Contains(t, stdout, "display.timezone,utc\n")
			},
		},
		{
			name: "get_default",
			args: []string{"config", "get", "walkthrough.responsible"},
			assert: func(t *testing.T, stdout string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Juan Pérez\n", stdout)
			},
		},
		{
			name: "get_nonexistent_key",
			args: []string{"config", "get", "nonexistent.key"},
			assert: func(t *testing.T, stdout string, err error) {
				assertExitCode(t, err, 2)
				assert.Contains(t, err.Error(), "key not found")
			},
		},
		{
			name: "set_unknown_key",
			args: []string{"config", "set", "nonexistent.key", "1"},
			assert: func(t *testing.T, stdout string, err error) {
				assertExitCode(t, err, 2)
				assert.Contains(t, err.Error(), "unknown key")
			},
		},
		{
			name: "set_invalid_value",
			args: []string{"config", "set", "display.timezone", "mars"},
			assert: func(t *testing.T, stdout string, err error) {
				assertExitCode(t, err, 2)
			},
		},
		{
			name: "set_value",
			args: []string{"config", "set", "walkthrough.list_limit", "10"},
			assert: func(t *testing.T, stdout string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Set walkthrough.list_limit = 10\n", stdout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			stdout, _, err := env.run(tt.args...)
			tt.assert(t, stdout, err)
		})
	}
}

func TestConfig_SetAndVerify(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("config", "set", "walkthrough.responsible", "Ana Soto")
	require.NoError(t, err)

	stdout, _, err := env.run("config", "get", "walkthrough.responsible")
	require.NoError(t, err)
	assert.Equal(t, "Ana Soto\n", stdout)

	// The database path survives the rewrite.
	stdout, _, err = env.run("config", "get", "storage.path")
	require.NoError(t, err)
	assert.Equal(t, env.dbPath+"\n", stdout)

	stdout, _, err = env.run("demo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(Ana Soto)")
}

func TestConfig_SetInvalidKeepsFile(t *testing.T) {
	env := newTestEnv(t)

	before, err := os.ReadFile(env.configPath)
	require.NoError(t, err)

	_, _, err = env.run("config", "set", "walkthrough.list_limit", "0")
	assertExitCode(t, err, 2)

	after, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestConfig_Reset(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("config", "reset")
	require.NoError(t, err)
	assert.Contains(t, stdout, "reset to defaults")

	_, err = os.Stat(env.configPath)
	assert.True(t, os.IsNotExist(err))

	// A missing explicit config file selects the defaults.
	stdout, _, err = env.run("config", "get", "display.timezone")
	require.NoError(t, err)
	assert.Equal(t, "local\n", stdout)
}

func TestConfig_MalformedFile(t *testing.T) {
	env := newTestEnvWithConfig(t, "storage: [unclosed\n")

	_, _, err := env.run("config", "show")
	assertExitCode(t, err, 2)

	_, _, err = env.run("list")
	assertExitCode(t, err, 2)
}

func TestConfig_PostgresWithoutDSN(t *testing.T) {
	env := newTestEnvWithConfig(t, "storage:\n  driver: postgres\n")

	_, _, err := env.run("list")
	assertExitCode(t, err, 2)
	assert.NoFileExists(t, filepath.Join(env.tmpDir, "incidents.db"))
}
