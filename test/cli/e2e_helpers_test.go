package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/incidents/cli"
	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/storage"
	"github.com/opsdesk/incidents/tui"
)

var baseDate = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	t          *testing.T
	tmpDir     string
	dbPath     string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, "")
}

func newTestEnvWithConfig(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "incidents.db")
	configPath := filepath.Join(tmpDir, "config.yaml")

	if configYAML == "" {
		configYAML = fmt.Sprintf(`storage:
  driver: sqlite
  path: %s
display:
  colors: never
  timezone: utc
`, dbPath)
	}

	err := os.WriteFile(configPath, []byte(configYAML), 0o600)
	require.NoError(t, err)

	return &testEnv{
		t:          t,
		tmpDir:     tmpDir,
		dbPath:     dbPath,
		configPath: configPath,
	}
}

func (env *testEnv) run(args ...string) (stdout, stderr string, err error) {
	env.t.Helper()

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)

	fullArgs := append([]string{"--config", env.configPath, "--no-color"}, args...)
	rootCmd.SetArgs(fullArgs)
	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func (env *testEnv) openStore() (storage.Store, func()) {
	env.t.Helper()

	store, err := storage.NewSQLiteStore(env.dbPath)
	require.NoError(env.t, err)
	err = store.Init(context.Background())
	require.NoError(env.t, err)

	return store, func() {
		err := store.Close()
		require.NoError(env.t, err)
	}
}

func (env *testEnv) seedStore(fn func(ctx context.Context, store storage.Store)) {
	env.t.Helper()

	store, cleanup := env.openStore()
	defer cleanup()

	fn(context.Background(), store)
}

// seedIncidents creates one incident per input and returns them in
// creation order.
func (env *testEnv) seedIncidents(inputs ...incident.Input) []*incident.Incident {
	env.t.Helper()

	var created []*incident.Incident
	env.seedStore(func(ctx context.Context, store storage.Store) {
		for _, in := range inputs {
			inc, err := store.Create(ctx, in)
			require.NoError(env.t, err)
			created = append(created, inc)
		}
	})
	return created
}

// seedMixed seeds four incidents covering every type and three statuses.
func seedMixed(env *testEnv) []*incident.Incident {
	inactive := false
	return env.seedIncidents(
		incident.Input{Date: baseDate, Type: incident.TypeFailure, Description: "Conveyor stopped", Responsible: "Ana Soto"},
		incident.Input{Date: baseDate.Add(time.Hour), Type: incident.TypeSecurity, Status: incident.StatusInProgress,
			Description: "Badge reader bypassed", Responsible: "Juan Pérez"},
		incident.Input{Date: baseDate.Add(2 * time.Hour), Type: incident.TypeOperation, Status: incident.StatusResolved,
			Description: "Pump pressure dropped", Responsible: "Ana Soto"},
		incident.Input{Date: baseDate.Add(3 * time.Hour), Type: incident.TypeOther,
			Description: "Forklift battery swapped", Responsible: "Luis Vega", IsActive: &inactive},
	)
}

func (env *testEnv) count(filter *incident.Filter) int {
	env.t.Helper()

	var n int
	env.seedStore(func(ctx context.Context, store storage.Store) {
		var err error
		n, err = store.Filter(filter).Count(ctx)
		require.NoError(env.t, err)
	})
	return n
}

// --- Assertion helpers ---

func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()

	require.Error(t, err)
	var ec cli.ExitCoder
	require.True(t, errors.As(err, &ec), "error %v carries no exit code", err)
	assert.Equal(t, code, ec.ExitCode())
}

func decodeIncidents(t *testing.T, stdout string) []tui.IncidentView {
	t.Helper()

	var views []tui.IncidentView
	require.NoError(t, json.Unmarshal([]byte(stdout), &views))
	return views
}

func decodeIncident(t *testing.T, stdout string) tui.IncidentView {
	t.Helper()

	var view tui.IncidentView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	return view
}

func incidentIDs(views []tui.IncidentView) []int64 {
	ids := make([]int64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}
