package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mlenoir/octogym-cli/internal/analytics"
	"github.com/mlenoir/octogym-cli/internal/domain"
	"github.com/mlenoir/octogym-cli/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCLI runs one command through a fresh root, the way each process
// invocation would.
func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), err
}

func setupCLI(t *testing.T) *testsupport.RecordStore {
	t.Helper()

	server := testsupport.NewRecordStore()
	t.Cleanup(server.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("OG_API_BASE_URL", server.URL())

	return server
}

func TestRegisterLoginWorkoutFlow(t *testing.T) {
	setupCLI(t)

	out, err := executeCLI(t, "register", "--email", "octo@gym.se", "--password", "hunter2", "--login")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered octo@gym.se")
	assert.Contains(t, out, "Logged in as octo@gym.se (0 workouts)")

	out, err = executeCLI(t, "workout", "add", "--template", "jog", "--duration", "42", "--date", "2026-08-30")
	require.NoError(t, err)
	assert.Contains(t, out, "Added #1 Jogging: 42 min (Medium) on 2026-08-30")

	out, err = executeCLI(t, "workout", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Jogging: 42 min (Medium) on 2026-08-30")

	out, err = executeCLI(t, "workout", "edit", "--id", "1", "--intensity", "High")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated #1 Jogging: 42 min (High) on 2026-08-30")

	out, err = executeCLI(t, "workout", "rm", "--id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted workout #1")

	out, err = executeCLI(t, "workout", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts yet. LOCK IN!")
}

func TestStatsJSON(t *testing.T) {
	setupCLI(t)

	_, err := executeCLI(t, "register", "--email", "octo@gym.se", "--password", "hunter2", "--login")
	require.NoError(t, err)

	_, err = executeCLI(t, "workout", "add", "--type", "Yoga", "--duration", "20", "--intensity", "Low")
	require.NoError(t, err)

	out, err := executeCLI(t, "stats", "--json")
	require.NoError(t, err)

	var snapshot analytics.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snapshot))
	assert.Equal(t, 1, snapshot.TotalWorkouts)
	assert.Equal(t, 20, snapshot.TotalMinutes)
	assert.Equal(t, 20, snapshot.AverageDurationMinutes)
}

func TestWorkoutAddRequiresSession(t *testing.T) {
	setupCLI(t)

	_, err := executeCLI(t, "workout", "add", "--type", "Yoga", "--duration", "20", "--intensity", "Low")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLoginBadCredentials(t *testing.T) {
	setupCLI(t)

	_, err := executeCLI(t, "register", "--email", "octo@gym.se", "--password", "hunter2")
	require.NoError(t, err)

	_, err = executeCLI(t, "login", "--email", "octo@gym.se", "--password", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterConflict(t *testing.T) {
	setupCLI(t)

	_, err := executeCLI(t, "register", "--email", "octo@gym.se", "--password", "hunter2")
	require.NoError(t, err)

	_, err = executeCLI(t, "register", "--email", "octo@gym.se", "--password", "other", "--login")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorContains(t, err, "Email already registered.")
}

func TestSessionPersistsAcrossInvocations(t *testing.T) {
	setupCLI(t)

	_, err := executeCLI(t, "register", "--email", "octo@gym.se", "--password", "hunter2", "--login")
	require.NoError(t, err)

	out, err := executeCLI(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "octo@gym.se")

	_, err = executeCLI(t, "logout")
	require.NoError(t, err)

	out, err = executeCLI(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")
}

func TestRevokedTokenTearsDownSession(t *testing.T) {
	server := setupCLI(t)

	_, err := executeCLI(t, "register", "--email", "octo@gym.se", "--password", "hunter2", "--login")
	require.NoError(t, err)

	server.RevokeTokens()

	_, err = executeCLI(t, "workout", "list")
	require.ErrorIs(t, err, domain.ErrSessionExpired)

	// the stale credential must be gone for the next invocation too
	out, err := executeCLI(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")
}

func TestThemePreference(t *testing.T) {
	setupCLI(t)

	out, err := executeCLI(t, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "light")

	_, err = executeCLI(t, "theme", "dark")
	require.NoError(t, err)

	out, err = executeCLI(t, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")

	_, err = executeCLI(t, "theme", "purple")
	require.Error(t, err)
}
