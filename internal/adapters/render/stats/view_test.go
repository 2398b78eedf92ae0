package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlenoir/octogym-cli/internal/analytics"
	"github.com/mlenoir/octogym-cli/internal/domain"
)

func TestRenderSnapshotWithActivity(t *testing.T) {
	now := time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)
	snapshot := analytics.Compute([]domain.Workout{
		{ID: 1, Type: "Jogging", DurationMinutes: 30, Intensity: "Medium", Date: "2026-03-14"},
		{ID: 2, Type: "Yoga", DurationMinutes: 20, Intensity: "Low", Date: "2026-03-13"},
	}, now)

	output, err := Render(snapshot, RenderOptions{Email: "octo@gym.se"})
	require.NoError(t, err)

	assert.Contains(t, output, "OctoGym Training Stats")
	assert.Contains(t, output, "octo@gym.se | workouts: 2")
	assert.Contains(t, output, "total minutes: 50")
	assert.Contains(t, output, "average duration: 25 min")
	assert.Contains(t, output, "today: 30 / 30 min")
	assert.Contains(t, output, "100%")
	assert.Contains(t, output, "last 7 days:")
	assert.Contains(t, output, "Sat")
	assert.Contains(t, output, "streak: 2 day(s)")
	assert.Contains(t, output, "intensity mix:")
	assert.Contains(t, output, "Medium: 30 min")
	assert.Contains(t, output, "Low: 20 min")
	assert.Contains(t, output, "[")
	assert.Contains(t, output, "]")
}

func TestRenderEmptySnapshot(t *testing.T) {
	now := time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)
	snapshot := analytics.Compute(nil, now)

	output, err := Render(snapshot, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "workouts: 0")
	assert.Contains(t, output, "No workouts yet.")
	assert.NotContains(t, output, "streak:")
	assert.NotContains(t, output, "intensity mix:")
}
