package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlenoir/octogym-cli/internal/analytics"
)

type RenderOptions struct {
	// Email labels whose training the snapshot describes.
	Email string
}

const (
	goalBarWidth   = 24
	weeklyBarWidth = 20
)

func renderView(snapshot analytics.Snapshot, opts RenderOptions, s styles) string {
	header := fmt.Sprintf("workouts: %d", snapshot.TotalWorkouts)
	if opts.Email != "" {
		header = fmt.Sprintf("%s | workouts: %d", opts.Email, snapshot.TotalWorkouts)
	}

	lines := []string{
		s.title.Render("OctoGym Training Stats"),
		s.header.Render(header),
	}

	if snapshot.TotalWorkouts == 0 {
		lines = append(lines, s.empty.Render("No workouts yet. LOCK IN!"))
	} else {
		lines = append(lines, s.section.Render(renderTotals(snapshot, s)))
	}

	lines = append(lines,
		s.section.Render(renderGoal(snapshot, s)),
		s.section.Render(renderWeek(snapshot, s)),
	)

	if len(snapshot.IntensityBreakdown) > 0 {
		lines = append(lines, s.section.Render(renderIntensity(snapshot, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTotals(snapshot analytics.Snapshot, s styles) string {
	rows := []string{
		keyValue(s, "total minutes:", fmt.Sprintf("%d", snapshot.TotalMinutes)),
		keyValue(s, "average duration:", fmt.Sprintf("%d min", snapshot.AverageDurationMinutes)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderGoal(snapshot analytics.Snapshot, s styles) string {
	label := s.key.Render(fmt.Sprintf("today: %d / %d min", snapshot.TodaysMinutes, analytics.DailyGoalMinutes))
	bar := renderBar(float64(snapshot.GoalProgressPercent), 100, goalBarWidth, s)
	percent := s.value.Render(fmt.Sprintf("%d%%", snapshot.GoalProgressPercent))

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", percent)
}

func renderWeek(snapshot analytics.Snapshot, s styles) string {
	maxMinutes := 0
	for _, day := range snapshot.WeeklySeries {
		if day.Minutes > maxMinutes {
			maxMinutes = day.Minutes
		}
	}

	rows := make([]string, 0, len(snapshot.WeeklySeries)+1)
	rows = append(rows, s.key.Render("last 7 days:"))
	for i, day := range snapshot.WeeklySeries {
		labelStyle := s.dayLabel
		if i == len(snapshot.WeeklySeries)-1 {
			labelStyle = s.today
		}
		label := labelStyle.Render(day.Label)
		bar := renderBar(float64(day.Minutes), float64(maxMinutes), weeklyBarWidth, s)
		minutes := s.value.Render(fmt.Sprintf("%3d min", day.Minutes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", minutes))
	}

	if snapshot.StreakDays > 0 {
		rows = append(rows, s.streak.Render(fmt.Sprintf("streak: %d day(s)", snapshot.StreakDays)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderIntensity(snapshot analytics.Snapshot, s styles) string {
	rows := []string{s.key.Render("intensity mix:")}
	for _, entry := range snapshot.IntensityBreakdown {
		rows = append(rows, keyValue(s, fmt.Sprintf("%s:", entry.Category), fmt.Sprintf("%d min", entry.Minutes)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func keyValue(s styles, key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key), " ", s.value.Render(value))
}

func renderBar(value, max float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := 0.0
	if max > 0 {
		fraction = value / max
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(math.Round(float64(width) * fraction))
	if filled > width {
		filled = width
	}
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}
