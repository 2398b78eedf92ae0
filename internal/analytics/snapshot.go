// Package analytics derives training statistics from a workout collection.
// Compute is a pure function of the records and the reference time; nothing
// here caches or mutates state.
package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/mlenoir/octogym-cli/internal/domain"
)

// DailyGoalMinutes is the daily activity target the goal bar measures
// against.
const DailyGoalMinutes = 30

const weeklyDays = 7

const isoDate = "2006-01-02"

type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
	IntensityOther  Intensity = "Other"
)

// ClassifyIntensity maps a free-text intensity label onto one of the four
// categories by case-insensitive prefix match on the trimmed label.
func ClassifyIntensity(label string) Intensity {
	normalized := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.HasPrefix(normalized, "low"):
		return IntensityLow
	case strings.HasPrefix(normalized, "med"):
		return IntensityMedium
	case strings.HasPrefix(normalized, "high"):
		return IntensityHigh
	default:
		return IntensityOther
	}
}

type DayMinutes struct {
	Label   string
	Date    string
	Minutes int
}

type IntensityMinutes struct {
	Category Intensity
	Minutes  int
}

type Snapshot struct {
	TotalWorkouts          int
	TotalMinutes           int
	AverageDurationMinutes int
	TodaysMinutes          int
	GoalProgressPercent    int
	WeeklySeries           []DayMinutes
	IntensityBreakdown     []IntensityMinutes
	StreakDays             int
}

// Compute builds the full snapshot from the given records. WeeklySeries
// always has exactly seven entries, oldest first, ending on the calendar day
// of now. Records whose date does not match any of those days (including
// missing or unparseable dates) still count toward the lifetime totals but
// never toward the series.
func Compute(records []domain.Workout, now time.Time) Snapshot {
	today := midnight(now)

	totalMinutes := 0
	minutesByDate := make(map[string]int, len(records))
	minutesByIntensity := map[Intensity]int{}
	for _, record := range records {
		totalMinutes += record.DurationMinutes
		minutesByDate[record.Date] += record.DurationMinutes
		minutesByIntensity[ClassifyIntensity(record.Intensity)] += record.DurationMinutes
	}

	average := 0
	if len(records) > 0 {
		average = int(math.Round(float64(totalMinutes) / float64(len(records))))
	}

	series := make([]DayMinutes, 0, weeklyDays)
	for offset := weeklyDays - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		date := day.Format(isoDate)
		series = append(series, DayMinutes{
			Label:   day.Format("Mon"),
			Date:    date,
			Minutes: minutesByDate[date],
		})
	}

	todaysMinutes := minutesByDate[today.Format(isoDate)]

	breakdown := make([]IntensityMinutes, 0, 4)
	for _, category := range []Intensity{IntensityLow, IntensityMedium, IntensityHigh, IntensityOther} {
		if minutes := minutesByIntensity[category]; minutes > 0 {
			breakdown = append(breakdown, IntensityMinutes{Category: category, Minutes: minutes})
		}
	}

	return Snapshot{
		TotalWorkouts:          len(records),
		TotalMinutes:           totalMinutes,
		AverageDurationMinutes: average,
		TodaysMinutes:          todaysMinutes,
		GoalProgressPercent:    goalProgress(todaysMinutes),
		WeeklySeries:           series,
		IntensityBreakdown:     breakdown,
		StreakDays:             streak(series),
	}
}

// goalProgress clamps before rounding so an overshoot day still reads 100.
func goalProgress(todaysMinutes int) int {
	ratio := float64(todaysMinutes) / float64(DailyGoalMinutes) * 100
	return int(math.Round(math.Min(100, ratio)))
}

// streak counts consecutive active days scanning backward from today and
// stops at the first zero-minute day.
func streak(series []DayMinutes) int {
	count := 0
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].Minutes == 0 {
			break
		}
		count++
	}
	return count
}

func midnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
