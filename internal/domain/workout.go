package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type WorkoutID int

// Workout is a single record as held by the remote record store. Date is an
// ISO calendar date ("2006-01-02"); it may be empty for a record the server
// has not dated.
type Workout struct {
	ID              WorkoutID
	Type            string
	DurationMinutes int
	Intensity       string
	Date            string
}

// WorkoutDraft is the user-supplied portion of a record, before the server
// assigns an ID. Date is optional; the server defaults it to today.
type WorkoutDraft struct {
	Type            string
	DurationMinutes int
	Intensity       string
	Date            string
}

func (d WorkoutDraft) Validate() error {
	if strings.TrimSpace(d.Type) == "" {
		return fmt.Errorf("%w: workout type is required", ErrValidation)
	}
	if strings.TrimSpace(d.Intensity) == "" {
		return fmt.Errorf("%w: intensity is required", ErrValidation)
	}
	if d.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must be zero or more minutes", ErrValidation)
	}
	return nil
}

// ParseDurationMinutes coerces free-form duration input into a usable
// minute count.
func ParseDurationMinutes(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: duration is required", ErrValidation)
	}

	minutes, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q is not a whole number of minutes", ErrValidation, raw)
	}
	if minutes < 0 {
		return 0, fmt.Errorf("%w: duration must be zero or more minutes", ErrValidation)
	}

	return minutes, nil
}
