package ports

import (
	"context"

	"github.com/mlenoir/octogym-cli/internal/domain"
)

// RecordService is the remote workout record store. Every workout call
// attaches the bearer token; implementations map a 401 onto
// domain.ErrUnauthorized so callers can tear the session down.
type RecordService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	ListWorkouts(ctx context.Context, token string) ([]domain.Workout, error)
	CreateWorkout(ctx context.Context, token string, draft domain.WorkoutDraft) (domain.Workout, error)
	UpdateWorkout(ctx context.Context, token string, id domain.WorkoutID, draft domain.WorkoutDraft) (domain.Workout, error)
	DeleteWorkout(ctx context.Context, token string, id domain.WorkoutID) error
}
