package domain

import (
	"context"
	"time"
)

// WorkoutExercise links an exercise from the library into a plan with its
// prescription (sets, reps or duration, rest). Rows use ULID ids so that
// order ties break by insertion time.
type WorkoutExercise struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	WorkoutPlanID string    `json:"workout_plan_id" bson:"workout_plan_id"`
	ExerciseID    string    `json:"exercise_id" bson:"exercise_id"`
	Order         int       `json:"order" bson:"order"`
	Sets          int       `json:"sets" bson:"sets"`
	Repetitions   int       `json:"repetitions" bson:"repetitions"`
	Duration      int       `json:"duration" bson:"duration"` // seconds
	RestTime      int       `json:"rest_time" bson:"rest_time"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate enforces the link-row invariants: an exercise must be referenced,
// prescribe at least one set, and be rep-based or time-based (or both).
func (e *WorkoutExercise) Validate() error {
	if e.ExerciseID == "" {
		return NewValidationError("exercise_id is required")
	}
	if e.Sets < 1 {
		return NewValidationError("sets must be at least 1")
	}
	if e.Repetitions < 0 || e.Duration < 0 || e.RestTime < 0 {
		return NewValidationError("repetitions, duration and rest_time must not be negative")
	}
	if e.Repetitions == 0 && e.Duration == 0 {
		return NewValidationError("an exercise must be rep-based or time-based: repetitions and duration cannot both be zero")
	}
	return nil
}

// WorkoutExerciseUpdate carries a partial update of a link row.
type WorkoutExerciseUpdate struct {
	ExerciseID  *string `bson:"exercise_id,omitempty"`
	Order       *int    `bson:"order,omitempty"`
	Sets        *int    `bson:"sets,omitempty"`
	Repetitions *int    `bson:"repetitions,omitempty"`
	Duration    *int    `bson:"duration,omitempty"`
	RestTime    *int    `bson:"rest_time,omitempty"`
	Notes       *string `bson:"notes,omitempty"`
}

// ApplyTo merges the provided fields onto the link, mirroring what the
// repository's $set does. Callers use it to validate the merged row before
// persisting a partial update.
func (u *WorkoutExerciseUpdate) ApplyTo(link *WorkoutExercise) {
	if u.ExerciseID != nil {
		link.ExerciseID = *u.ExerciseID
	}
	if u.Order != nil {
		link.Order = *u.Order
	}
	if u.Sets != nil {
		link.Sets = *u.Sets
	}
	if u.Repetitions != nil {
		link.Repetitions = *u.Repetitions
	}
	if u.Duration != nil {
		link.Duration = *u.Duration
	}
	if u.RestTime != nil {
		link.RestTime = *u.RestTime
	}
	if u.Notes != nil {
		link.Notes = *u.Notes
	}
}

type WorkoutExerciseRepository interface {
	Create(ctx context.Context, link *WorkoutExercise) error
	FindByID(ctx context.Context, id string) (*WorkoutExercise, error)
	Update(ctx context.Context, id string, update *WorkoutExerciseUpdate) error
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
	// FindByWorkoutPlan returns the plan's links sorted by order, ties broken by id.
	FindByWorkoutPlan(ctx context.Context, workoutPlanID string) ([]*WorkoutExercise, error)
	DeleteByWorkoutPlan(ctx context.Context, workoutPlanID string) error
}
