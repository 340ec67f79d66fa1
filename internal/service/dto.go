package service

import (
	"github.com/forgefit/planforge/internal/domain"
)

// WorkoutExerciseInput is one entry of a submitted exercise list. Optional
// prescription fields are pointers so that "absent" and "zero" stay distinct.
type WorkoutExerciseInput struct {
	ID          string  `json:"id,omitempty"`
	ExerciseID  string  `json:"exercise_id"`
	Order       *int    `json:"order,omitempty"`
	Sets        *int    `json:"sets,omitempty"`
	Repetitions *int    `json:"repetitions,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	RestTime    *int    `json:"rest_time,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

const (
	defaultSets              = 3
	defaultRestTime          = 30
	defaultEstimatedDuration = 30
)

// toLink materialises a new link row, applying the documented defaults.
// defaultOrder is the list index on create and 0 on update-path inserts.
func (in WorkoutExerciseInput) toLink(defaultOrder int) *domain.WorkoutExercise {
	link := &domain.WorkoutExercise{
		ExerciseID: in.ExerciseID,
		Order:      defaultOrder,
		Sets:       defaultSets,
		RestTime:   defaultRestTime,
	}
	if in.Order != nil {
		link.Order = *in.Order
	}
	if in.Sets != nil {
		link.Sets = *in.Sets
	}
	if in.Repetitions != nil {
		link.Repetitions = *in.Repetitions
	}
	if in.Duration != nil {
		link.Duration = *in.Duration
	}
	if in.RestTime != nil {
		link.RestTime = *in.RestTime
	}
	if in.Notes != nil {
		link.Notes = *in.Notes
	}
	return link
}

// toUpdate maps the provided fields onto a partial link update.
func (in WorkoutExerciseInput) toUpdate() *domain.WorkoutExerciseUpdate {
	update := &domain.WorkoutExerciseUpdate{
		Order:       in.Order,
		Sets:        in.Sets,
		Repetitions: in.Repetitions,
		Duration:    in.Duration,
		RestTime:    in.RestTime,
		Notes:       in.Notes,
	}
	if in.ExerciseID != "" {
		update.ExerciseID = &in.ExerciseID
	}
	return update
}

// validateMergedLink checks the link invariants against the row as it will
// look once the partial update is applied. A partial update must never leave
// a persisted row that Validate would reject.
func validateMergedLink(link *domain.WorkoutExercise, update *domain.WorkoutExerciseUpdate) error {
	merged := *link
	update.ApplyTo(&merged)
	return merged.Validate()
}

// CreateWorkoutPlanInput carries a validated plan creation payload.
type CreateWorkoutPlanInput struct {
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	Difficulty        domain.Difficulty      `json:"difficulty,omitempty"`
	Category          domain.Category        `json:"category,omitempty"`
	EstimatedDuration *int                   `json:"estimated_duration,omitempty"`
	SplitType         string                 `json:"split_type,omitempty"`
	FitnessGoals      []string               `json:"fitness_goals,omitempty"`
	TagIDs            []string               `json:"tag_ids,omitempty"`
	MuscleGroupIDs    []string               `json:"muscle_group_ids,omitempty"`
	EquipmentIDs      []string               `json:"equipment_ids,omitempty"`
	Exercises         []WorkoutExerciseInput `json:"exercises,omitempty"`
}

// UpdateWorkoutPlanInput carries a partial plan update. A nil Exercises slice
// means "leave the exercise list alone"; a present slice is reconciled against
// the current rows. DeleteOmittedExercises controls whether rows the caller
// did not mention are removed.
type UpdateWorkoutPlanInput struct {
	Name                   *string                 `json:"name,omitempty"`
	Description            *string                 `json:"description,omitempty"`
	Difficulty             *domain.Difficulty      `json:"difficulty,omitempty"`
	Category               *domain.Category        `json:"category,omitempty"`
	EstimatedDuration      *int                    `json:"estimated_duration,omitempty"`
	SplitType              *string                 `json:"split_type,omitempty"`
	FitnessGoals           []string                `json:"fitness_goals,omitempty"`
	TagIDs                 []string                `json:"tag_ids,omitempty"`
	MuscleGroupIDs         []string                `json:"muscle_group_ids,omitempty"`
	EquipmentIDs           []string                `json:"equipment_ids,omitempty"`
	Exercises              *[]WorkoutExerciseInput `json:"exercises,omitempty"`
	DeleteOmittedExercises bool                    `json:"delete_omitted_exercises,omitempty"`
}

func (in UpdateWorkoutPlanInput) scalarUpdate() *domain.WorkoutPlanUpdate {
	return &domain.WorkoutPlanUpdate{
		Name:              in.Name,
		Description:       in.Description,
		Difficulty:        in.Difficulty,
		Category:          in.Category,
		EstimatedDuration: in.EstimatedDuration,
		SplitType:         in.SplitType,
		FitnessGoals:      in.FitnessGoals,
		TagIDs:            in.TagIDs,
		MuscleGroupIDs:    in.MuscleGroupIDs,
		EquipmentIDs:      in.EquipmentIDs,
	}
}

// ExerciseOrderInput is one {id, order} pair of a reorder request.
type ExerciseOrderInput struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
