package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutExerciseValidate(t *testing.T) {
	valid := WorkoutExercise{ExerciseID: "ex1", Sets: 3, Repetitions: 10, RestTime: 30}
	require.NoError(t, valid.Validate())

	timeBased := WorkoutExercise{ExerciseID: "ex1", Sets: 3, Duration: 60}
	require.NoError(t, timeBased.Validate())

	tests := []struct {
		name string
		link WorkoutExercise
	}{
		{"missing exercise id", WorkoutExercise{Sets: 3, Repetitions: 10}},
		{"zero sets", WorkoutExercise{ExerciseID: "ex1", Sets: 0, Repetitions: 10}},
		{"negative repetitions", WorkoutExercise{ExerciseID: "ex1", Sets: 3, Repetitions: -1, Duration: 60}},
		{"negative rest time", WorkoutExercise{ExerciseID: "ex1", Sets: 3, Repetitions: 10, RestTime: -5}},
		{"neither reps nor duration", WorkoutExercise{ExerciseID: "ex1", Sets: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.link.Validate()
			require.Error(t, err)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestWorkoutExerciseUpdateApplyTo(t *testing.T) {
	link := WorkoutExercise{ExerciseID: "ex1", Order: 1, Sets: 3, Repetitions: 10, RestTime: 30, Notes: "keep"}

	reps := 0
	duration := 45
	update := WorkoutExerciseUpdate{Repetitions: &reps, Duration: &duration}
	update.ApplyTo(&link)

	assert.Equal(t, 0, link.Repetitions)
	assert.Equal(t, 45, link.Duration)
	// Nil fields are left alone.
	assert.Equal(t, "ex1", link.ExerciseID)
	assert.Equal(t, 3, link.Sets)
	assert.Equal(t, "keep", link.Notes)
}
