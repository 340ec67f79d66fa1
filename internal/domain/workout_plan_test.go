package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkoutPlanOwnedBy(t *testing.T) {
	system := &WorkoutPlan{ID: "p1", IsCustom: false}
	custom := &WorkoutPlan{ID: "p2", IsCustom: true, CreatorID: "u1"}

	tests := []struct {
		name   string
		plan   *WorkoutPlan
		userID string
		want   bool
	}{
		{"system plan, administrative context", system, "", true},
		{"system plan, regular user", system, "u1", false},
		{"custom plan, creator", custom, "u1", true},
		{"custom plan, other user", custom, "u2", false},
		{"custom plan, administrative context", custom, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.OwnedBy(tt.userID))
		})
	}
}

func TestWorkoutPlanVisibleTo(t *testing.T) {
	system := &WorkoutPlan{ID: "p1", IsCustom: false}
	custom := &WorkoutPlan{ID: "p2", IsCustom: true, CreatorID: "u1"}

	tests := []struct {
		name   string
		plan   *WorkoutPlan
		userID string
		want   bool
	}{
		{"system plan visible to anyone", system, "u2", true},
		{"system plan visible anonymously", system, "", true},
		{"custom plan visible to creator", custom, "u1", true},
		{"custom plan hidden from others", custom, "u2", false},
		{"custom plan visible to administrative context", custom, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.VisibleTo(tt.userID))
		})
	}
}
