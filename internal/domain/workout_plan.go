package domain

import (
	"context"
	"time"
)

// Difficulty levels for a workout plan
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

// Category describes which part of the body a plan targets
type Category string

const (
	CategoryFullBody  Category = "FULL_BODY"
	CategoryUpperBody Category = "UPPER_BODY"
	CategoryLowerBody Category = "LOWER_BODY"
	CategoryPush      Category = "PUSH"
	CategoryPull      Category = "PULL"
	CategoryLegs      Category = "LEGS"
	CategoryCore      Category = "CORE"
	CategoryCardio    Category = "CARDIO"
)

// WorkoutPlan is the aggregate root: a plan plus its ordered exercise links.
// Tags, muscle groups and equipment are stored as id sets on the document and
// inflated through the relation loader on read.
type WorkoutPlan struct {
	ID                string     `json:"id" bson:"_id,omitempty"`
	Name              string     `json:"name" bson:"name"`
	Description       string     `json:"description" bson:"description"`
	Difficulty        Difficulty `json:"difficulty" bson:"difficulty"`
	Category          Category   `json:"category" bson:"category"`
	EstimatedDuration int        `json:"estimated_duration" bson:"estimated_duration"` // minutes
	IsCustom          bool       `json:"is_custom" bson:"is_custom"`
	CreatorID         string     `json:"creator_id,omitempty" bson:"creator_id,omitempty"`
	SplitType         string     `json:"split_type,omitempty" bson:"split_type,omitempty"`
	FitnessGoals      []string   `json:"fitness_goals,omitempty" bson:"fitness_goals,omitempty"`
	TagIDs            []string   `json:"tag_ids,omitempty" bson:"tag_ids,omitempty"`
	MuscleGroupIDs    []string   `json:"muscle_group_ids,omitempty" bson:"muscle_group_ids,omitempty"`
	EquipmentIDs      []string   `json:"equipment_ids,omitempty" bson:"equipment_ids,omitempty"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" bson:"updated_at"`

	// Inflated on read, never persisted on the plan document itself.
	Exercises    []*WorkoutExercise `json:"exercises" bson:"-"`
	Tags         []*Tag             `json:"tags,omitempty" bson:"-"`
	MuscleGroups []*MuscleGroup     `json:"target_muscle_groups,omitempty" bson:"-"`
	Equipment    []*Equipment       `json:"equipment_needed,omitempty" bson:"-"`
}

// OwnedBy reports whether userID may mutate this plan. System plans are only
// mutable with no user context (administrative seeding).
func (p *WorkoutPlan) OwnedBy(userID string) bool {
	if userID == "" {
		return true
	}
	if !p.IsCustom {
		return false
	}
	return p.CreatorID == userID
}

// VisibleTo reports whether userID may read this plan. Custom plans are
// private to their creator; system plans are public.
func (p *WorkoutPlan) VisibleTo(userID string) bool {
	if !p.IsCustom {
		return true
	}
	return userID == "" || p.CreatorID == userID
}

// WorkoutPlanUpdate carries a partial scalar update. Nil fields are left
// untouched by the repository.
type WorkoutPlanUpdate struct {
	Name              *string     `bson:"name,omitempty"`
	Description       *string     `bson:"description,omitempty"`
	Difficulty        *Difficulty `bson:"difficulty,omitempty"`
	Category          *Category   `bson:"category,omitempty"`
	EstimatedDuration *int        `bson:"estimated_duration,omitempty"`
	SplitType         *string     `bson:"split_type,omitempty"`
	FitnessGoals      []string    `bson:"fitness_goals,omitempty"`
	TagIDs            []string    `bson:"tag_ids,omitempty"`
	MuscleGroupIDs    []string    `bson:"muscle_group_ids,omitempty"`
	EquipmentIDs      []string    `bson:"equipment_ids,omitempty"`
}

// SortOrder for filtered plan queries
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// WorkoutPlanFilter describes a filtered, paginated plan query.
type WorkoutPlanFilter struct {
	Difficulty    Difficulty
	Category      Category
	IsCustom      *bool
	CreatorID     string
	MinDuration   *int
	MaxDuration   *int
	Search        string
	FitnessGoals  []string
	SplitType     string
	CategoryIDs   []string
	EquipmentIDs  []string
	TagIDs        []string
	UserPlansOnly bool
	Limit         int
	Offset        int
	SortBy        string
	SortOrder     SortOrder
}

// WorkoutPlanPage is the result of a filtered plan query.
type WorkoutPlanPage struct {
	Plans []*WorkoutPlan `json:"plans"`
	Total int64          `json:"total"`
}

type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *WorkoutPlan) error
	FindByID(ctx context.Context, id string) (*WorkoutPlan, error)
	Update(ctx context.Context, id string, update *WorkoutPlanUpdate) error
	// Delete removes the plan and cascades to its exercise links.
	Delete(ctx context.Context, id string) error
	FindWithFilters(ctx context.Context, filter WorkoutPlanFilter) ([]*WorkoutPlan, int64, error)
}
