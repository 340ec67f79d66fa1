package domain

import (
	"context"
	"time"
)

// Tag labels a plan with a fitness goal or theme (e.g. "hypertrophy", "mobility").
type Tag struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Slug      string    `json:"slug" bson:"slug"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// MuscleGroup is a target muscle group referenced by plans and exercises.
type MuscleGroup struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Name       string    `json:"name" bson:"name"`
	BodyRegion string    `json:"body_region" bson:"body_region"` // e.g. "upper", "lower", "core"
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Equipment is a piece of equipment a plan requires.
type Equipment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"` // e.g. "free_weights", "machine", "bodyweight"
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	FindByIDs(ctx context.Context, ids []string) ([]*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
}

type MuscleGroupRepository interface {
	Create(ctx context.Context, group *MuscleGroup) error
	FindByIDs(ctx context.Context, ids []string) ([]*MuscleGroup, error)
	List(ctx context.Context) ([]*MuscleGroup, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, equipment *Equipment) error
	FindByIDs(ctx context.Context, ids []string) ([]*Equipment, error)
	List(ctx context.Context) ([]*Equipment, error)
}
