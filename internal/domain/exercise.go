package domain

import (
	"context"
	"time"
)

// Exercise represents a move in the global library
type Exercise struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"` // Unique Index
	MuscleGroup  string    `json:"muscle_group" bson:"muscle_group"`
	Equipment    string    `json:"equipment" bson:"equipment"`
	Instructions string    `json:"instructions,omitempty" bson:"instructions,omitempty"`
	VideoURL     string    `json:"video_url,omitempty" bson:"video_url,omitempty"`
	ImageURL     string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *Exercise) error
	GetByID(ctx context.Context, id string) (*Exercise, error)
	List(ctx context.Context, filter map[string]interface{}) ([]*Exercise, error)
	Update(ctx context.Context, exercise *Exercise) error
	Delete(ctx context.Context, id string) error
}
