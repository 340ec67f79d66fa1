package service

import (
	"context"
	"fmt"
	"log"
	"path"

	"github.com/forgefit/planforge/internal/domain"
)

// ExerciseService manages the global exercise library and its demo media.
type ExerciseService struct {
	exercises domain.ExerciseRepository
	media     domain.FileRepository // nil when media storage is not configured
	logger    *log.Logger
}

func NewExerciseService(exercises domain.ExerciseRepository, media domain.FileRepository, logger *log.Logger) *ExerciseService {
	return &ExerciseService{
		exercises: exercises,
		media:     media,
		logger:    logger,
	}
}

func (s *ExerciseService) CreateExercise(ctx context.Context, ex *domain.Exercise) error {
	if ex.Name == "" {
		return domain.NewValidationError("name is required")
	}
	return s.exercises.Create(ctx, ex)
}

func (s *ExerciseService) GetExercise(ctx context.Context, id string) (*domain.Exercise, error) {
	return s.exercises.GetByID(ctx, id)
}

func (s *ExerciseService) ListExercises(ctx context.Context, filter map[string]interface{}) ([]*domain.Exercise, error) {
	return s.exercises.List(ctx, filter)
}

func (s *ExerciseService) UpdateExercise(ctx context.Context, ex *domain.Exercise) error {
	if ex.ID == "" {
		return domain.NewValidationError("id is required")
	}
	return s.exercises.Update(ctx, ex)
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, id string) error {
	return s.exercises.Delete(ctx, id)
}

// UploadMedia stores a demo image or video for an exercise and writes the
// resulting URL back onto the library entry.
func (s *ExerciseService) UploadMedia(ctx context.Context, exerciseID string, file []byte, filename, contentType string) (*domain.Exercise, error) {
	if s.media == nil {
		return nil, domain.NewValidationError("media storage is not configured")
	}
	if len(file) == 0 {
		return nil, domain.NewValidationError("file is empty")
	}

	ex, err := s.exercises.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exercises/%s%s", exerciseID, path.Ext(filename))
	url, err := s.media.Upload(ctx, file, key, contentType)
	if err != nil {
		s.logger.Printf("UploadMedia: upload failed for exercise %s: %v", exerciseID, err)
		return nil, &domain.ServiceError{Op: "UploadMedia", Err: err}
	}

	switch {
	case isVideo(contentType):
		ex.VideoURL = url
	default:
		ex.ImageURL = url
	}

	if err := s.exercises.Update(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func isVideo(contentType string) bool {
	return len(contentType) > 6 && contentType[:6] == "video/"
}
