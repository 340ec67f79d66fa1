package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit/planforge/internal/domain"
)

type fakeExerciseRepo struct {
	seq       int
	exercises map[string]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[string]*domain.Exercise)}
}

func (f *fakeExerciseRepo) Create(_ context.Context, ex *domain.Exercise) error {
	for _, existing := range f.exercises {
		if existing.Name == ex.Name {
			return domain.NewValidationError("exercise %q already exists", ex.Name)
		}
	}
	f.seq++
	ex.ID = "ex-" + ex.Name
	f.exercises[ex.ID] = ex
	return nil
}

func (f *fakeExerciseRepo) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	ex, ok := f.exercises[id]
	if !ok {
		return nil, domain.NewNotFoundError("exercise", id)
	}
	cp := *ex
	return &cp, nil
}

func (f *fakeExerciseRepo) List(_ context.Context, _ map[string]interface{}) ([]*domain.Exercise, error) {
	var out []*domain.Exercise
	for _, ex := range f.exercises {
		out = append(out, ex)
	}
	return out, nil
}

func (f *fakeExerciseRepo) Update(_ context.Context, ex *domain.Exercise) error {
	if _, ok := f.exercises[ex.ID]; !ok {
		return domain.NewNotFoundError("exercise", ex.ID)
	}
	f.exercises[ex.ID] = ex
	return nil
}

func (f *fakeExerciseRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.exercises[id]; !ok {
		return domain.NewNotFoundError("exercise", id)
	}
	delete(f.exercises, id)
	return nil
}

type fakeMediaRepo struct {
	uploads map[string][]byte
	fail    bool
}

func (f *fakeMediaRepo) Upload(_ context.Context, data []byte, key, _ string) (string, error) {
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = data
	return "http://media.local/" + key, nil
}

func (f *fakeMediaRepo) Delete(_ context.Context, key string) error {
	delete(f.uploads, key)
	return nil
}

func newExerciseService(media domain.FileRepository) (*ExerciseService, *fakeExerciseRepo) {
	repo := newFakeExerciseRepo()
	return NewExerciseService(repo, media, log.New(io.Discard, "", 0)), repo
}

func TestCreateExerciseRequiresName(t *testing.T) {
	svc, _ := newExerciseService(nil)

	var ve *domain.ValidationError
	err := svc.CreateExercise(context.Background(), &domain.Exercise{MuscleGroup: "Chest"})
	assert.ErrorAs(t, err, &ve)

	err = svc.CreateExercise(context.Background(), &domain.Exercise{Name: "Push-up", MuscleGroup: "Chest"})
	assert.NoError(t, err)
}

func TestCreateExerciseDuplicateName(t *testing.T) {
	svc, _ := newExerciseService(nil)
	ctx := context.Background()

	require.NoError(t, svc.CreateExercise(ctx, &domain.Exercise{Name: "Push-up"}))

	var ve *domain.ValidationError
	err := svc.CreateExercise(ctx, &domain.Exercise{Name: "Push-up"})
	assert.ErrorAs(t, err, &ve)
}

func TestUploadMedia(t *testing.T) {
	media := &fakeMediaRepo{}
	svc, _ := newExerciseService(media)
	ctx := context.Background()

	ex := &domain.Exercise{Name: "Squat"}
	require.NoError(t, svc.CreateExercise(ctx, ex))

	got, err := svc.UploadMedia(ctx, ex.ID, []byte("png-bytes"), "squat.png", "image/png")
	require.NoError(t, err)
	assert.Contains(t, got.ImageURL, ex.ID)
	assert.Empty(t, got.VideoURL)

	got, err = svc.UploadMedia(ctx, ex.ID, []byte("mp4-bytes"), "squat.mp4", "video/mp4")
	require.NoError(t, err)
	assert.Contains(t, got.VideoURL, ex.ID)
}

func TestUploadMediaErrors(t *testing.T) {
	ctx := context.Background()

	// No media storage configured.
	svc, _ := newExerciseService(nil)
	ex := &domain.Exercise{Name: "Squat"}
	require.NoError(t, svc.CreateExercise(ctx, ex))

	var ve *domain.ValidationError
	_, err := svc.UploadMedia(ctx, ex.ID, []byte("x"), "a.png", "image/png")
	assert.ErrorAs(t, err, &ve)

	// Empty payload.
	svc, _ = newExerciseService(&fakeMediaRepo{})
	require.NoError(t, svc.CreateExercise(ctx, ex))
	_, err = svc.UploadMedia(ctx, ex.ID, nil, "a.png", "image/png")
	assert.ErrorAs(t, err, &ve)

	// Storage failure surfaces as a ServiceError, not a raw SDK error.
	svc, repo := newExerciseService(&fakeMediaRepo{fail: true})
	ex2 := &domain.Exercise{Name: "Bench"}
	require.NoError(t, svc.CreateExercise(ctx, ex2))
	_, err = svc.UploadMedia(ctx, ex2.ID, []byte("x"), "b.png", "image/png")
	var se *domain.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "UploadMedia", se.Op)

	// The library entry was not modified on failure.
	stored, err := repo.GetByID(ctx, ex2.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ImageURL)
}
