package repository

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forgefit/planforge/internal/domain"
)

// setupTestDB spins up a fresh MongoDB container and returns the database
// connection along with a cleanup function.
func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	mongodbContainer, err := mongodb.Run(ctx, "mongo:latest")
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}

	endpoint, err := mongodbContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	return mongoClient.Database("planforge_test"), func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("failed to disconnect mongo: %v", err)
		}
		if err := mongodbContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %v", err)
		}
	}
}

func TestMongoWorkoutPlanRepositoryCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewMongoWorkoutPlanRepository(db)

	plan := &domain.WorkoutPlan{
		Name:              "Full Body Foundations",
		Description:       "Compound basics",
		Difficulty:        domain.DifficultyBeginner,
		Category:          domain.CategoryFullBody,
		EstimatedDuration: 45,
		TagIDs:            []string{"t1", "t2"},
	}
	require.NoError(t, repo.Create(ctx, plan))
	require.NotEmpty(t, plan.ID)

	got, err := repo.FindByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Name, got.Name)
	assert.Equal(t, []string{"t1", "t2"}, got.TagIDs)
	assert.False(t, got.CreatedAt.IsZero())

	// Partial update leaves unset fields alone.
	name := "Renamed"
	require.NoError(t, repo.Update(ctx, plan.ID, &domain.WorkoutPlanUpdate{Name: &name}))
	got, err = repo.FindByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "Compound basics", got.Description)
	assert.Equal(t, 45, got.EstimatedDuration)

	require.NoError(t, repo.Delete(ctx, plan.ID))

	var nf *domain.NotFoundError
	_, err = repo.FindByID(ctx, plan.ID)
	assert.ErrorAs(t, err, &nf)

	// Malformed and absent ids both surface as NotFound.
	_, err = repo.FindByID(ctx, "not-a-hex-id")
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, repo.Update(ctx, plan.ID, &domain.WorkoutPlanUpdate{Name: &name}), &nf)
	assert.ErrorAs(t, repo.Delete(ctx, plan.ID), &nf)
}

func TestMongoWorkoutPlanRepositoryFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewMongoWorkoutPlanRepository(db)

	seed := []*domain.WorkoutPlan{
		{Name: "Beginner Full Body", Description: "a", Difficulty: domain.DifficultyBeginner, Category: domain.CategoryFullBody, EstimatedDuration: 30},
		{Name: "Advanced Push", Description: "b", Difficulty: domain.DifficultyAdvanced, Category: domain.CategoryPush, EstimatedDuration: 75},
		{Name: "Custom Pull", Description: "c", Difficulty: domain.DifficultyIntermediate, Category: domain.CategoryPull, EstimatedDuration: 60, IsCustom: true, CreatorID: "u1"},
	}
	for _, p := range seed {
		require.NoError(t, repo.Create(ctx, p))
	}

	plans, total, err := repo.FindWithFilters(ctx, domain.WorkoutPlanFilter{Difficulty: domain.DifficultyBeginner})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, plans, 1)
	assert.Equal(t, "Beginner Full Body", plans[0].Name)

	plans, total, err = repo.FindWithFilters(ctx, domain.WorkoutPlanFilter{CreatorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.True(t, plans[0].IsCustom)

	minDur, maxDur := 50, 80
	_, total, err = repo.FindWithFilters(ctx, domain.WorkoutPlanFilter{MinDuration: &minDur, MaxDuration: &maxDur})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Case-insensitive search over name and description.
	_, total, err = repo.FindWithFilters(ctx, domain.WorkoutPlanFilter{Search: "push"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Pagination: total reflects all matches, not the page.
	page, total, err := repo.FindWithFilters(ctx, domain.WorkoutPlanFilter{Limit: 2, SortBy: "name", SortOrder: domain.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "Advanced Push", page[0].Name)
}

func TestBuildPlanQueryCategoryFilters(t *testing.T) {
	q := buildPlanQuery(domain.WorkoutPlanFilter{Category: domain.CategoryPush})
	assert.Equal(t, domain.CategoryPush, q["category"])

	q = buildPlanQuery(domain.WorkoutPlanFilter{CategoryIDs: []string{"PUSH", "PULL"}})
	assert.Equal(t, bson.M{"$in": []string{"PUSH", "PULL"}}, q["category"])

	// Both at once: the scalar joins the id set instead of being overwritten.
	q = buildPlanQuery(domain.WorkoutPlanFilter{
		Category:    domain.CategoryLegs,
		CategoryIDs: []string{"PUSH"},
	})
	assert.Equal(t, bson.M{"$in": []string{"LEGS", "PUSH"}}, q["category"])
}

func TestMongoWorkoutExerciseRepositoryOrdering(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewMongoWorkoutExerciseRepository(db)

	mk := func(exerciseID string, order int) *domain.WorkoutExercise {
		link := &domain.WorkoutExercise{
			WorkoutPlanID: "plan1",
			ExerciseID:    exerciseID,
			Order:         order,
			Sets:          3,
			Repetitions:   10,
		}
		require.NoError(t, repo.Create(ctx, link))
		require.NotEmpty(t, link.ID)
		return link
	}

	// Same order value: insertion sequence decides, because ULIDs are
	// lexically monotonic.
	a := mk("ex-a", 1)
	b := mk("ex-b", 0)
	c := mk("ex-c", 1)

	links, err := repo.FindByWorkoutPlan(ctx, "plan1")
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, b.ID, links[0].ID)
	assert.Equal(t, a.ID, links[1].ID)
	assert.Equal(t, c.ID, links[2].ID)

	require.NoError(t, repo.UpdateOrder(ctx, a.ID, 5))
	links, err = repo.FindByWorkoutPlan(ctx, "plan1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, links[2].ID)

	require.NoError(t, repo.DeleteByWorkoutPlan(ctx, "plan1"))
	links, err = repo.FindByWorkoutPlan(ctx, "plan1")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestMongoPlanRelationProjections(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewMongoWorkoutPlanRepository(db)

	p1 := &domain.WorkoutPlan{Name: "A", Description: "d", TagIDs: []string{"t1", "t2"}}
	p2 := &domain.WorkoutPlan{Name: "B", Description: "d", TagIDs: []string{"t2"}}
	p3 := &domain.WorkoutPlan{Name: "C", Description: "d"}
	for _, p := range []*domain.WorkoutPlan{p1, p2, p3} {
		require.NoError(t, repo.Create(ctx, p))
	}

	ids, err := repo.RelationIDs(ctx, p1.ID, "tag_ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, ids)

	byPlan, err := repo.RelationIDsBatch(ctx, []string{p1.ID, p2.ID, p3.ID}, "tag_ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, byPlan[p1.ID])
	assert.Equal(t, []string{"t2"}, byPlan[p2.ID])
	assert.Empty(t, byPlan[p3.ID])
}

func TestMongoReferenceRepositoriesFindByIDs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	tagRepo := NewMongoTagRepository(db)

	t1 := &domain.Tag{Name: "Strength", Slug: "strength"}
	t2 := &domain.Tag{Name: "Mobility", Slug: "mobility"}
	require.NoError(t, tagRepo.Create(ctx, t1))
	require.NoError(t, tagRepo.Create(ctx, t2))

	tags, err := tagRepo.FindByIDs(ctx, []string{t1.ID, t2.ID, "ffffffffffffffffffffffff"})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	all, err := tagRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
