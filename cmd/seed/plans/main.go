package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forgefit/planforge/internal/config"
	"github.com/forgefit/planforge/internal/domain"
	"github.com/forgefit/planforge/internal/relation"
	"github.com/forgefit/planforge/internal/repository"
	"github.com/forgefit/planforge/internal/service"
)

// Seeds reference data, the exercise library and a starter set of system
// plans. System plans are created with no user context, so they come out
// non-custom and publicly visible. Safe to re-run: existing exercises are
// skipped on the unique-name index, plans are skipped by name lookup.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()

	db := client.Database(cfg.MongoDB.Database)

	tagRepo := repository.NewMongoTagRepository(db)
	muscleGroupRepo := repository.NewMongoMuscleGroupRepository(db)
	equipmentRepo := repository.NewMongoEquipmentRepository(db)
	exerciseRepo := repository.NewMongoExerciseRepository(db)
	planRepo := repository.NewMongoWorkoutPlanRepository(db)
	linkRepo := repository.NewMongoWorkoutExerciseRepository(db)

	tags := seedTags(ctx, tagRepo)
	seedMuscleGroups(ctx, muscleGroupRepo)
	seedEquipment(ctx, equipmentRepo)
	exercises := seedExercises(ctx, exerciseRepo)

	planService := service.NewWorkoutPlanService(
		planRepo,
		linkRepo,
		relation.NewPlanRelations(planRepo, tagRepo, muscleGroupRepo, equipmentRepo),
		repository.NewRedisCacheStore(redisClient),
		repository.NewSequentialRunner(),
		log.New(os.Stdout, "[seed] ", log.LstdFlags),
		cfg.Cache.TTL,
		0,
	)

	seedPlans(ctx, planService, planRepo, tags, exercises)

	log.Println("✓ Seeding complete")
}

func seedTags(ctx context.Context, repo domain.TagRepository) map[string]string {
	wanted := []domain.Tag{
		{Name: "Hypertrophy", Slug: "hypertrophy"},
		{Name: "Strength", Slug: "strength"},
		{Name: "Fat Loss", Slug: "fat-loss"},
		{Name: "Mobility", Slug: "mobility"},
		{Name: "Home Friendly", Slug: "home-friendly"},
	}

	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list tags: %v", err)
	}
	bySlug := make(map[string]string, len(existing))
	for _, t := range existing {
		bySlug[t.Slug] = t.ID
	}

	for _, tag := range wanted {
		if _, ok := bySlug[tag.Slug]; ok {
			continue
		}
		t := tag
		if err := repo.Create(ctx, &t); err != nil {
			log.Fatalf("Failed to seed tag %s: %v", t.Slug, err)
		}
		bySlug[t.Slug] = t.ID
		log.Printf("seeded tag %s", t.Slug)
	}
	return bySlug
}

func seedMuscleGroups(ctx context.Context, repo domain.MuscleGroupRepository) {
	wanted := []domain.MuscleGroup{
		{Name: "Chest", BodyRegion: "upper"},
		{Name: "Back", BodyRegion: "upper"},
		{Name: "Shoulders", BodyRegion: "upper"},
		{Name: "Arms", BodyRegion: "upper"},
		{Name: "Quadriceps", BodyRegion: "lower"},
		{Name: "Hamstrings", BodyRegion: "lower"},
		{Name: "Glutes", BodyRegion: "lower"},
		{Name: "Calves", BodyRegion: "lower"},
		{Name: "Abdominals", BodyRegion: "core"},
	}

	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list muscle groups: %v", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, g := range existing {
		byName[g.Name] = true
	}

	for _, group := range wanted {
		if byName[group.Name] {
			continue
		}
		g := group
		if err := repo.Create(ctx, &g); err != nil {
			log.Fatalf("Failed to seed muscle group %s: %v", g.Name, err)
		}
		log.Printf("seeded muscle group %s", g.Name)
	}
}

func seedEquipment(ctx context.Context, repo domain.EquipmentRepository) {
	wanted := []domain.Equipment{
		{Name: "Barbell", Category: "free_weights"},
		{Name: "Dumbbell", Category: "free_weights"},
		{Name: "Kettlebell", Category: "free_weights"},
		{Name: "Cable Machine", Category: "machine"},
		{Name: "Pull-up Bar", Category: "bodyweight"},
		{Name: "Resistance Band", Category: "bodyweight"},
	}

	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list equipment: %v", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, e := range existing {
		byName[e.Name] = true
	}

	for _, equipment := range wanted {
		if byName[equipment.Name] {
			continue
		}
		e := equipment
		if err := repo.Create(ctx, &e); err != nil {
			log.Fatalf("Failed to seed equipment %s: %v", e.Name, err)
		}
		log.Printf("seeded equipment %s", e.Name)
	}
}

func seedExercises(ctx context.Context, repo domain.ExerciseRepository) map[string]string {
	wanted := []domain.Exercise{
		{Name: "Barbell Squat", MuscleGroup: "Quadriceps", Equipment: "Barbell"},
		{Name: "Romanian Deadlift", MuscleGroup: "Hamstrings", Equipment: "Barbell"},
		{Name: "Barbell Bench Press", MuscleGroup: "Chest", Equipment: "Barbell"},
		{Name: "Incline Dumbbell Press", MuscleGroup: "Chest", Equipment: "Dumbbell"},
		{Name: "Pull-up", MuscleGroup: "Back", Equipment: "Pull-up Bar"},
		{Name: "Barbell Row", MuscleGroup: "Back", Equipment: "Barbell"},
		{Name: "Overhead Press", MuscleGroup: "Shoulders", Equipment: "Barbell"},
		{Name: "Walking Lunge", MuscleGroup: "Quadriceps", Equipment: "Dumbbell"},
		{Name: "Plank", MuscleGroup: "Abdominals", Equipment: "Bodyweight"},
		{Name: "Glute Bridge", MuscleGroup: "Glutes", Equipment: "Bodyweight"},
	}

	byName := make(map[string]string, len(wanted))
	existing, err := repo.List(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to list exercises: %v", err)
	}
	for _, ex := range existing {
		byName[ex.Name] = ex.ID
	}

	for _, exercise := range wanted {
		if _, ok := byName[exercise.Name]; ok {
			continue
		}
		ex := exercise
		if err := repo.Create(ctx, &ex); err != nil {
			log.Fatalf("Failed to seed exercise %s: %v", ex.Name, err)
		}
		byName[ex.Name] = ex.ID
		log.Printf("seeded exercise %s", ex.Name)
	}
	return byName
}

func seedPlans(
	ctx context.Context,
	planService *service.WorkoutPlanService,
	planRepo domain.WorkoutPlanRepository,
	tags map[string]string,
	exercises map[string]string,
) {
	duration := func(n int) *int { return &n }

	plans := []service.CreateWorkoutPlanInput{
		{
			Name:              "Full Body Foundations",
			Description:       "Three compound movements per session for new lifters.",
			Difficulty:        domain.DifficultyBeginner,
			Category:          domain.CategoryFullBody,
			EstimatedDuration: duration(45),
			FitnessGoals:      []string{"general_fitness"},
			TagIDs:            []string{tags["strength"]},
			Exercises: []service.WorkoutExerciseInput{
				{ExerciseID: exercises["Barbell Squat"]},
				{ExerciseID: exercises["Barbell Bench Press"]},
				{ExerciseID: exercises["Barbell Row"]},
			},
		},
		{
			Name:              "Upper Body Builder",
			Description:       "Pressing and pulling volume for intermediate lifters.",
			Difficulty:        domain.DifficultyIntermediate,
			Category:          domain.CategoryUpperBody,
			EstimatedDuration: duration(60),
			FitnessGoals:      []string{"muscle_gain"},
			TagIDs:            []string{tags["hypertrophy"]},
			Exercises: []service.WorkoutExerciseInput{
				{ExerciseID: exercises["Barbell Bench Press"]},
				{ExerciseID: exercises["Incline Dumbbell Press"]},
				{ExerciseID: exercises["Pull-up"]},
				{ExerciseID: exercises["Overhead Press"]},
			},
		},
		{
			Name:              "Lower Body Strength",
			Description:       "Heavy squat and hinge work with unilateral accessories.",
			Difficulty:        domain.DifficultyAdvanced,
			Category:          domain.CategoryLowerBody,
			EstimatedDuration: duration(75),
			FitnessGoals:      []string{"strength"},
			TagIDs:            []string{tags["strength"]},
			Exercises: []service.WorkoutExerciseInput{
				{ExerciseID: exercises["Barbell Squat"]},
				{ExerciseID: exercises["Romanian Deadlift"]},
				{ExerciseID: exercises["Walking Lunge"]},
				{ExerciseID: exercises["Glute Bridge"]},
			},
		},
	}

	existing, _, err := planRepo.FindWithFilters(ctx, domain.WorkoutPlanFilter{Limit: 200})
	if err != nil {
		log.Fatalf("Failed to list plans: %v", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, p := range existing {
		byName[p.Name] = true
	}

	for _, input := range plans {
		if byName[input.Name] {
			continue
		}
		// Empty userID: administrative path, creates a system plan.
		if _, err := planService.CreateWorkoutPlan(ctx, input, ""); err != nil {
			log.Fatalf("Failed to seed plan %s: %v", input.Name, err)
		}
		log.Printf("seeded plan %s", input.Name)
	}
}
