package server

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/forgefit/planforge/internal/config"
	"github.com/forgefit/planforge/internal/domain"
	"github.com/forgefit/planforge/internal/handler"
	"github.com/forgefit/planforge/internal/middleware"
	"github.com/forgefit/planforge/internal/relation"
	"github.com/forgefit/planforge/internal/repository"
	"github.com/forgefit/planforge/internal/service"
	"github.com/forgefit/planforge/internal/telemetry"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoClient *mongo.Client
	MongoDB     *mongo.Database
	RedisClient *redis.Client
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	appLogger := log.New(os.Stdout, "[planforge] ", log.LstdFlags)

	// Initialize repositories
	planRepo := repository.NewMongoWorkoutPlanRepository(deps.MongoDB)
	linkRepo := repository.NewMongoWorkoutExerciseRepository(deps.MongoDB)
	exerciseRepo := repository.NewMongoExerciseRepository(deps.MongoDB)
	tagRepo := repository.NewMongoTagRepository(deps.MongoDB)
	muscleGroupRepo := repository.NewMongoMuscleGroupRepository(deps.MongoDB)
	equipmentRepo := repository.NewMongoEquipmentRepository(deps.MongoDB)
	cacheStore := repository.NewRedisCacheStore(deps.RedisClient)

	var txn domain.TransactionRunner
	if deps.Config.MongoDB.Transactions {
		txn = repository.NewMongoTransactionRunner(deps.MongoClient)
	} else {
		txn = repository.NewSequentialRunner()
	}

	// Media storage is optional; the exercise service degrades gracefully
	// when it is absent.
	var mediaRepo domain.FileRepository
	if deps.Config.S3.Enabled {
		s3Repo, err := repository.NewMediaS3Repository(context.Background(), deps.Config.S3)
		if err != nil {
			log.Printf("Warning: Failed to initialize S3 repository: %v", err)
		} else {
			mediaRepo = s3Repo
		}
	}

	relations := relation.NewPlanRelations(planRepo, tagRepo, muscleGroupRepo, equipmentRepo)

	// Initialize services
	planService := service.NewWorkoutPlanService(
		planRepo,
		linkRepo,
		relations,
		cacheStore,
		txn,
		appLogger,
		deps.Config.Cache.TTL,
		deps.Config.Cache.SlowOpThreshold,
	)
	exerciseService := service.NewExerciseService(exerciseRepo, mediaRepo, appLogger)

	// Initialize handlers
	planHandler := handler.NewWorkoutPlanHandler(planService)
	exerciseHandler := handler.NewExerciseHandler(exerciseService, deps.Config.Server.MaxUploadSizeMB)

	app := fiber.New(fiber.Config{
		AppName:      "PlanForge API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "planforge",
		})
	})

	// Auth provider selection: HMAC JWT by default, Firebase when configured.
	// OptionalAuth is JWT-only; with Firebase, read endpoints stay anonymous
	// unless the full middleware runs.
	requireAuth := middleware.VerifyPlanForgeToken(deps.Config.JWT.Secret)
	optionalAuth := middleware.OptionalAuth(deps.Config.JWT.Secret)
	if deps.Config.Auth.Provider == "firebase" {
		firebaseApp, err := middleware.InitFirebase(
			deps.Config.Firebase.ProjectID,
			deps.Config.Firebase.PrivateKey,
			deps.Config.Firebase.ClientEmail,
		)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		requireAuth = middleware.FirebaseAuth(firebaseApp)
		optionalAuth = func(c *fiber.Ctx) error { return c.Next() }
	}
	idempotency := middleware.IdempotencyMiddleware(deps.RedisClient, 24*time.Hour)

	v1 := app.Group("/api/v1")

	// ===========================================
	// WORKOUT PLANS API
	// ===========================================
	// Reads are public (anonymous callers see system plans only);
	// every mutation requires a verified user.
	plans := v1.Group("/workout-plans")
	plans.Get("/", optionalAuth, planHandler.GetWorkoutPlans)
	plans.Get("/:id", optionalAuth, planHandler.GetWorkoutPlanByID)

	plans.Post("/", requireAuth, idempotency, planHandler.CreateWorkoutPlan)
	plans.Patch("/:id", requireAuth, idempotency, planHandler.UpdateWorkoutPlan)
	plans.Delete("/:id", requireAuth, planHandler.DeleteWorkoutPlan)

	plans.Post("/:id/exercises", requireAuth, idempotency, planHandler.AddExercise)
	plans.Put("/:id/exercises/reorder", requireAuth, idempotency, planHandler.ReorderExercises)
	plans.Patch("/:id/exercises/:exerciseId", requireAuth, idempotency, planHandler.UpdateExercise)
	plans.Delete("/:id/exercises/:exerciseId", requireAuth, planHandler.RemoveExercise)

	// ===========================================
	// EXERCISE LIBRARY API
	// ===========================================
	// Public Read, Admin Write
	v1.Get("/exercises", exerciseHandler.ListExercises)
	v1.Get("/exercises/:id", exerciseHandler.GetExercise)

	adminEx := v1.Group("/exercises")
	adminEx.Use(requireAuth)
	adminEx.Use(middleware.AuthorizeRole("admin"))
	adminEx.Post("/", exerciseHandler.CreateExercise)
	adminEx.Patch("/:id", exerciseHandler.UpdateExercise)
	adminEx.Delete("/:id", exerciseHandler.DeleteExercise)
	adminEx.Post("/:id/media", exerciseHandler.UploadMedia)

	return app
}

// customErrorHandler maps the domain error taxonomy onto HTTP status codes.
// ServiceError details stay in the logs; clients get a generic message.
func customErrorHandler(c *fiber.Ctx, err error) error {
	var (
		validationErr    *domain.ValidationError
		notFoundErr      *domain.NotFoundError
		authorizationErr *domain.AuthorizationError
		serviceErr       *domain.ServiceError
		fiberErr         *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.As(err, &authorizationErr):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": authorizationErr.Error()})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
	case errors.As(err, &serviceErr):
		log.Printf("Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
