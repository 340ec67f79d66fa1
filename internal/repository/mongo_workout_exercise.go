package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"github.com/forgefit/planforge/internal/domain"
	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWorkoutExerciseRepository persists plan exercise links in their own
// collection. Link rows use ULID ids, so sorting by (order, _id) breaks order
// ties by insertion time.
type MongoWorkoutExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutExerciseRepository(db *mongo.Database) *MongoWorkoutExerciseRepository {
	coll := db.Collection("workout_exercises")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mod := mongo.IndexModel{
		Keys: bson.D{{Key: "workout_plan_id", Value: 1}, {Key: "order", Value: 1}},
	}
	if _, err := coll.Indexes().CreateOne(ctx, mod); err != nil {
		log.Printf("failed to create workout_exercises index: %v", err)
	}

	return &MongoWorkoutExerciseRepository{collection: coll}
}

func newLinkID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func (r *MongoWorkoutExerciseRepository) Create(ctx context.Context, link *domain.WorkoutExercise) error {
	if link.ID == "" {
		link.ID = newLinkID()
	}
	link.CreatedAt = time.Now()
	link.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, link); err != nil {
		return fmt.Errorf("failed to create workout exercise: %w", err)
	}
	return nil
}

func (r *MongoWorkoutExerciseRepository) FindByID(ctx context.Context, id string) (*domain.WorkoutExercise, error) {
	var link domain.WorkoutExercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&link)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.NewNotFoundError("workout exercise", id)
		}
		return nil, err
	}
	return &link, nil
}

func (r *MongoWorkoutExerciseRepository) Update(ctx context.Context, id string, update *domain.WorkoutExerciseUpdate) error {
	set := bson.M{"updated_at": time.Now()}
	if update.ExerciseID != nil {
		set["exercise_id"] = *update.ExerciseID
	}
	if update.Order != nil {
		set["order"] = *update.Order
	}
	if update.Sets != nil {
		set["sets"] = *update.Sets
	}
	if update.Repetitions != nil {
		set["repetitions"] = *update.Repetitions
	}
	if update.Duration != nil {
		set["duration"] = *update.Duration
	}
	if update.RestTime != nil {
		set["rest_time"] = *update.RestTime
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update workout exercise: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("workout exercise", id)
	}
	return nil
}

func (r *MongoWorkoutExerciseRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"order": order, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update exercise order: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("workout exercise", id)
	}
	return nil
}

func (r *MongoWorkoutExerciseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete workout exercise: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.NewNotFoundError("workout exercise", id)
	}
	return nil
}

func (r *MongoWorkoutExerciseRepository) FindByWorkoutPlan(ctx context.Context, workoutPlanID string) ([]*domain.WorkoutExercise, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"workout_plan_id": workoutPlanID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []*domain.WorkoutExercise
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (r *MongoWorkoutExerciseRepository) DeleteByWorkoutPlan(ctx context.Context, workoutPlanID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"workout_plan_id": workoutPlanID})
	return err
}
