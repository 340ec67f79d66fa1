package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/forgefit/planforge/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoExerciseRepository(db *mongo.Database) *MongoExerciseRepository {
	coll := db.Collection("exercises")

	// Create Index
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mod := mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, mod); err != nil {
		log.Printf("failed to create exercises name index: %v", err)
	}

	return &MongoExerciseRepository{
		collection: coll,
	}
}

func (r *MongoExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	ex.CreatedAt = time.Now()
	ex.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, ex)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewValidationError("exercise name already exists: %s", ex.Name)
		}
		return fmt.Errorf("failed to create exercise: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		ex.ID = oid.Hex()
	}
	return nil
}

func (r *MongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFoundError("exercise", id)
	}

	var ex domain.Exercise
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&ex)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.NewNotFoundError("exercise", id)
		}
		return nil, err
	}
	return &ex, nil
}

func (r *MongoExerciseRepository) List(ctx context.Context, filter map[string]interface{}) ([]*domain.Exercise, error) {
	query := bson.M{}
	if name, ok := filter["name"].(string); ok && name != "" {
		query["name"] = bson.M{"$regex": name, "$options": "i"}
	}
	if group, ok := filter["muscle_group"].(string); ok && group != "" {
		query["muscle_group"] = group
	}
	if equipment, ok := filter["equipment"].(string); ok && equipment != "" {
		query["equipment"] = equipment
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []*domain.Exercise
	if err := cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *MongoExerciseRepository) Update(ctx context.Context, ex *domain.Exercise) error {
	oid, err := primitive.ObjectIDFromHex(ex.ID)
	if err != nil {
		return domain.NewNotFoundError("exercise", ex.ID)
	}
	ex.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":         ex.Name,
			"muscle_group": ex.MuscleGroup,
			"equipment":    ex.Equipment,
			"instructions": ex.Instructions,
			"video_url":    ex.VideoURL,
			"image_url":    ex.ImageURL,
			"updated_at":   ex.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("exercise", ex.ID)
	}
	return nil
}

func (r *MongoExerciseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFoundError("exercise", id)
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.NewNotFoundError("exercise", id)
	}
	return nil
}
