package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/forgefit/planforge/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Reference repositories back the plan relations (tags, muscle groups,
// equipment). FindByIDs is the hot path: the relation loader feeds it the id
// sets projected off plan documents.

func hexToObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}

// --- Tags ---

type MongoTagRepository struct {
	collection *mongo.Collection
}

func NewMongoTagRepository(db *mongo.Database) *MongoTagRepository {
	return &MongoTagRepository{collection: db.Collection("tags")}
}

func (r *MongoTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	tag.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, tag)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tag.ID = oid.Hex()
	}
	return nil
}

func (r *MongoTagRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	oids := hexToObjectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tags []*domain.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *MongoTagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tags []*domain.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// --- Muscle groups ---

type MongoMuscleGroupRepository struct {
	collection *mongo.Collection
}

func NewMongoMuscleGroupRepository(db *mongo.Database) *MongoMuscleGroupRepository {
	return &MongoMuscleGroupRepository{collection: db.Collection("muscle_groups")}
}

func (r *MongoMuscleGroupRepository) Create(ctx context.Context, group *domain.MuscleGroup) error {
	group.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, group)
	if err != nil {
		return fmt.Errorf("failed to create muscle group: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		group.ID = oid.Hex()
	}
	return nil
}

func (r *MongoMuscleGroupRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.MuscleGroup, error) {
	oids := hexToObjectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []*domain.MuscleGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *MongoMuscleGroupRepository) List(ctx context.Context) ([]*domain.MuscleGroup, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []*domain.MuscleGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// --- Equipment ---

type MongoEquipmentRepository struct {
	collection *mongo.Collection
}

func NewMongoEquipmentRepository(db *mongo.Database) *MongoEquipmentRepository {
	return &MongoEquipmentRepository{collection: db.Collection("equipment")}
}

func (r *MongoEquipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) error {
	equipment.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, equipment)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		equipment.ID = oid.Hex()
	}
	return nil
}

func (r *MongoEquipmentRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Equipment, error) {
	oids := hexToObjectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var equipment []*domain.Equipment
	if err := cursor.All(ctx, &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (r *MongoEquipmentRepository) List(ctx context.Context) ([]*domain.Equipment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var equipment []*domain.Equipment
	if err := cursor.All(ctx, &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}
