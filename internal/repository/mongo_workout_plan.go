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

// sortFieldMap whitelists the sortable plan fields and maps them to their
// document field names. Anything else falls back to created_at.
var sortFieldMap = map[string]string{
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
	"name":              "name",
	"difficulty":        "difficulty",
	"estimatedDuration": "estimated_duration",
}

const defaultPlanPageSize = 20

type MongoWorkoutPlanRepository struct {
	collection *mongo.Collection
	links      *mongo.Collection
}

func NewMongoWorkoutPlanRepository(db *mongo.Database) *MongoWorkoutPlanRepository {
	coll := db.Collection("workout_plans")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mods := []mongo.IndexModel{
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_custom", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, mods); err != nil {
		log.Printf("failed to create workout_plans indexes: %v", err)
	}

	return &MongoWorkoutPlanRepository{
		collection: coll,
		links:      db.Collection("workout_exercises"),
	}
}

func (r *MongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to create workout plan: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		plan.ID = oid.Hex()
	}
	return nil
}

func (r *MongoWorkoutPlanRepository) FindByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFoundError("workout plan", id)
	}

	var plan domain.WorkoutPlan
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.NewNotFoundError("workout plan", id)
		}
		return nil, err
	}
	return &plan, nil
}

func (r *MongoWorkoutPlanRepository) Update(ctx context.Context, id string, update *domain.WorkoutPlanUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFoundError("workout plan", id)
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Difficulty != nil {
		set["difficulty"] = *update.Difficulty
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.EstimatedDuration != nil {
		set["estimated_duration"] = *update.EstimatedDuration
	}
	if update.SplitType != nil {
		set["split_type"] = *update.SplitType
	}
	if update.FitnessGoals != nil {
		set["fitness_goals"] = update.FitnessGoals
	}
	if update.TagIDs != nil {
		set["tag_ids"] = update.TagIDs
	}
	if update.MuscleGroupIDs != nil {
		set["muscle_group_ids"] = update.MuscleGroupIDs
	}
	if update.EquipmentIDs != nil {
		set["equipment_ids"] = update.EquipmentIDs
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update workout plan: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("workout plan", id)
	}
	return nil
}

// Delete removes the plan document and cascades to its exercise links.
func (r *MongoWorkoutPlanRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFoundError("workout plan", id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete workout plan: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.NewNotFoundError("workout plan", id)
	}

	if _, err := r.links.DeleteMany(ctx, bson.M{"workout_plan_id": id}); err != nil {
		return fmt.Errorf("failed to cascade delete exercise links: %w", err)
	}
	return nil
}

func (r *MongoWorkoutPlanRepository) FindWithFilters(ctx context.Context, filter domain.WorkoutPlanFilter) ([]*domain.WorkoutPlan, int64, error) {
	query := buildPlanQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count workout plans: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPlanPageSize
	}

	sortField, ok := sortFieldMap[filter.SortBy]
	if !ok {
		sortField = "created_at"
	}
	sortDir := -1 // default createdAt DESC
	if filter.SortOrder == domain.SortAsc {
		sortDir = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}, {Key: "_id", Value: sortDir}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query workout plans: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []*domain.WorkoutPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func buildPlanQuery(filter domain.WorkoutPlanFilter) bson.M {
	query := bson.M{}

	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	// Category and CategoryIDs both constrain the same field; when both are
	// present the scalar joins the id set rather than being overwritten.
	switch {
	case filter.Category != "" && len(filter.CategoryIDs) > 0:
		query["category"] = bson.M{"$in": append([]string{string(filter.Category)}, filter.CategoryIDs...)}
	case len(filter.CategoryIDs) > 0:
		query["category"] = bson.M{"$in": filter.CategoryIDs}
	case filter.Category != "":
		query["category"] = filter.Category
	}
	if filter.IsCustom != nil {
		query["is_custom"] = *filter.IsCustom
	}
	if filter.CreatorID != "" {
		query["creator_id"] = filter.CreatorID
	}
	if filter.MinDuration != nil || filter.MaxDuration != nil {
		duration := bson.M{}
		if filter.MinDuration != nil {
			duration["$gte"] = *filter.MinDuration
		}
		if filter.MaxDuration != nil {
			duration["$lte"] = *filter.MaxDuration
		}
		query["estimated_duration"] = duration
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
		}
	}
	if len(filter.FitnessGoals) > 0 {
		query["fitness_goals"] = bson.M{"$in": filter.FitnessGoals}
	}
	if filter.SplitType != "" {
		query["split_type"] = filter.SplitType
	}
	if len(filter.EquipmentIDs) > 0 {
		query["equipment_ids"] = bson.M{"$in": filter.EquipmentIDs}
	}
	if len(filter.TagIDs) > 0 {
		query["tag_ids"] = bson.M{"$in": filter.TagIDs}
	}

	return query
}

// RelationIDs reads a single relation id array off a plan document.
func (r *MongoWorkoutPlanRepository) RelationIDs(ctx context.Context, id, field string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFoundError("workout plan", id)
	}

	opts := options.FindOne().SetProjection(bson.M{field: 1})
	var doc bson.M
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.NewNotFoundError("workout plan", id)
		}
		return nil, err
	}
	return stringArrayField(doc, field), nil
}

// RelationIDsBatch reads a relation id array for many plans in one projection query.
func (r *MongoWorkoutPlanRepository) RelationIDsBatch(ctx context.Context, ids []string, field string) (map[string][]string, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	out := make(map[string][]string, len(ids))
	if len(oids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{field: 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		oid, ok := doc["_id"].(primitive.ObjectID)
		if !ok {
			continue
		}
		out[oid.Hex()] = stringArrayField(doc, field)
	}
	return out, nil
}

func stringArrayField(doc bson.M, field string) []string {
	raw, ok := doc[field].(primitive.A)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
