package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/forgefit/planforge/internal/domain"
)

// In-memory repository fakes. They mirror the Mongo implementations'
// observable behaviour: copies on read, NotFoundError on absent ids, link
// cascade on plan delete, (order, id) sort on the link list.

type fakePlanRepo struct {
	mu    sync.Mutex
	seq   int
	plans map[string]*domain.WorkoutPlan
	links *fakeLinkRepo

	findByIDCalls    int
	findWithFilCalls int
}

func newFakePlanRepo(links *fakeLinkRepo) *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*domain.WorkoutPlan), links: links}
}

func copyPlan(p *domain.WorkoutPlan) *domain.WorkoutPlan {
	cp := *p
	cp.Exercises = nil
	cp.Tags = nil
	cp.MuscleGroups = nil
	cp.Equipment = nil
	return &cp
}

func (f *fakePlanRepo) Create(_ context.Context, plan *domain.WorkoutPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	plan.ID = fmt.Sprintf("plan-%04d", f.seq)
	f.plans[plan.ID] = copyPlan(plan)
	return nil
}

func (f *fakePlanRepo) FindByID(_ context.Context, id string) (*domain.WorkoutPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByIDCalls++
	plan, ok := f.plans[id]
	if !ok {
		return nil, domain.NewNotFoundError("workout plan", id)
	}
	return copyPlan(plan), nil
}

func (f *fakePlanRepo) Update(_ context.Context, id string, update *domain.WorkoutPlanUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.plans[id]
	if !ok {
		return domain.NewNotFoundError("workout plan", id)
	}
	if update.Name != nil {
		plan.Name = *update.Name
	}
	if update.Description != nil {
		plan.Description = *update.Description
	}
	if update.Difficulty != nil {
		plan.Difficulty = *update.Difficulty
	}
	if update.Category != nil {
		plan.Category = *update.Category
	}
	if update.EstimatedDuration != nil {
		plan.EstimatedDuration = *update.EstimatedDuration
	}
	if update.SplitType != nil {
		plan.SplitType = *update.SplitType
	}
	if update.FitnessGoals != nil {
		plan.FitnessGoals = update.FitnessGoals
	}
	if update.TagIDs != nil {
		plan.TagIDs = update.TagIDs
	}
	if update.MuscleGroupIDs != nil {
		plan.MuscleGroupIDs = update.MuscleGroupIDs
	}
	if update.EquipmentIDs != nil {
		plan.EquipmentIDs = update.EquipmentIDs
	}
	return nil
}

func (f *fakePlanRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	if _, ok := f.plans[id]; !ok {
		f.mu.Unlock()
		return domain.NewNotFoundError("workout plan", id)
	}
	delete(f.plans, id)
	f.mu.Unlock()
	return f.links.DeleteByWorkoutPlan(ctx, id)
}

func (f *fakePlanRepo) FindWithFilters(_ context.Context, filter domain.WorkoutPlanFilter) ([]*domain.WorkoutPlan, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findWithFilCalls++

	var matched []*domain.WorkoutPlan
	for _, plan := range f.plans {
		if filter.Difficulty != "" && plan.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Category != "" && plan.Category != filter.Category {
			continue
		}
		if filter.IsCustom != nil && plan.IsCustom != *filter.IsCustom {
			continue
		}
		if filter.CreatorID != "" && plan.CreatorID != filter.CreatorID {
			continue
		}
		matched = append(matched, copyPlan(plan))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

// RelationIDs / RelationIDsBatch make the fake usable as a relation.IDSource.

func (f *fakePlanRepo) fieldIDs(plan *domain.WorkoutPlan, field string) []string {
	switch field {
	case "tag_ids":
		return plan.TagIDs
	case "muscle_group_ids":
		return plan.MuscleGroupIDs
	case "equipment_ids":
		return plan.EquipmentIDs
	}
	return nil
}

func (f *fakePlanRepo) RelationIDs(_ context.Context, id, field string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.plans[id]
	if !ok {
		return nil, domain.NewNotFoundError("workout plan", id)
	}
	return f.fieldIDs(plan, field), nil
}

func (f *fakePlanRepo) RelationIDsBatch(_ context.Context, ids []string, field string) (map[string][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]string, len(ids))
	for _, id := range ids {
		if plan, ok := f.plans[id]; ok {
			out[id] = f.fieldIDs(plan, field)
		}
	}
	return out, nil
}

type fakeLinkRepo struct {
	mu    sync.Mutex
	seq   int
	links map[string]*domain.WorkoutExercise
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[string]*domain.WorkoutExercise)}
}

func (f *fakeLinkRepo) Create(_ context.Context, link *domain.WorkoutExercise) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	// Monotonic ids so order ties break by insertion, like ULIDs do.
	link.ID = fmt.Sprintf("link-%04d", f.seq)
	cp := *link
	f.links[link.ID] = &cp
	return nil
}

func (f *fakeLinkRepo) FindByID(_ context.Context, id string) (*domain.WorkoutExercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[id]
	if !ok {
		return nil, domain.NewNotFoundError("workout exercise", id)
	}
	cp := *link
	return &cp, nil
}

func (f *fakeLinkRepo) Update(_ context.Context, id string, update *domain.WorkoutExerciseUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[id]
	if !ok {
		return domain.NewNotFoundError("workout exercise", id)
	}
	if update.ExerciseID != nil {
		link.ExerciseID = *update.ExerciseID
	}
	if update.Order != nil {
		link.Order = *update.Order
	}
	if update.Sets != nil {
		link.Sets = *update.Sets
	}
	if update.Repetitions != nil {
		link.Repetitions = *update.Repetitions
	}
	if update.Duration != nil {
		link.Duration = *update.Duration
	}
	if update.RestTime != nil {
		link.RestTime = *update.RestTime
	}
	if update.Notes != nil {
		link.Notes = *update.Notes
	}
	return nil
}

func (f *fakeLinkRepo) UpdateOrder(_ context.Context, id string, order int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[id]
	if !ok {
		return domain.NewNotFoundError("workout exercise", id)
	}
	link.Order = order
	return nil
}

func (f *fakeLinkRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.links[id]; !ok {
		return domain.NewNotFoundError("workout exercise", id)
	}
	delete(f.links, id)
	return nil
}

func (f *fakeLinkRepo) FindByWorkoutPlan(_ context.Context, workoutPlanID string) ([]*domain.WorkoutExercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.WorkoutExercise
	for _, link := range f.links {
		if link.WorkoutPlanID == workoutPlanID {
			cp := *link
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeLinkRepo) DeleteByWorkoutPlan(_ context.Context, workoutPlanID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, link := range f.links {
		if link.WorkoutPlanID == workoutPlanID {
			delete(f.links, id)
		}
	}
	return nil
}

type fakeTagRepo struct {
	tags map[string]*domain.Tag
}

func (f *fakeTagRepo) Create(_ context.Context, tag *domain.Tag) error {
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeTagRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Tag, error) {
	var out []*domain.Tag
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) List(context.Context) ([]*domain.Tag, error) {
	var out []*domain.Tag
	for _, tag := range f.tags {
		out = append(out, tag)
	}
	return out, nil
}

type fakeMuscleGroupRepo struct {
	groups map[string]*domain.MuscleGroup
}

func (f *fakeMuscleGroupRepo) Create(_ context.Context, group *domain.MuscleGroup) error {
	f.groups[group.ID] = group
	return nil
}

func (f *fakeMuscleGroupRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.MuscleGroup, error) {
	var out []*domain.MuscleGroup
	for _, id := range ids {
		if group, ok := f.groups[id]; ok {
			out = append(out, group)
		}
	}
	return out, nil
}

func (f *fakeMuscleGroupRepo) List(context.Context) ([]*domain.MuscleGroup, error) {
	var out []*domain.MuscleGroup
	for _, group := range f.groups {
		out = append(out, group)
	}
	return out, nil
}

type fakeEquipmentRepo struct {
	equipment map[string]*domain.Equipment
}

func (f *fakeEquipmentRepo) Create(_ context.Context, equipment *domain.Equipment) error {
	f.equipment[equipment.ID] = equipment
	return nil
}

func (f *fakeEquipmentRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Equipment, error) {
	var out []*domain.Equipment
	for _, id := range ids {
		if equipment, ok := f.equipment[id]; ok {
			out = append(out, equipment)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) List(context.Context) ([]*domain.Equipment, error) {
	var out []*domain.Equipment
	for _, equipment := range f.equipment {
		out = append(out, equipment)
	}
	return out, nil
}
