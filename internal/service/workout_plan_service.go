package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/forgefit/planforge/internal/domain"
	"github.com/forgefit/planforge/internal/relation"
	"golang.org/x/sync/errgroup"
)

// WorkoutPlanService manages the workout plan aggregate: the plan document
// plus its ordered exercise links, treated as one consistency boundary.
// Reads go through the cache; every mutation path invalidates the plan's
// single-entry key and all list keys after the transaction returns.
type WorkoutPlanService struct {
	plans     domain.WorkoutPlanRepository
	links     domain.WorkoutExerciseRepository
	relations *relation.PlanRelations
	cache     domain.CacheStore
	txn       domain.TransactionRunner
	logger    *log.Logger

	cacheTTL        time.Duration
	slowOpThreshold time.Duration
}

func NewWorkoutPlanService(
	plans domain.WorkoutPlanRepository,
	links domain.WorkoutExerciseRepository,
	relations *relation.PlanRelations,
	cache domain.CacheStore,
	txn domain.TransactionRunner,
	logger *log.Logger,
	cacheTTL time.Duration,
	slowOpThreshold time.Duration,
) *WorkoutPlanService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &WorkoutPlanService{
		plans:           plans,
		links:           links,
		relations:       relations,
		cache:           cache,
		txn:             txn,
		logger:          logger,
		cacheTTL:        cacheTTL,
		slowOpThreshold: slowOpThreshold,
	}
}

// CreateWorkoutPlan persists a plan and its exercise list in one transaction
// and returns the freshly reloaded aggregate. A present userID marks the plan
// custom and owned; an empty userID creates a system plan (seeding).
// Create does not pre-populate the cache.
func (s *WorkoutPlanService) CreateWorkoutPlan(ctx context.Context, input CreateWorkoutPlanInput, userID string) (*domain.WorkoutPlan, error) {
	const op = "CreateWorkoutPlan"
	ctx, done := s.startOp(ctx, op)
	defer done()

	if input.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if input.Description == "" {
		return nil, domain.NewValidationError("description is required")
	}

	plan := &domain.WorkoutPlan{
		Name:              input.Name,
		Description:       input.Description,
		Difficulty:        input.Difficulty,
		Category:          input.Category,
		EstimatedDuration: defaultEstimatedDuration,
		SplitType:         input.SplitType,
		FitnessGoals:      input.FitnessGoals,
		TagIDs:            input.TagIDs,
		MuscleGroupIDs:    input.MuscleGroupIDs,
		EquipmentIDs:      input.EquipmentIDs,
	}
	if plan.Difficulty == "" {
		plan.Difficulty = domain.DifficultyBeginner
	}
	if plan.Category == "" {
		plan.Category = domain.CategoryFullBody
	}
	if input.EstimatedDuration != nil {
		plan.EstimatedDuration = *input.EstimatedDuration
	}
	if plan.EstimatedDuration < 0 {
		return nil, domain.NewValidationError("estimated_duration must not be negative")
	}
	if userID != "" {
		plan.IsCustom = true
		plan.CreatorID = userID
	}

	// Order defaults to the list index when the caller did not provide one.
	links := make([]*domain.WorkoutExercise, 0, len(input.Exercises))
	for i, entry := range input.Exercises {
		link := entry.toLink(i)
		if err := link.Validate(); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	err := s.txn.Run(ctx, func(ctx context.Context) error {
		if err := s.plans.Create(ctx, plan); err != nil {
			return err
		}
		for _, link := range links {
			link.WorkoutPlanID = plan.ID
			if err := s.links.Create(ctx, link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(op, err, "creator", userID)
	}

	return s.reload(ctx, op, plan.ID)
}

// GetWorkoutPlanByID returns the plan aggregate, cache-first. A cache hit is
// served without touching the repository. Custom plans are private: a
// non-creator userID gets an AuthorizationError.
func (s *WorkoutPlanService) GetWorkoutPlanByID(ctx context.Context, id, userID string) (*domain.WorkoutPlan, error) {
	const op = "GetWorkoutPlanByID"
	ctx, done := s.startOp(ctx, op)
	defer done()

	// Visibility applies to cache hits too; a cached private plan must not
	// leak to a different caller.
	key := planCacheKey(id)
	var cached domain.WorkoutPlan
	switch err := s.cache.Get(ctx, key, &cached); {
	case err == nil:
		if !cached.VisibleTo(userID) {
			return nil, domain.NewAuthorizationError("workout plan %s is private to its creator", id)
		}
		return &cached, nil
	case !errors.Is(err, domain.ErrCacheMiss):
		s.logger.Printf("%s: cache read failed for %s: %v", op, key, err)
	}

	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(op, err, "plan", id)
	}
	if !plan.VisibleTo(userID) {
		return nil, domain.NewAuthorizationError("workout plan %s is private to its creator", id)
	}

	if err := s.attachRelations(ctx, plan); err != nil {
		return nil, s.fail(op, err, "plan", id)
	}

	if err := s.cache.Set(ctx, key, plan, s.cacheTTL); err != nil {
		s.logger.Printf("%s: cache write failed for %s: %v", op, key, err)
	}
	return plan, nil
}

// UpdateWorkoutPlan applies a partial scalar update and, when an exercise
// list is submitted, reconciles it against the current rows — all inside one
// transaction. Ownership is checked against current repository state, never
// the cache.
func (s *WorkoutPlanService) UpdateWorkoutPlan(ctx context.Context, id string, input UpdateWorkoutPlanInput, userID string) (*domain.WorkoutPlan, error) {
	const op = "UpdateWorkoutPlan"
	ctx, done := s.startOp(ctx, op)
	defer done()

	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(op, err, "plan", id)
	}
	if !plan.OwnedBy(userID) {
		return nil, domain.NewAuthorizationError("only the creator may modify workout plan %s", id)
	}

	err = s.txn.Run(ctx, func(ctx context.Context) error {
		if err := s.plans.Update(ctx, id, input.scalarUpdate()); err != nil {
			return err
		}
		if input.Exercises != nil {
			return s.reconcileExercises(ctx, id, *input.Exercises, input.DeleteOmittedExercises)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(op, err, "plan", id)
	}

	s.invalidatePlanCaches(ctx, id)
	return s.reload(ctx, op, id)
}

// DeleteWorkoutPlan removes the plan; the repository cascades to its exercise
// links inside the transaction scope.
func (s *WorkoutPlanService) DeleteWorkoutPlan(ctx context.Context, id, userID string) (bool, error) {
	const op = "DeleteWorkoutPlan"
	ctx, done := s.startOp(ctx, op)
	defer done()

	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return false, s.fail(op, err, "plan", id)
	}
	if !plan.OwnedBy(userID) {
		return false, domain.NewAuthorizationError("only the creator may delete workout plan %s", id)
	}

	err = s.txn.Run(ctx, func(ctx context.Context) error {
		return s.plans.Delete(ctx, id)
	})
	if err != nil {
		return false, s.fail(op, err, "plan", id)
	}

	s.invalidatePlanCaches(ctx, id)
	return true, nil
}

// GetWorkoutPlans runs a filtered, paginated plan query and batch-loads the
// relations for the whole page. Results are cached only for filter sets
// without free-text search, creator filters or tag-id filters.
func (s *WorkoutPlanService) GetWorkoutPlans(ctx context.Context, filter domain.WorkoutPlanFilter, userID string) (*domain.WorkoutPlanPage, error) {
	const op = "GetWorkoutPlans"
	ctx, done := s.startOp(ctx, op)
	defer done()

	if filter.UserPlansOnly && userID != "" {
		filter.CreatorID = userID
	}

	cacheable := listFilterCacheable(filter)
	var key string
	if cacheable {
		key = planListCacheKey(filter)
		var cached domain.WorkoutPlanPage
		switch err := s.cache.Get(ctx, key, &cached); {
		case err == nil:
			return &cached, nil
		case !errors.Is(err, domain.ErrCacheMiss):
			s.logger.Printf("%s: cache read failed for %s: %v", op, key, err)
		}
	}

	plans, total, err := s.plans.FindWithFilters(ctx, filter)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if err := s.attachRelationsBatch(ctx, plans); err != nil {
		return nil, s.fail(op, err)
	}

	page := &domain.WorkoutPlanPage{Plans: plans, Total: total}
	if page.Plans == nil {
		page.Plans = []*domain.WorkoutPlan{}
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, page, s.cacheTTL); err != nil {
			s.logger.Printf("%s: cache write failed for %s: %v", op, key, err)
		}
	}
	return page, nil
}

// AddExerciseToWorkoutPlan appends one exercise link to the plan. Order
// defaults to the end of the current list.
func (s *WorkoutPlanService) AddExerciseToWorkoutPlan(ctx context.Context, planID string, input WorkoutExerciseInput, userID string) (*domain.WorkoutPlan, error) {
	const op = "AddExerciseToWorkoutPlan"
	ctx, done := s.startOp(ctx, op)
	defer done()

	plan, err := s.GetWorkoutPlanByID(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		return nil, domain.NewAuthorizationError("only the creator may modify workout plan %s", planID)
	}

	link := input.toLink(len(plan.Exercises))
	link.WorkoutPlanID = planID
	if err := link.Validate(); err != nil {
		return nil, err
	}

	if err := s.links.Create(ctx, link); err != nil {
		return nil, s.fail(op, err, "plan", planID)
	}

	s.invalidatePlanCaches(ctx, planID)
	return s.reload(ctx, op, planID)
}

// UpdateExerciseInWorkoutPlan applies a partial update to one exercise link.
// The link must belong to the plan's current exercise set.
func (s *WorkoutPlanService) UpdateExerciseInWorkoutPlan(ctx context.Context, planID, linkID string, input WorkoutExerciseInput, userID string) (*domain.WorkoutPlan, error) {
	const op = "UpdateExerciseInWorkoutPlan"
	ctx, done := s.startOp(ctx, op)
	defer done()

	plan, err := s.GetWorkoutPlanByID(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		return nil, domain.NewAuthorizationError("only the creator may modify workout plan %s", planID)
	}
	link := planLink(plan, linkID)
	if link == nil {
		return nil, domain.NewNotFoundError("workout exercise", linkID)
	}

	update := input.toUpdate()
	if err := validateMergedLink(link, update); err != nil {
		return nil, err
	}

	if err := s.links.Update(ctx, linkID, update); err != nil {
		return nil, s.fail(op, err, "plan", planID, "exercise", linkID)
	}

	s.invalidatePlanCaches(ctx, planID)
	return s.reload(ctx, op, planID)
}

// RemoveExerciseFromWorkoutPlan deletes one exercise link from the plan.
func (s *WorkoutPlanService) RemoveExerciseFromWorkoutPlan(ctx context.Context, planID, linkID, userID string) (*domain.WorkoutPlan, error) {
	const op = "RemoveExerciseFromWorkoutPlan"
	ctx, done := s.startOp(ctx, op)
	defer done()

	plan, err := s.GetWorkoutPlanByID(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		return nil, domain.NewAuthorizationError("only the creator may modify workout plan %s", planID)
	}
	if !planHasLink(plan, linkID) {
		return nil, domain.NewNotFoundError("workout exercise", linkID)
	}

	if err := s.links.Delete(ctx, linkID); err != nil {
		return nil, s.fail(op, err, "plan", planID, "exercise", linkID)
	}

	s.invalidatePlanCaches(ctx, planID)
	return s.reload(ctx, op, planID)
}

// ReorderExercisesInWorkoutPlan applies new order values to the plan's links.
// Every id must belong to the plan's current exercise set; otherwise the whole
// operation fails before any row is touched. The writes share one transaction
// scope, so a partial reorder is never observable.
func (s *WorkoutPlanService) ReorderExercisesInWorkoutPlan(ctx context.Context, planID string, orders []ExerciseOrderInput, userID string) (*domain.WorkoutPlan, error) {
	const op = "ReorderExercisesInWorkoutPlan"
	ctx, done := s.startOp(ctx, op)
	defer done()

	plan, err := s.GetWorkoutPlanByID(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		return nil, domain.NewAuthorizationError("only the creator may modify workout plan %s", planID)
	}

	current := make(map[string]struct{}, len(plan.Exercises))
	for _, link := range plan.Exercises {
		current[link.ID] = struct{}{}
	}
	for _, entry := range orders {
		if _, ok := current[entry.ID]; !ok {
			return nil, domain.NewNotFoundError("workout exercise", entry.ID)
		}
	}

	err = s.txn.Run(ctx, func(ctx context.Context) error {
		for _, entry := range orders {
			if err := s.links.UpdateOrder(ctx, entry.ID, entry.Order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(op, err, "plan", planID)
	}

	s.invalidatePlanCaches(ctx, planID)
	return s.reload(ctx, op, planID)
}

// --- internals ---

// attachRelations inflates the exercise list and the three reference
// relations concurrently; there is no ordering dependency between them.
func (s *WorkoutPlanService) attachRelations(ctx context.Context, plan *domain.WorkoutPlan) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		links, err := s.links.FindByWorkoutPlan(gCtx, plan.ID)
		if err != nil {
			return err
		}
		plan.Exercises = links
		return nil
	})
	g.Go(func() error {
		tags, err := s.relations.Tags.Load(gCtx, plan.ID)
		if err != nil {
			return err
		}
		plan.Tags = tags
		return nil
	})
	g.Go(func() error {
		groups, err := s.relations.MuscleGroups.Load(gCtx, plan.ID)
		if err != nil {
			return err
		}
		plan.MuscleGroups = groups
		return nil
	})
	g.Go(func() error {
		equipment, err := s.relations.Equipment.Load(gCtx, plan.ID)
		if err != nil {
			return err
		}
		plan.Equipment = equipment
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if plan.Exercises == nil {
		plan.Exercises = []*domain.WorkoutExercise{}
	}
	return nil
}

// attachRelationsBatch inflates the reference relations for a whole result
// page in three parallel batch loads instead of one query per plan.
func (s *WorkoutPlanService) attachRelationsBatch(ctx context.Context, plans []*domain.WorkoutPlan) error {
	if len(plans) == 0 {
		return nil
	}

	ids := make([]string, len(plans))
	for i, plan := range plans {
		ids[i] = plan.ID
	}

	var (
		tagsByPlan      map[string][]*domain.Tag
		groupsByPlan    map[string][]*domain.MuscleGroup
		equipmentByPlan map[string][]*domain.Equipment
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tagsByPlan, err = s.relations.Tags.LoadBatch(gCtx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		groupsByPlan, err = s.relations.MuscleGroups.LoadBatch(gCtx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		equipmentByPlan, err = s.relations.Equipment.LoadBatch(gCtx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for _, plan := range plans {
		plan.Tags = tagsByPlan[plan.ID]
		plan.MuscleGroups = groupsByPlan[plan.ID]
		plan.Equipment = equipmentByPlan[plan.ID]
	}
	return nil
}

// reload returns the aggregate as persisted, so callers observe exactly what
// was written, including generated ids.
func (s *WorkoutPlanService) reload(ctx context.Context, op, id string) (*domain.WorkoutPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(op, err, "plan", id)
	}
	if err := s.attachRelations(ctx, plan); err != nil {
		return nil, s.fail(op, err, "plan", id)
	}
	return plan, nil
}

// invalidatePlanCaches drops the plan's single-entry key and every list key.
// Runs strictly after the surrounding transaction; failures are logged and
// never abort the mutation — the repository stays authoritative and the TTL
// is the backstop.
func (s *WorkoutPlanService) invalidatePlanCaches(ctx context.Context, id string) {
	key := planCacheKey(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Printf("cache invalidation failed for %s: %v", key, err)
	}
	if err := s.cache.DeleteByPattern(ctx, planListKeyPrefix+"*"); err != nil {
		s.logger.Printf("list cache invalidation failed: %v", err)
	}
}

func planLink(plan *domain.WorkoutPlan, linkID string) *domain.WorkoutExercise {
	for _, link := range plan.Exercises {
		if link.ID == linkID {
			return link
		}
	}
	return nil
}

func planHasLink(plan *domain.WorkoutPlan, linkID string) bool {
	return planLink(plan, linkID) != nil
}
