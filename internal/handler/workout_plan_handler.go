package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/forgefit/planforge/internal/domain"
	"github.com/forgefit/planforge/internal/middleware"
	"github.com/forgefit/planforge/internal/service"
)

type WorkoutPlanHandler struct {
	planService *service.WorkoutPlanService
}

func NewWorkoutPlanHandler(planService *service.WorkoutPlanService) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{planService: planService}
}

// CreateWorkoutPlan handles POST /api/v1/workout-plans
func (h *WorkoutPlanHandler) CreateWorkoutPlan(c *fiber.Ctx) error {
	var req service.CreateWorkoutPlanInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	plan, err := h.planService.CreateWorkoutPlan(c.UserContext(), req, middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// GetWorkoutPlans handles GET /api/v1/workout-plans
func (h *WorkoutPlanHandler) GetWorkoutPlans(c *fiber.Ctx) error {
	filter := parsePlanFilter(c)

	page, err := h.planService.GetWorkoutPlans(c.UserContext(), filter, middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GetWorkoutPlanByID handles GET /api/v1/workout-plans/:id
func (h *WorkoutPlanHandler) GetWorkoutPlanByID(c *fiber.Ctx) error {
	plan, err := h.planService.GetWorkoutPlanByID(c.UserContext(), c.Params("id"), middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(plan)
}

// UpdateWorkoutPlan handles PATCH /api/v1/workout-plans/:id
func (h *WorkoutPlanHandler) UpdateWorkoutPlan(c *fiber.Ctx) error {
	var req service.UpdateWorkoutPlanInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	plan, err := h.planService.UpdateWorkoutPlan(c.UserContext(), c.Params("id"), req, middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(plan)
}

// DeleteWorkoutPlan handles DELETE /api/v1/workout-plans/:id
func (h *WorkoutPlanHandler) DeleteWorkoutPlan(c *fiber.Ctx) error {
	deleted, err := h.planService.DeleteWorkoutPlan(c.UserContext(), c.Params("id"), middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// AddExercise handles POST /api/v1/workout-plans/:id/exercises
func (h *WorkoutPlanHandler) AddExercise(c *fiber.Ctx) error {
	var req service.WorkoutExerciseInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	plan, err := h.planService.AddExerciseToWorkoutPlan(c.UserContext(), c.Params("id"), req, middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// UpdateExercise handles PATCH /api/v1/workout-plans/:id/exercises/:exerciseId
func (h *WorkoutPlanHandler) UpdateExercise(c *fiber.Ctx) error {
	var req service.WorkoutExerciseInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	plan, err := h.planService.UpdateExerciseInWorkoutPlan(
		c.UserContext(), c.Params("id"), c.Params("exerciseId"), req, middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(plan)
}

// RemoveExercise handles DELETE /api/v1/workout-plans/:id/exercises/:exerciseId
func (h *WorkoutPlanHandler) RemoveExercise(c *fiber.Ctx) error {
	plan, err := h.planService.RemoveExerciseFromWorkoutPlan(
		c.UserContext(), c.Params("id"), c.Params("exerciseId"), middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(plan)
}

// ReorderExercises handles PUT /api/v1/workout-plans/:id/exercises/reorder
func (h *WorkoutPlanHandler) ReorderExercises(c *fiber.Ctx) error {
	var req struct {
		Exercises []service.ExerciseOrderInput `json:"exercises"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	plan, err := h.planService.ReorderExercisesInWorkoutPlan(
		c.UserContext(), c.Params("id"), req.Exercises, middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(plan)
}

// parsePlanFilter maps query params onto a plan filter. Unknown or malformed
// numeric params fall back to zero values rather than erroring.
func parsePlanFilter(c *fiber.Ctx) domain.WorkoutPlanFilter {
	filter := domain.WorkoutPlanFilter{
		Difficulty:    domain.Difficulty(c.Query("difficulty")),
		Category:      domain.Category(c.Query("category")),
		CreatorID:     c.Query("creator_id"),
		Search:        c.Query("search"),
		SplitType:     c.Query("split_type"),
		FitnessGoals:  splitCSV(c.Query("fitness_goals")),
		CategoryIDs:   splitCSV(c.Query("category_ids")),
		EquipmentIDs:  splitCSV(c.Query("equipment_ids")),
		TagIDs:        splitCSV(c.Query("tag_ids")),
		UserPlansOnly: c.QueryBool("user_plans_only"),
		Limit:         c.QueryInt("limit"),
		Offset:        c.QueryInt("offset"),
		SortBy:        c.Query("sort_by"),
	}

	if v := c.Query("is_custom"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.IsCustom = &b
		}
	}
	if v := c.Query("min_duration"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinDuration = &n
		}
	}
	if v := c.Query("max_duration"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MaxDuration = &n
		}
	}
	if strings.EqualFold(c.Query("sort_order"), "desc") {
		filter.SortOrder = domain.SortDesc
	} else if c.Query("sort_order") != "" {
		filter.SortOrder = domain.SortAsc
	}

	return filter
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
