package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/forgefit/planforge/internal/domain"
	"github.com/forgefit/planforge/internal/service"
)

type ExerciseHandler struct {
	exerciseService *service.ExerciseService
	maxUploadBytes  int64
}

func NewExerciseHandler(exerciseService *service.ExerciseService, maxUploadSizeMB int64) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		maxUploadBytes:  maxUploadSizeMB * 1024 * 1024,
	}
}

// ListExercises handles GET /api/v1/exercises
func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	filter := make(map[string]interface{})
	if name := c.Query("name"); name != "" {
		filter["name"] = name
	}
	if mg := c.Query("muscle_group"); mg != "" {
		filter["muscle_group"] = mg
	}
	if eq := c.Query("equipment"); eq != "" {
		filter["equipment"] = eq
	}

	exs, err := h.exerciseService.ListExercises(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(exs)
}

// GetExercise handles GET /api/v1/exercises/:id
func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	ex, err := h.exerciseService.GetExercise(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(ex)
}

// CreateExercise handles POST /api/v1/exercises
// Admin Only (Middleware check outside)
func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if err := h.exerciseService.CreateExercise(c.UserContext(), &req); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// UpdateExercise handles PATCH /api/v1/exercises/:id
func (h *ExerciseHandler) UpdateExercise(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	req.ID = c.Params("id")
	if err := h.exerciseService.UpdateExercise(c.UserContext(), &req); err != nil {
		return err
	}
	return c.JSON(req)
}

// DeleteExercise handles DELETE /api/v1/exercises/:id
func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	if err := h.exerciseService.DeleteExercise(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// UploadMedia handles POST /api/v1/exercises/:id/media
// Multipart form with a single "file" field.
func (h *ExerciseHandler) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	if fileHeader.Size > h.maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "file too large"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not read file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not read file"})
	}

	ex, err := h.exerciseService.UploadMedia(
		c.UserContext(), c.Params("id"), data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return err
	}
	return c.JSON(ex)
}
