package service

import (
	"context"

	"github.com/forgefit/planforge/internal/domain"
)

// reconcileExercises diffs a submitted exercise list against the plan's
// current rows. Entries carrying an id that exists in the current set claim
// and update that row; everything else is inserted as a new row (order
// defaults to 0 when unspecified). Rows the caller did not mention survive
// unless deleteOmitted is set — partial updates must never silently discard
// exercises.
func (s *WorkoutPlanService) reconcileExercises(ctx context.Context, planID string, entries []WorkoutExerciseInput, deleteOmitted bool) error {
	existing, err := s.links.FindByWorkoutPlan(ctx, planID)
	if err != nil {
		return err
	}

	unclaimed := make(map[string]*domain.WorkoutExercise, len(existing))
	for _, link := range existing {
		unclaimed[link.ID] = link
	}

	for _, entry := range entries {
		if entry.ID != "" {
			if link, ok := unclaimed[entry.ID]; ok {
				update := entry.toUpdate()
				if err := validateMergedLink(link, update); err != nil {
					return err
				}
				if err := s.links.Update(ctx, entry.ID, update); err != nil {
					return err
				}
				delete(unclaimed, entry.ID)
				continue
			}
		}

		link := entry.toLink(0)
		link.WorkoutPlanID = planID
		if err := link.Validate(); err != nil {
			return err
		}
		if err := s.links.Create(ctx, link); err != nil {
			return err
		}
	}

	if !deleteOmitted {
		return nil
	}
	for id := range unclaimed {
		if err := s.links.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
