package relation

import (
	"github.com/forgefit/planforge/internal/domain"
)

// Relation names and the plan document fields that back them.
const (
	RelationTags         = "tags"
	RelationMuscleGroups = "targetMuscleGroups"
	RelationEquipment    = "equipmentNeeded"

	fieldTagIDs         = "tag_ids"
	fieldMuscleGroupIDs = "muscle_group_ids"
	fieldEquipmentIDs   = "equipment_ids"
)

// PlanRelations is the relation registry for the workout plan aggregate,
// built once at startup and injected into the aggregate manager.
type PlanRelations struct {
	Tags         Relation[*domain.Tag]
	MuscleGroups Relation[*domain.MuscleGroup]
	Equipment    Relation[*domain.Equipment]
}

// NewPlanRelations wires the three plan relations against the plan
// repository's projection reads and the reference repositories' FindByIDs.
func NewPlanRelations(
	source IDSource,
	tags domain.TagRepository,
	muscleGroups domain.MuscleGroupRepository,
	equipment domain.EquipmentRepository,
) *PlanRelations {
	return &PlanRelations{
		Tags: New(RelationTags, fieldTagIDs, source, tags.FindByIDs,
			func(t *domain.Tag) string { return t.ID }),
		MuscleGroups: New(RelationMuscleGroups, fieldMuscleGroupIDs, source, muscleGroups.FindByIDs,
			func(g *domain.MuscleGroup) string { return g.ID }),
		Equipment: New(RelationEquipment, fieldEquipmentIDs, source, equipment.FindByIDs,
			func(e *domain.Equipment) string { return e.ID }),
	}
}
