// Package relation loads related collections for aggregates without N+1
// query patterns. Relations are configured once at startup as a registry of
// typed loaders; each loader couples an id source (a projection read on the
// parent collection) with a fetch function on the related repository.
package relation

import (
	"context"
	"fmt"
)

// IDSource projects relation id arrays off parent documents. Implemented by
// the parent's persistence repository.
type IDSource interface {
	RelationIDs(ctx context.Context, id, field string) ([]string, error)
	RelationIDsBatch(ctx context.Context, ids []string, field string) (map[string][]string, error)
}

// FetchFunc resolves a set of related ids to entities in a single query.
type FetchFunc[T any] func(ctx context.Context, ids []string) ([]T, error)

// Relation is a configured loader for one (parent, relation) pair.
type Relation[T any] struct {
	name   string
	field  string
	source IDSource
	fetch  FetchFunc[T]
	idOf   func(T) string
}

// New builds a Relation. field is the parent document field holding the
// related id array; fetch is typically the related repository's FindByIDs;
// idOf maps a fetched entity back to its id for batch grouping.
func New[T any](name, field string, source IDSource, fetch FetchFunc[T], idOf func(T) string) Relation[T] {
	return Relation[T]{name: name, field: field, source: source, fetch: fetch, idOf: idOf}
}

// Name returns the relation's registered name.
func (r Relation[T]) Name() string {
	return r.name
}

// Load fetches the related collection for a single aggregate id.
func (r Relation[T]) Load(ctx context.Context, id string) ([]T, error) {
	ids, err := r.source.RelationIDs(ctx, id, r.field)
	if err != nil {
		return nil, fmt.Errorf("load %s ids: %w", r.name, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	related, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.name, err)
	}
	return related, nil
}

// LoadBatch fetches the relation for many aggregate ids in two queries: one
// projection over the parents, one $in fetch over the union of related ids.
// Every requested parent id has an entry in the result map.
func (r Relation[T]) LoadBatch(ctx context.Context, ids []string) (map[string][]T, error) {
	out := make(map[string][]T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	idsByParent, err := r.source.RelationIDsBatch(ctx, ids, r.field)
	if err != nil {
		return nil, fmt.Errorf("batch load %s ids: %w", r.name, err)
	}

	// Union of related ids across all parents, deduplicated.
	seen := make(map[string]struct{})
	var union []string
	for _, relIDs := range idsByParent {
		for _, rid := range relIDs {
			if _, ok := seen[rid]; ok {
				continue
			}
			seen[rid] = struct{}{}
			union = append(union, rid)
		}
	}

	byID := make(map[string]T, len(union))
	if len(union) > 0 {
		related, err := r.fetch(ctx, union)
		if err != nil {
			return nil, fmt.Errorf("batch fetch %s: %w", r.name, err)
		}
		for _, entity := range related {
			byID[r.idOf(entity)] = entity
		}
	}

	for _, parentID := range ids {
		var group []T
		for _, rid := range idsByParent[parentID] {
			if entity, ok := byID[rid]; ok {
				group = append(group, entity)
			}
		}
		out[parentID] = group
	}
	return out, nil
}
