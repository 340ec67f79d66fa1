package relation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	byParent map[string][]string
	calls    int
}

func (f *fakeSource) RelationIDs(_ context.Context, id, _ string) ([]string, error) {
	f.calls++
	return f.byParent[id], nil
}

func (f *fakeSource) RelationIDsBatch(_ context.Context, ids []string, _ string) (map[string][]string, error) {
	f.calls++
	out := make(map[string][]string, len(ids))
	for _, id := range ids {
		if rel, ok := f.byParent[id]; ok {
			out[id] = rel
		}
	}
	return out, nil
}

type entity struct {
	ID   string
	Name string
}

func fakeFetch(known map[string]entity, calls *int) FetchFunc[entity] {
	return func(_ context.Context, ids []string) ([]entity, error) {
		*calls++
		var out []entity
		for _, id := range ids {
			if e, ok := known[id]; ok {
				out = append(out, e)
			}
		}
		return out, nil
	}
}

func TestRelationLoad(t *testing.T) {
	source := &fakeSource{byParent: map[string][]string{
		"p1": {"t1", "t2"},
		"p2": {},
	}}
	known := map[string]entity{
		"t1": {ID: "t1", Name: "strength"},
		"t2": {ID: "t2", Name: "mobility"},
	}

	var fetchCalls int
	rel := New("tags", "tag_ids", source, fakeFetch(known, &fetchCalls), func(e entity) string { return e.ID })

	got, err := rel.Load(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "strength", got[0].Name)

	// Empty id set short-circuits without a fetch.
	fetchCalls = 0
	got, err = rel.Load(context.Background(), "p2")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, fetchCalls)
}

func TestRelationLoadBatch(t *testing.T) {
	source := &fakeSource{byParent: map[string][]string{
		"p1": {"t1", "t2"},
		"p2": {"t2"},
		"p3": nil,
	}}
	known := map[string]entity{
		"t1": {ID: "t1", Name: "strength"},
		"t2": {ID: "t2", Name: "mobility"},
	}

	var fetchCalls int
	rel := New("tags", "tag_ids", source, fakeFetch(known, &fetchCalls), func(e entity) string { return e.ID })

	got, err := rel.LoadBatch(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)

	// One projection + one fetch for the whole batch.
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1, fetchCalls)

	// Every requested parent id has an entry, even without relations.
	require.Len(t, got, 3)
	assert.Len(t, got["p1"], 2)
	assert.Len(t, got["p2"], 1)
	assert.Equal(t, "mobility", got["p2"][0].Name)
	assert.Empty(t, got["p3"])
}

func TestRelationLoadBatchEmptyInput(t *testing.T) {
	source := &fakeSource{}
	var fetchCalls int
	rel := New("tags", "tag_ids", source, fakeFetch(nil, &fetchCalls), func(e entity) string { return e.ID })

	got, err := rel.LoadBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, source.calls)
	assert.Zero(t, fetchCalls)
}

func TestRelationLoadFetchError(t *testing.T) {
	source := &fakeSource{byParent: map[string][]string{"p1": {"t1"}}}
	rel := New("tags", "tag_ids", source, func(context.Context, []string) ([]entity, error) {
		return nil, errors.New("cursor error")
	}, func(e entity) string { return e.ID })

	_, err := rel.Load(context.Background(), "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tags")
}
