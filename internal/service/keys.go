package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/forgefit/planforge/internal/domain"
)

const (
	planKeyPrefix     = "workout-plan:"
	planListKeyPrefix = "workout-plans:"

	// listKeySeparator joins array-valued filters inside a list cache key.
	listKeySeparator = ","
)

func planCacheKey(id string) string {
	return planKeyPrefix + id
}

// planListCacheKey builds the canonical cache key for a filtered list query.
// Zero-valued filters are omitted and array filters are joined with a stable
// separator; encoding/json emits map keys in sorted order, so equal filters
// always produce byte-identical keys regardless of construction order.
func planListCacheKey(filter domain.WorkoutPlanFilter) string {
	fields := map[string]string{}

	if filter.Difficulty != "" {
		fields["difficulty"] = string(filter.Difficulty)
	}
	if filter.Category != "" {
		fields["category"] = string(filter.Category)
	}
	if filter.IsCustom != nil {
		fields["isCustom"] = strconv.FormatBool(*filter.IsCustom)
	}
	if filter.CreatorID != "" {
		fields["creatorId"] = filter.CreatorID
	}
	if filter.MinDuration != nil {
		fields["minDuration"] = strconv.Itoa(*filter.MinDuration)
	}
	if filter.MaxDuration != nil {
		fields["maxDuration"] = strconv.Itoa(*filter.MaxDuration)
	}
	if filter.Search != "" {
		fields["search"] = filter.Search
	}
	if len(filter.FitnessGoals) > 0 {
		fields["fitnessGoals"] = strings.Join(filter.FitnessGoals, listKeySeparator)
	}
	if filter.SplitType != "" {
		fields["splitType"] = filter.SplitType
	}
	if len(filter.CategoryIDs) > 0 {
		fields["categoryIds"] = strings.Join(filter.CategoryIDs, listKeySeparator)
	}
	if len(filter.EquipmentIDs) > 0 {
		fields["equipmentIds"] = strings.Join(filter.EquipmentIDs, listKeySeparator)
	}
	if len(filter.TagIDs) > 0 {
		fields["tagIds"] = strings.Join(filter.TagIDs, listKeySeparator)
	}
	if filter.Limit > 0 {
		fields["limit"] = strconv.Itoa(filter.Limit)
	}
	if filter.Offset > 0 {
		fields["offset"] = strconv.Itoa(filter.Offset)
	}
	if filter.SortBy != "" {
		fields["sortBy"] = filter.SortBy
	}
	if filter.SortOrder != "" {
		fields["sortOrder"] = string(filter.SortOrder)
	}

	data, _ := json.Marshal(fields)
	return planListKeyPrefix + string(data)
}

// listFilterCacheable reports whether a list query is worth caching.
// Free-text search, explicit creator filters and tag-id filters are too
// combinatorial to cache profitably.
func listFilterCacheable(filter domain.WorkoutPlanFilter) bool {
	return filter.Search == "" && filter.CreatorID == "" && len(filter.TagIDs) == 0
}
