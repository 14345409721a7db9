// Package algo has ranking helpers shared by the selection logic and its outputs.
package algo

import (
	"sort"

	"github.com/huangsam/ladder/schema"
)

// RankMethods sorts methods by score in descending order, breaking ties by
// name, and returns the top 'limit' methods. If limit is greater than the
// number of methods, all methods are returned in sorted order.
func RankMethods(methods []schema.Method, limit int) []schema.Method {
	sort.SliceStable(methods, func(i, j int) bool {
		if methods[i].Score != methods[j].Score {
			return methods[i].Score > methods[j].Score
		}
		return methods[i].Name < methods[j].Name
	})
	if limit >= 0 && len(methods) > limit {
		return methods[:limit]
	}
	return methods
}

// RankSelections sorts enriched results by complexity score in descending order
// and returns the top 'limit' results. Ties keep their input order.
func RankSelections(results []schema.EnrichedResult, limit int) []schema.EnrichedResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ComplexityScore > results[j].ComplexityScore
	})
	if limit >= 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
