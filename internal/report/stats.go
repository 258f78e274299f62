package report

import (
	"sort"

	"github.com/law-makers/activities/pkg/models"
)

// ComputeStats aggregates activities in memory with the same rules the store
// applies in SQL: cost figures consider paid activities only.
func ComputeStats(activities []models.Activity) *models.Stats {
	s := &models.Stats{Total: len(activities), ByCategory: []models.CategoryCount{}}

	counts := map[string]int{}
	var sum, lo, hi float64
	for _, a := range activities {
		counts[a.Category]++
		if a.IsFree() {
			s.Free++
			continue
		}
		if s.Paid == 0 || a.Cost < lo {
			lo = a.Cost
		}
		if s.Paid == 0 || a.Cost > hi {
			hi = a.Cost
		}
		sum += a.Cost
		s.Paid++
	}

	if s.Paid > 0 {
		avg := sum / float64(s.Paid)
		s.AverageCost, s.MinCost, s.MaxCost = &avg, &lo, &hi
	}

	for c, n := range counts {
		s.ByCategory = append(s.ByCategory, models.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if s.ByCategory[i].Count != s.ByCategory[j].Count {
			return s.ByCategory[i].Count > s.ByCategory[j].Count
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})
	return s
}
