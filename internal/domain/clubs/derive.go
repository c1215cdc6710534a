package clubs

import (
	"sort"
	"strconv"
)

// CategoryUnspecified is the histogram bucket for roster members without a
// category.
const CategoryUnspecified = "unspecified"

// CategoryCount is one histogram bucket.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryDistribution tallies roster members by category. Members without
// one land in the "unspecified" bucket.
func CategoryDistribution(roster []Member) map[string]int {
	dist := make(map[string]int)
	for _, m := range roster {
		key := CategoryUnspecified
		if m.Category != nil {
			key = strconv.Itoa(*m.Category)
		}
		dist[key]++
	}
	return dist
}

// ByCount orders a distribution by descending count for ranking displays.
// Ties break by category, numeric first.
func ByCount(dist map[string]int) []CategoryCount {
	out := buckets(dist)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return categoryLess(out[i].Category, out[j].Category)
	})
	return out
}

// ByCategory orders a distribution numerically for charting, with the
// unspecified bucket last.
func ByCategory(dist map[string]int) []CategoryCount {
	out := buckets(dist)
	sort.SliceStable(out, func(i, j int) bool {
		return categoryLess(out[i].Category, out[j].Category)
	})
	return out
}

func buckets(dist map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(dist))
	for cat, n := range dist {
		out = append(out, CategoryCount{Category: cat, Count: n})
	}
	return out
}

func categoryLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true // numeric before unspecified
	case errB == nil:
		return false
	default:
		return a < b
	}
}
