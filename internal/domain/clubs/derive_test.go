package clubs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func member(id string, category *int) Member {
	return Member{ID: id, Category: category}
}

func cat(n int) *int { return &n }

func TestCategoryDistribution(t *testing.T) {
	roster := []Member{
		member("p-1", cat(7)),
		member("p-2", cat(7)),
		member("p-3", cat(3)),
		member("p-4", nil),
	}

	dist := CategoryDistribution(roster)
	assert.Equal(t, map[string]int{"7": 2, "3": 1, CategoryUnspecified: 1}, dist)
}

func TestCategoryDistribution_Empty(t *testing.T) {
	assert.Empty(t, CategoryDistribution(nil))
	assert.Empty(t, CategoryDistribution([]Member{}))
}

func TestByCount(t *testing.T) {
	dist := map[string]int{"7": 2, "3": 1, CategoryUnspecified: 1}

	got := ByCount(dist)
	assert.Equal(t, []CategoryCount{
		{Category: "7", Count: 2},
		{Category: "3", Count: 1},
		{Category: CategoryUnspecified, Count: 1}, // numeric wins the tie
	}, got)
}

func TestByCategory(t *testing.T) {
	dist := map[string]int{"10": 1, "2": 3, CategoryUnspecified: 2}

	got := ByCategory(dist)
	assert.Equal(t, []CategoryCount{
		{Category: "2", Count: 3},
		{Category: "10", Count: 1}, // numeric order, not lexicographic
		{Category: CategoryUnspecified, Count: 2},
	}, got)
}

func TestMemberAndMatchCounts(t *testing.T) {
	c := Club{
		Roster: []Member{member("p-1", nil), member("p-2", cat(4))},
	}
	assert.Equal(t, 2, c.MemberCount())
	assert.Equal(t, 0, c.ActiveMatchCount())
}
