package layout

import (
	"maps"
	"slices"
)

// LevelGroups maps depth to the units at that depth, in target order.
type LevelGroups map[int][]string

// GroupByLevel partitions targets by their assigned depth. Targets missing
// from levels are skipped.
func GroupByLevel(targets []string, levels Levels) LevelGroups {
	groups := make(LevelGroups)
	for _, id := range uniqueTargets(targets) {
		if d, ok := levels[id]; ok {
			groups[d] = append(groups[d], id)
		}
	}
	return groups
}

// Depths returns the non-empty depths in ascending order.
func (lg LevelGroups) Depths() []int {
	var out []int
	for _, d := range slices.Sorted(maps.Keys(lg)) {
		if len(lg[d]) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// MaxDepth returns the deepest non-empty depth, or 0 if there is none.
func (lg LevelGroups) MaxDepth() int {
	depths := lg.Depths()
	if len(depths) == 0 {
		return 0
	}
	return depths[len(depths)-1]
}
