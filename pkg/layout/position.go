package layout

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"sort"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// rootBucket is the leaf bucket key for units without a parent.
const rootBucket = "root"

// Positions maps unit id to the X coordinate of its box center.
type Positions map[string]float64

// ComputeXPositions assigns an X coordinate to every unit in groups,
// processing depths from deepest to shallowest.
//
// The deepest row is laid out left to right starting at cfg.Margin, one
// bucket per parent. Buckets are ordered by parent id and members by id;
// members are cfg.HSpacing apart and buckets are separated by an extra
// [LeafBucketGap] × cfg.HSpacing.
//
// On shallower rows, units with more positioned children go first. A unit
// with positioned children is centered on the midpoint of its outermost
// children, shifted right to the first X that keeps cfg.HSpacing from the
// units already placed on its row. A unit without is placed at the smallest
// X ≥ cfg.Margin that keeps cfg.HSpacing from every X assigned so far.
//
// It fails with MISSING_UNIT_DATA if a grouped unit is not in g.
func ComputeXPositions(groups LevelGroups, g Graph, cfg Config) (Positions, error) {
	pos := make(Positions)
	depths := groups.Depths()
	if len(depths) == 0 {
		return pos, nil
	}

	if err := positionLeaves(groups[depths[len(depths)-1]], g, cfg, pos); err != nil {
		return nil, err
	}
	for i := len(depths) - 2; i >= 0; i-- {
		d := depths[i]
		if err := positionUpper(groups[d], groups[d+1], g, cfg, pos); err != nil {
			return nil, err
		}
	}
	return pos, nil
}

func positionLeaves(units []string, g Graph, cfg Config, pos Positions) error {
	buckets := make(map[string][]string)
	for _, id := range units {
		u, ok := g.Unit(id)
		if !ok {
			return orgerrors.MissingUnitData(id)
		}
		key := u.Parent
		if key == "" {
			key = rootBucket
		}
		buckets[key] = append(buckets[key], id)
	}

	x := cfg.Margin
	for _, parent := range slices.Sorted(maps.Keys(buckets)) {
		members := slices.Clone(buckets[parent])
		slices.Sort(members)
		for _, id := range members {
			pos[id] = x
			x += cfg.HSpacing
		}
		if len(members) > 0 {
			x += LeafBucketGap * cfg.HSpacing
		}
	}
	return nil
}

func positionUpper(units, below []string, g Graph, cfg Config, pos Positions) error {
	belowSet := make(map[string]bool, len(below))
	for _, id := range below {
		belowSet[id] = true
	}

	type entry struct {
		id       string
		children []float64
	}
	entries := make([]entry, 0, len(units))
	for _, id := range units {
		if _, ok := g.Unit(id); !ok {
			return orgerrors.MissingUnitData(id)
		}
		var xs []float64
		for _, c := range g.Children(id) {
			if x, ok := pos[c]; ok && belowSet[c] {
				xs = append(xs, x)
			}
		}
		entries = append(entries, entry{id, xs})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].children) > len(entries[j].children)
	})

	taken := slices.Sorted(maps.Values(pos))
	var row []float64
	for _, e := range entries {
		var x float64
		if len(e.children) > 0 {
			// A midpoint too close to a unit already on this row moves
			// right to the first free slot.
			x = (slices.Min(e.children) + slices.Max(e.children)) / 2
			x = freeSlot(row, x, cfg.HSpacing)
		} else {
			x = freeSlot(taken, cfg.Margin, cfg.HSpacing)
		}
		pos[e.id] = x
		taken = insertSorted(taken, x)
		row = insertSorted(row, x)
	}
	return nil
}

func insertSorted(xs []float64, x float64) []float64 {
	i, _ := slices.BinarySearchFunc(xs, x, cmp.Compare[float64])
	return slices.Insert(xs, i, x)
}

// freeSlot scans the ascending assigned positions and returns the smallest
// candidate ≥ margin that keeps spacing from all of them. Candidates are
// margin and each assigned position plus spacing, so the result never
// exceeds the rightmost position plus spacing.
func freeSlot(taken []float64, margin, spacing float64) float64 {
	x := margin
	for _, t := range taken {
		if math.Abs(x-t) < spacing {
			x = t + spacing
		}
	}
	return x
}
