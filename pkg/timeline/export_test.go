package timeline

import (
	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Test hooks exposing the bisection engine for correctness tests and the
// benchmark harness.

// WholeSequence selects the key sequence length as the upper bound.
const WholeSequence = wholeSequence

// PlacementEnds re-exports the exclusive-end key extraction.
var PlacementEnds = placementEnds

// BisectRight exposes the right-insertion-point search.
func (c *Composition) BisectRight(tgt opentime.RationalTime, keys []opentime.RationalTime,
	lower, upper int,
) (int, error) {
	return c.bisectRight(tgt, keys, lower, upper)
}

// BisectLeft exposes the left-insertion-point search.
func (c *Composition) BisectLeft(tgt opentime.RationalTime, keys []opentime.RationalTime,
	lower, upper int,
) (int, error) {
	return c.bisectLeft(tgt, keys, lower, upper)
}

// ChildPlacements exposes the single-pass untrimmed placement table.
func (c *Composition) ChildPlacements() ([]opentime.TimeRange, error) {
	return c.childPlacements()
}
