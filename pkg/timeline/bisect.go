package timeline

import (
	"fmt"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// wholeSequence selects the key sequence length as the upper search
// bound.
const wholeSequence = -1

// childPlacements computes the untrimmed placement of every child in one
// prefix-sum pass, indexed by child position. Queries read their bisection
// keys from this table, so locating a child costs a single pass instead of
// one prefix sum per bisection step.
func (c *Composition) childPlacements() ([]opentime.TimeRange, error) {
	placements := make([]opentime.TimeRange, len(c.children))
	if len(c.children) == 0 {
		return placements, nil
	}

	firstDuration, err := c.children[0].Duration()
	if err != nil {
		return nil, err
	}

	last := opentime.New(0, firstDuration.Rate())

	for i, child := range c.children {
		duration, durErr := child.Duration()
		if durErr != nil {
			return nil, durErr
		}

		placements[i] = c.composer().placeChild(last, child, duration)

		if !child.Overlapping() {
			last = last.Add(duration)
		}
	}

	return placements, nil
}

// placementStarts extracts the start-time key sequence from a placement
// table. Keys must be non-decreasing over the queried sub-range;
// prefix-sum placement guarantees that by construction.
func placementStarts(placements []opentime.TimeRange) []opentime.RationalTime {
	keys := make([]opentime.RationalTime, len(placements))
	for i, placement := range placements {
		keys[i] = placement.StartTime()
	}

	return keys
}

// placementEnds extracts the exclusive-end key sequence from a placement
// table.
func placementEnds(placements []opentime.TimeRange) []opentime.RationalTime {
	keys := make([]opentime.RationalTime, len(placements))
	for i, placement := range placements {
		keys[i] = placement.EndTimeExclusive()
	}

	return keys
}

// bisectRight returns the smallest index i in [lower, upper] such that
// every key before i is <= tgt and every key from i onward is > tgt: the
// insertion point placing tgt after all equal keys. upper may be
// wholeSequence to search to the end.
func (c *Composition) bisectRight(tgt opentime.RationalTime, keys []opentime.RationalTime,
	lower, upper int,
) (int, error) {
	if lower < 0 {
		return 0, fmt.Errorf("bisect right in %q: lower bound %d: %w", c.name, lower, ErrInvalidSearchBound)
	}

	if upper == wholeSequence {
		upper = len(keys)
	}

	for lower < upper {
		mid := lower + (upper-lower)/2

		if tgt.Less(keys[mid]) {
			upper = mid
		} else {
			lower = mid + 1
		}
	}

	return lower, nil
}

// bisectLeft returns the smallest index i in [lower, upper] such that every
// key before i is < tgt and every key from i onward is >= tgt: the
// insertion point placing tgt before all equal keys. upper may be
// wholeSequence to search to the end.
func (c *Composition) bisectLeft(tgt opentime.RationalTime, keys []opentime.RationalTime,
	lower, upper int,
) (int, error) {
	if lower < 0 {
		return 0, fmt.Errorf("bisect left in %q: lower bound %d: %w", c.name, lower, ErrInvalidSearchBound)
	}

	if upper == wholeSequence {
		upper = len(keys)
	}

	for lower < upper {
		mid := lower + (upper-lower)/2

		if keys[mid].Less(tgt) {
			lower = mid + 1
		} else {
			upper = mid
		}
	}

	return lower, nil
}
