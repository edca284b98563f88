package timeline

import (
	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// ChildAtTime returns the child whose trimmed range contains t, or nil when
// no child does. Placements are computed in one prefix-sum pass and the
// direct child located by one bisection over the cumulative end times.
// Unless shallow is true, the search recurses into nested compositions with
// t remapped into each child's coordinate space, terminating at a leaf
// element.
func (c *Composition) ChildAtTime(t opentime.RationalTime, shallow bool) (Composable, error) {
	placements, err := c.childPlacements()
	if err != nil {
		return nil, err
	}

	index, err := c.bisectRight(t, placementEnds(placements), 0, wholeSequence)
	if err != nil {
		return nil, err
	}

	if index >= len(c.children) {
		return nil, nil
	}

	trimmed, ok := c.TrimChildRange(placements[index])
	if !ok || !trimmed.ContainsTime(t) {
		return nil, nil
	}

	return c.descendAtTime(c.children[index], t, shallow)
}

// descendAtTime recurses a point query into child when it is a nested
// composition, remapping t into the child's coordinate space. The recursion
// result replaces the direct child: a nested composition with nothing at
// the remapped time yields an absent result.
func (c *Composition) descendAtTime(child Composable, t opentime.RationalTime, shallow bool) (Composable, error) {
	if shallow {
		return child, nil
	}

	sub, isComposition := child.(Composer)
	if !isComposition {
		return child, nil
	}

	childTime, err := c.TransformedTime(t, sub)
	if err != nil {
		return nil, err
	}

	return sub.ChildAtTime(childTime, shallow)
}

// ChildrenInRange returns the children whose placements overlap
// searchRange, in child order. Placements are computed in one prefix-sum
// pass; the first and last overlapping indices are then located by
// bisection over the cumulative keys. Unless shallow is true, nested
// compositions contribute their own overlapping descendants immediately
// after themselves, with the range remapped into each child's coordinate
// space.
func (c *Composition) ChildrenInRange(searchRange opentime.TimeRange, shallow bool) ([]Composable, error) {
	placements, err := c.childPlacements()
	if err != nil {
		return nil, err
	}

	// First child whose end lies after the range start.
	first, err := c.bisectRight(searchRange.StartTime(), placementEnds(placements), 0, wholeSequence)
	if err != nil {
		return nil, err
	}

	// First child whose start lies at or past the range end; the partial
	// lower bound skips the prefix the first bisection already ruled out.
	last, err := c.bisectLeft(searchRange.EndTimeExclusive(), placementStarts(placements), first, wholeSequence)
	if err != nil {
		return nil, err
	}

	if first >= last {
		return nil, nil
	}

	result := make([]Composable, 0, last-first)

	for _, child := range c.children[first:last] {
		result = append(result, child)

		if shallow {
			continue
		}

		nested, err := c.descendIntoRange(child, searchRange)
		if err != nil {
			return nil, err
		}

		result = append(result, nested...)
	}

	return result, nil
}

// descendIntoRange recurses a range query into child when it is a nested
// composition, remapping searchRange into the child's coordinate space.
func (c *Composition) descendIntoRange(child Composable, searchRange opentime.TimeRange) ([]Composable, error) {
	sub, isComposition := child.(Composer)
	if !isComposition {
		return nil, nil
	}

	childRange, err := c.TransformedTimeRange(searchRange, sub)
	if err != nil {
		return nil, err
	}

	return sub.ChildrenInRange(childRange, false)
}
