package timeline

import (
	"fmt"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// placeChild computes the untrimmed placement of child given the running
// prefix sum of the non-overlapping children before it. The default starts
// the child at the prefix sum, spanning its own duration; concrete kinds
// override this (Stack places every child at zero, Track shifts transitions
// back by their in offset). Both the per-index and the whole-sequence
// placement passes dispatch through this hook.
func (c *Composition) placeChild(last opentime.RationalTime, _ Composable,
	duration opentime.RationalTime,
) opentime.TimeRange {
	return opentime.NewRange(last, duration)
}

// RangeOfChildAtIndex returns the placement of the i-th child in this
// composition's coordinate space: the prefix sum of the non-overlapping
// children before it, adjusted by the concrete kind's placement hook.
func (c *Composition) RangeOfChildAtIndex(index int) (opentime.TimeRange, error) {
	if index < 0 || index >= len(c.children) {
		return opentime.TimeRange{}, fmt.Errorf("range of child %d in %q (length %d): %w",
			index, c.name, len(c.children), ErrIndexOutOfRange)
	}

	duration, err := c.children[index].Duration()
	if err != nil {
		return opentime.TimeRange{}, err
	}

	last := opentime.New(0, duration.Rate())

	for i := 0; i < index; i++ {
		child := c.children[i]
		if child.Overlapping() {
			continue
		}

		childDuration, durErr := child.Duration()
		if durErr != nil {
			return opentime.TimeRange{}, durErr
		}

		last = last.Add(childDuration)
	}

	return c.composer().placeChild(last, c.children[index], duration), nil
}

// TrimmedRangeOfChildAtIndex intersects the i-th child's placement with
// this composition's source range. ok is false when the child is fully
// trimmed away.
func (c *Composition) TrimmedRangeOfChildAtIndex(index int) (opentime.TimeRange, bool, error) {
	placement, err := c.composer().RangeOfChildAtIndex(index)
	if err != nil {
		return opentime.TimeRange{}, false, err
	}

	trimmed, ok := c.TrimChildRange(placement)

	return trimmed, ok, nil
}

// TrimChildRange clips a child placement range to this composition's source
// range. The range is returned unchanged when no source range is set; ok is
// false when the placement lies entirely outside the source range.
func (c *Composition) TrimChildRange(childRange opentime.TimeRange) (opentime.TimeRange, bool) {
	if c.sourceRange == nil {
		return childRange, true
	}

	sr := *c.sourceRange

	pastEnd := childRange.EndTimeExclusive().LessOrEqual(sr.StartTime())
	beforeStart := sr.EndTimeExclusive().LessOrEqual(childRange.StartTime())

	if pastEnd || beforeStart {
		return opentime.TimeRange{}, false
	}

	if childRange.StartTime().Less(sr.StartTime()) {
		childRange = opentime.RangeFromStartEndTime(sr.StartTime(), childRange.EndTimeExclusive())
	}

	if sr.EndTimeExclusive().Less(childRange.EndTimeExclusive()) {
		childRange = opentime.RangeFromStartEndTime(childRange.StartTime(), sr.EndTimeExclusive())
	}

	return childRange, true
}

// RangeOfAllChildren computes the trimmed range of every child in a single
// prefix-sum pass, keyed by child identity. Fully trimmed children are
// omitted. Results agree with per-index queries.
func (c *Composition) RangeOfAllChildren() (map[Composable]opentime.TimeRange, error) {
	placements, err := c.childPlacements()
	if err != nil {
		return nil, err
	}

	result := make(map[Composable]opentime.TimeRange, len(c.children))

	for i, child := range c.children {
		if trimmed, ok := c.TrimChildRange(placements[i]); ok {
			result[child] = trimmed
		}
	}

	return result, nil
}

// RangeOfChild returns the placement of a direct or indirect descendant in
// this composition's coordinate space, composing per-child placements
// through every intermediate container.
func (c *Composition) RangeOfChild(child Composable) (opentime.TimeRange, error) {
	parents, err := c.pathFromChild(child)
	if err != nil {
		return opentime.TimeRange{}, err
	}

	current := child

	var result opentime.TimeRange

	for step, parent := range parents {
		index, idxErr := parent.IndexOfChild(current)
		if idxErr != nil {
			return opentime.TimeRange{}, idxErr
		}

		placement, rangeErr := parent.composer().RangeOfChildAtIndex(index)
		if rangeErr != nil {
			return opentime.TimeRange{}, rangeErr
		}

		if step == 0 {
			result = placement
		} else {
			// current is an intermediate container: map result from its
			// local space into parent's space.
			trimmed, trimErr := current.(Itemer).TrimmedRange()
			if trimErr != nil {
				return opentime.TimeRange{}, trimErr
			}

			result = result.Offset(placement.StartTime().Sub(trimmed.StartTime()))
		}

		// Continue with the parent's concrete value so child-index lookups
		// at the next level match the stored child identity.
		current = parent.self
	}

	return result, nil
}

// TrimmedRangeOfChild returns RangeOfChild intersected with this
// composition's source range. ok is false when the child is fully trimmed
// away.
func (c *Composition) TrimmedRangeOfChild(child Composable) (opentime.TimeRange, bool, error) {
	placement, err := c.RangeOfChild(child)
	if err != nil {
		return opentime.TimeRange{}, false, err
	}

	trimmed, ok := c.TrimChildRange(placement)

	return trimmed, ok, nil
}

// HandlesOfChild returns no handles for the generic composition; Track
// overrides this with transition-aware slack.
func (c *Composition) HandlesOfChild(Composable) (head, tail *opentime.RationalTime, err error) {
	return nil, nil, nil
}

// pathFromChild returns the chain of compositions from child's immediate
// parent up to and including this composition. It fails with ErrNotAChild
// when child is not a descendant.
func (c *Composition) pathFromChild(child Composable) ([]*Composition, error) {
	var parents []*Composition

	parent := child.Parent()
	for parent != nil {
		parents = append(parents, parent)
		if parent == c {
			return parents, nil
		}

		parent = parent.Parent()
	}

	return nil, fmt.Errorf("range of child %q in %q: %w", child.Name(), c.name, ErrNotAChild)
}
