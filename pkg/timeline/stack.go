package timeline

import (
	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Stack is a parallel composition: every child is placed at time zero, so
// children overlay rather than concatenate. A timeline's tracks live in a
// stack.
type Stack struct {
	Composition
}

// NewStack creates an empty stack.
func NewStack(name string, sourceRange *opentime.TimeRange) *Stack {
	s := &Stack{}
	s.initComposition(s, name, sourceRange)

	return s
}

// CompositionKind names the stack container kind.
func (s *Stack) CompositionKind() string {
	return "Stack"
}

// AvailableRange returns zero through the longest child duration.
func (s *Stack) AvailableRange() (opentime.TimeRange, error) {
	duration := opentime.New(0, 1)

	for _, child := range s.children {
		childDuration, err := child.Duration()
		if err != nil {
			return opentime.TimeRange{}, err
		}

		duration = duration.Max(childDuration)
	}

	return opentime.NewRange(opentime.New(0, duration.Rate()), duration), nil
}

// placeChild places every child at zero, spanning its own duration.
func (s *Stack) placeChild(_ opentime.RationalTime, _ Composable,
	duration opentime.RationalTime,
) opentime.TimeRange {
	return opentime.NewRange(opentime.New(0, duration.Rate()), duration)
}

// ChildAtTime returns the first child in sequence order whose trimmed range
// contains t. Stack children all start at zero, so their placement keys are
// not monotonic and the query scans instead of bisecting.
func (s *Stack) ChildAtTime(t opentime.RationalTime, shallow bool) (Composable, error) {
	placements, err := s.childPlacements()
	if err != nil {
		return nil, err
	}

	for index, child := range s.children {
		trimmed, ok := s.TrimChildRange(placements[index])
		if !ok || !trimmed.ContainsTime(t) {
			continue
		}

		return s.descendAtTime(child, t, shallow)
	}

	return nil, nil
}

// ChildrenInRange returns the children whose placements overlap
// searchRange, by linear scan over the parallel layout.
func (s *Stack) ChildrenInRange(searchRange opentime.TimeRange, shallow bool) ([]Composable, error) {
	placements, err := s.childPlacements()
	if err != nil {
		return nil, err
	}

	var result []Composable

	for index, child := range s.children {
		if !placements[index].Overlaps(searchRange) {
			continue
		}

		result = append(result, child)

		if shallow {
			continue
		}

		nested, err := s.descendIntoRange(child, searchRange)
		if err != nil {
			return nil, err
		}

		result = append(result, nested...)
	}

	return result, nil
}
