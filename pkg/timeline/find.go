package timeline

import (
	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Find returns every descendant of comp matching kind T, in pre-order
// traversal order: a container-level match precedes its subtree's matches,
// siblings stay in child order. A non-nil searchRange restricts the result
// to elements overlapping it; the range is narrowed by bisection before any
// kind test runs, and remapped into each nested composition's coordinate
// space before recursing. When shallow is true only direct children are
// considered.
//
// The kind test is a plain type assertion, so it is reflexive and matches
// interface kinds as well as concrete ones: Find[Composable] returns every
// descendant, Find[*Clip] only clips.
func Find[T Composable](comp Composer, searchRange *opentime.TimeRange, shallow bool) ([]T, error) {
	c := comp.composition()

	var (
		candidates []Composable
		err        error
	)

	if searchRange != nil {
		candidates, err = comp.ChildrenInRange(*searchRange, true)
		if err != nil {
			return nil, err
		}
	} else {
		candidates = c.children
	}

	var out []T

	for _, child := range candidates {
		if match, ok := child.(T); ok {
			out = append(out, match)
		}

		if shallow {
			continue
		}

		sub, isComposition := child.(Composer)
		if !isComposition {
			continue
		}

		// Remap the search range from this composition's space into the
		// candidate's local space, fresh for every candidate.
		childRange := searchRange
		if searchRange != nil {
			remapped, remapErr := c.TransformedTimeRange(*searchRange, sub)
			if remapErr != nil {
				return nil, remapErr
			}

			childRange = &remapped
		}

		nested, findErr := Find[T](sub, childRange, shallow)
		if findErr != nil {
			return nil, findErr
		}

		out = append(out, nested...)
	}

	return out, nil
}

// FindClips returns every clip under comp, optionally restricted to a
// search range.
func FindClips(comp Composer, searchRange *opentime.TimeRange, shallow bool) ([]*Clip, error) {
	return Find[*Clip](comp, searchRange, shallow)
}
