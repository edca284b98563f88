package timeline

import "errors"

// Sentinel errors reported by composition operations. Fallible operations
// wrap these with call-site context; match with errors.Is.
var (
	// ErrIndexOutOfRange is returned for an out-of-bounds position argument.
	ErrIndexOutOfRange = errors.New("timeline: child index out of range")

	// ErrChildAlreadyParented is returned when inserting an element that
	// already belongs to a composition.
	ErrChildAlreadyParented = errors.New("timeline: child already has a parent")

	// ErrDuplicateChild is returned when a SetChildren batch contains the
	// same element twice.
	ErrDuplicateChild = errors.New("timeline: duplicate child in batch")

	// ErrNotAChild is returned when the queried element is not a descendant
	// of the composition being asked.
	ErrNotAChild = errors.New("timeline: not a child of this composition")

	// ErrInvalidSearchBound is returned when a negative lower bound is
	// passed to the bisection engine.
	ErrInvalidSearchBound = errors.New("timeline: lower search bound must be non-negative")

	// ErrIntroducesCycle is returned when inserting an ancestor as its own
	// descendant's child.
	ErrIntroducesCycle = errors.New("timeline: insertion would create a cycle")

	// ErrNoDuration is returned when an element cannot compute a duration,
	// for example a clip without a media reference.
	ErrNoDuration = errors.New("timeline: element has no computable duration")
)
