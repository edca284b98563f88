// Package timeline implements the composition core of a nonlinear-editing
// timeline data model: an ownership-constrained tree of time-ordered
// elements (clips, gaps, transitions, nested tracks and stacks) where every
// container answers point and range queries by binary search rather than
// linear scan.
//
// A Composition owns an ordered sequence of children mirrored by an O(1)
// membership index. Child mutation is all-or-nothing: every fallible
// operation validates its arguments completely before touching state.
// Concrete container kinds (Track, Stack) override per-child placement;
// shared query code dispatches through the container's self reference so
// the overrides apply everywhere.
package timeline

import "github.com/Sumatoshi-tech/cutline/pkg/opentime"

// Composable is any element that can be placed inside a Composition. An
// element belongs to at most one composition at a time; its parent
// reference is maintained exclusively by the mutation operations on
// Composition.
type Composable interface {
	// Name returns the element's display name.
	Name() string
	// SetName sets the element's display name.
	SetName(name string)
	// Parent returns the owning composition, or nil for a detached element.
	Parent() *Composition
	// Duration returns the element's length in its own coordinate space.
	Duration() (opentime.RationalTime, error)
	// Overlapping reports whether the element shares time with its
	// neighbors instead of occupying its own slot (true for transitions).
	Overlapping() bool
	// Visible reports whether the element contributes visible media.
	Visible() bool

	setParent(parent *Composition)
}

// composableBase carries the state shared by every element kind: a name and
// a non-owning parent back-reference.
type composableBase struct {
	name   string
	parent *Composition
}

// Name returns the element's display name.
func (b *composableBase) Name() string {
	return b.name
}

// SetName sets the element's display name.
func (b *composableBase) SetName(name string) {
	b.name = name
}

// Parent returns the owning composition, or nil when detached.
func (b *composableBase) Parent() *Composition {
	return b.parent
}

// Overlapping reports false for every kind except Transition.
func (b *composableBase) Overlapping() bool {
	return false
}

// Visible reports true for every kind except Gap and Transition.
func (b *composableBase) Visible() bool {
	return true
}

func (b *composableBase) setParent(parent *Composition) {
	b.parent = parent
}
