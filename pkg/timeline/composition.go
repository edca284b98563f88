package timeline

import (
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Composer is implemented by every container kind. It extends Itemer with
// child access and the placement computations concrete kinds are free to
// override (Track shifts transitions, Stack places everything at zero).
type Composer interface {
	Itemer

	// Children returns the ordered child sequence.
	Children() []Composable
	// CompositionKind names the concrete container kind.
	CompositionKind() string
	// RangeOfChildAtIndex returns the container's placement of its i-th
	// child in the container's own coordinate space.
	RangeOfChildAtIndex(index int) (opentime.TimeRange, error)
	// TrimmedRangeOfChildAtIndex intersects the i-th child's placement with
	// the container's source range. ok is false when the child is fully
	// trimmed away.
	TrimmedRangeOfChildAtIndex(index int) (r opentime.TimeRange, ok bool, err error)
	// RangeOfAllChildren computes the trimmed range of every child in one
	// pass, keyed by child identity. Fully trimmed children are omitted.
	RangeOfAllChildren() (map[Composable]opentime.TimeRange, error)
	// HandlesOfChild returns the extra durations available immediately
	// before and after the child's trimmed range. Either side is nil when
	// no such slack exists.
	HandlesOfChild(child Composable) (head, tail *opentime.RationalTime, err error)
	// ChildAtTime returns the element at t, or nil when nothing occupies
	// it. See Composition.ChildAtTime.
	ChildAtTime(t opentime.RationalTime, shallow bool) (Composable, error)
	// ChildrenInRange returns the elements overlapping searchRange. See
	// Composition.ChildrenInRange.
	ChildrenInRange(searchRange opentime.TimeRange, shallow bool) ([]Composable, error)

	composition() *Composition

	// placeChild computes the untrimmed placement of child given the
	// running prefix sum. Concrete kinds override this to adjust the
	// default sequential layout.
	placeChild(last opentime.RationalTime, child Composable, duration opentime.RationalTime) opentime.TimeRange
}

// Composition is an ordered, owning sequence of Composables with time-range
// computation and search. It is itself a Composable, so compositions nest
// to arbitrary depth; cycles are rejected at mutation time.
//
// A Composition is not safe for concurrent mutation. All operations run to
// completion on the calling thread; external locking is the caller's
// responsibility.
type Composition struct {
	Item

	children []Composable

	// childIndex mirrors children exactly, mapping each child to its
	// current position for O(1) membership and index lookups.
	childIndex map[Composable]int
}

// NewComposition creates an empty generic composition using the default
// prefix-sum child placement. Concrete kinds (Track, Stack) are usually
// what callers want.
func NewComposition(name string, sourceRange *opentime.TimeRange) *Composition {
	c := &Composition{}
	c.initComposition(c, name, sourceRange)

	return c
}

func (c *Composition) initComposition(self Composer, name string, sourceRange *opentime.TimeRange) {
	c.initItem(self, name, sourceRange)
	c.childIndex = make(map[Composable]int)
}

func (c *Composition) composition() *Composition {
	return c
}

// CompositionKind names the generic container kind.
func (c *Composition) CompositionKind() string {
	return "Composition"
}

func (c *Composition) composer() Composer {
	return c.self.(Composer)
}

// Children returns a copy of the ordered child sequence. Mutating the
// returned slice does not affect the composition.
func (c *Composition) Children() []Composable {
	return slices.Clone(c.children)
}

// Len returns the number of direct children.
func (c *Composition) Len() int {
	return len(c.children)
}

// HasChild reports in O(1) whether child is a direct child of this
// composition.
func (c *Composition) HasChild(child Composable) bool {
	_, ok := c.childIndex[child]

	return ok
}

// IndexOfChild returns the position of child in the child sequence, or
// ErrNotAChild when absent.
func (c *Composition) IndexOfChild(child Composable) (int, error) {
	index, ok := c.childIndex[child]
	if !ok {
		return -1, fmt.Errorf("index of child in %q: %w", c.name, ErrNotAChild)
	}

	return index, nil
}

// IsParentOf reports whether other is a direct or indirect descendant of
// this composition, walking parent references up to the root.
func (c *Composition) IsParentOf(other Composable) bool {
	parent := other.Parent()
	for parent != nil {
		if parent == c {
			return true
		}

		parent = parent.Parent()
	}

	return false
}

// HasClips reports whether any clip exists in this composition or any
// nested composition.
func (c *Composition) HasClips() bool {
	for _, child := range c.children {
		if _, ok := child.(*Clip); ok {
			return true
		}

		if sub, ok := child.(Composer); ok && sub.composition().HasClips() {
			return true
		}
	}

	return false
}

// SetChildren replaces the entire child sequence. It fails without touching
// state when any candidate belongs to a different composition, appears
// twice in the batch, or would introduce a cycle. Old children are
// un-parented, new children parented, in list order.
func (c *Composition) SetChildren(children []Composable) error {
	seen := make(map[Composable]struct{}, len(children))

	for _, child := range children {
		if _, dup := seen[child]; dup {
			return fmt.Errorf("set children of %q: element %q: %w", c.name, child.Name(), ErrDuplicateChild)
		}

		seen[child] = struct{}{}

		// A candidate already owned by this composition is fine here: the
		// batch replaces the whole sequence, so reordering is legal.
		if child.Parent() != nil && child.Parent() != c {
			return fmt.Errorf("set children of %q: element %q: %w",
				c.name, child.Name(), ErrChildAlreadyParented)
		}

		err := c.validateCycle(child)
		if err != nil {
			return fmt.Errorf("set children of %q: %w", c.name, err)
		}
	}

	for _, old := range c.children {
		old.setParent(nil)
	}

	c.children = slices.Clone(children)
	c.childIndex = make(map[Composable]int, len(children))

	for i, child := range children {
		child.setParent(c)
		c.childIndex[child] = i
	}

	return nil
}

// InsertChild inserts child at index, shifting subsequent children up by
// one. Valid indices are [0, Len()].
func (c *Composition) InsertChild(index int, child Composable) error {
	if index < 0 || index > len(c.children) {
		return fmt.Errorf("insert child at %d in %q (length %d): %w",
			index, c.name, len(c.children), ErrIndexOutOfRange)
	}

	err := c.validateCandidate(child)
	if err != nil {
		return fmt.Errorf("insert child at %d in %q: %w", index, c.name, err)
	}

	c.children = slices.Insert(c.children, index, child)
	child.setParent(c)
	c.reindexFrom(index)

	return nil
}

// AppendChild inserts child at the end of the sequence.
func (c *Composition) AppendChild(child Composable) error {
	return c.InsertChild(len(c.children), child)
}

// SetChild replaces the child at index. The replaced child is un-parented.
// Valid indices are [0, Len()-1].
func (c *Composition) SetChild(index int, child Composable) error {
	if index < 0 || index >= len(c.children) {
		return fmt.Errorf("set child at %d in %q (length %d): %w",
			index, c.name, len(c.children), ErrIndexOutOfRange)
	}

	err := c.validateCandidate(child)
	if err != nil {
		return fmt.Errorf("set child at %d in %q: %w", index, c.name, err)
	}

	old := c.children[index]
	old.setParent(nil)
	delete(c.childIndex, old)

	c.children[index] = child
	child.setParent(c)
	c.childIndex[child] = index

	return nil
}

// RemoveChild removes the child at index, un-parenting it and compacting
// the sequence.
func (c *Composition) RemoveChild(index int) error {
	if index < 0 || index >= len(c.children) {
		return fmt.Errorf("remove child at %d in %q (length %d): %w",
			index, c.name, len(c.children), ErrIndexOutOfRange)
	}

	removed := c.children[index]
	removed.setParent(nil)
	delete(c.childIndex, removed)

	c.children = slices.Delete(c.children, index, index+1)
	c.reindexFrom(index)

	return nil
}

// ClearChildren removes and un-parents every child. It never fails and is
// idempotent.
func (c *Composition) ClearChildren() {
	for _, child := range c.children {
		child.setParent(nil)
	}

	c.children = nil
	c.childIndex = make(map[Composable]int)
}

// validateCandidate checks a prospective child: it must be detached and
// must not be this composition or one of its ancestors.
func (c *Composition) validateCandidate(child Composable) error {
	if child.Parent() != nil {
		return fmt.Errorf("element %q: %w", child.Name(), ErrChildAlreadyParented)
	}

	return c.validateCycle(child)
}

// validateCycle rejects a candidate that is this composition or one of its
// ancestors.
func (c *Composition) validateCycle(child Composable) error {
	if sub, ok := child.(Composer); ok {
		comp := sub.composition()
		if comp == c || comp.IsParentOf(c.self) {
			return fmt.Errorf("element %q: %w", child.Name(), ErrIntroducesCycle)
		}
	}

	return nil
}

// reindexFrom refreshes childIndex positions for children at or after
// start, after an insert or remove shifted them.
func (c *Composition) reindexFrom(start int) {
	for i := start; i < len(c.children); i++ {
		c.childIndex[c.children[i]] = i
	}
}
