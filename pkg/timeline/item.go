package timeline

import (
	"fmt"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Itemer is implemented by every visible, trimmable element: clips, gaps,
// and the container kinds. It extends Composable with range computation in
// the element's own coordinate space and with coordinate transforms between
// items in the same tree.
type Itemer interface {
	Composable

	// SourceRange returns the optional trim window narrowing the element's
	// active portion, or nil when untrimmed.
	SourceRange() *opentime.TimeRange
	// SetSourceRange sets or clears the trim window.
	SetSourceRange(r *opentime.TimeRange)
	// AvailableRange returns the full range of media or children the
	// element can provide, before trimming.
	AvailableRange() (opentime.TimeRange, error)
	// TrimmedRange returns the element's active range: the source range
	// when set, the available range otherwise.
	TrimmedRange() (opentime.TimeRange, error)

	item() *Item
}

// Item is the base for visible, trimmable elements. Concrete kinds embed it
// and supply AvailableRange; Item derives the trimmed range, duration, and
// coordinate transforms from it.
type Item struct {
	composableBase

	sourceRange *opentime.TimeRange

	// self is the outermost concrete value embedding this Item, so base
	// methods dispatch to overridden range computations.
	self Itemer
}

func (it *Item) initItem(self Itemer, name string, sourceRange *opentime.TimeRange) {
	it.self = self
	it.name = name
	it.sourceRange = sourceRange
}

func (it *Item) item() *Item {
	return it
}

// SourceRange returns the trim window, or nil when untrimmed.
func (it *Item) SourceRange() *opentime.TimeRange {
	return it.sourceRange
}

// SetSourceRange sets or clears the trim window.
func (it *Item) SetSourceRange(r *opentime.TimeRange) {
	it.sourceRange = r
}

// AvailableRange is overridden by every concrete kind; the base item has no
// media of its own.
func (it *Item) AvailableRange() (opentime.TimeRange, error) {
	return opentime.TimeRange{}, fmt.Errorf("available range of %q: %w", it.name, ErrNoDuration)
}

// TrimmedRange returns the source range when set, otherwise the available
// range.
func (it *Item) TrimmedRange() (opentime.TimeRange, error) {
	if it.sourceRange != nil {
		return *it.sourceRange, nil
	}

	return it.self.AvailableRange()
}

// Duration returns the length of the trimmed range.
func (it *Item) Duration() (opentime.RationalTime, error) {
	trimmed, err := it.self.TrimmedRange()
	if err != nil {
		return opentime.RationalTime{}, err
	}

	return trimmed.Duration(), nil
}

// VisibleRange returns the trimmed range extended by the head and tail
// handles the parent grants this item, covering media a neighboring
// transition will reveal.
func (it *Item) VisibleRange() (opentime.TimeRange, error) {
	result, err := it.self.TrimmedRange()
	if err != nil {
		return opentime.TimeRange{}, err
	}

	parent := it.parent
	if parent == nil {
		return result, nil
	}

	head, tail, err := parent.composer().HandlesOfChild(it.self)
	if err != nil {
		return opentime.TimeRange{}, err
	}

	if head != nil {
		result = opentime.NewRange(result.StartTime().Sub(*head), result.Duration().Add(*head))
	}

	if tail != nil {
		result = result.DurationExtendedBy(*tail)
	}

	return result, nil
}

// TransformedTime maps a time from this item's coordinate space into the
// coordinate space of another item in the same tree. The mapping is the
// exact inverse of the per-child placement each ancestor computes.
func (it *Item) TransformedTime(t opentime.RationalTime, to Itemer) (opentime.RationalTime, error) {
	if to == nil || to.item() == it {
		return t, nil
	}

	root := it.highestAncestor()
	result := t

	// Walk up from this item toward the root, mapping into each parent's
	// space, stopping early if the target is an ancestor.
	current := it.self
	for current.item() != root.item() && current.item() != to.item() {
		offset, err := stepToParent(current)
		if err != nil {
			return opentime.RationalTime{}, err
		}

		result = result.Add(offset)
		current = current.Parent().self
	}

	ancestor := current

	// Walk up from the target toward the shared ancestor, applying the
	// inverse mapping. The per-level offsets are additive, so the order of
	// application does not matter.
	current = to
	for current.item() != root.item() && current.item() != ancestor.item() {
		offset, err := stepToParent(current)
		if err != nil {
			return opentime.RationalTime{}, err
		}

		result = result.Sub(offset)
		current = current.Parent().self
	}

	if current.item() != ancestor.item() {
		return opentime.RationalTime{}, fmt.Errorf(
			"transform time from %q to %q: %w", it.name, to.Name(), ErrNotAChild)
	}

	return result, nil
}

// TransformedTimeRange maps a range from this item's coordinate space into
// the coordinate space of another item in the same tree. The duration is
// preserved; only the start moves.
func (it *Item) TransformedTimeRange(r opentime.TimeRange, to Itemer) (opentime.TimeRange, error) {
	start, err := it.TransformedTime(r.StartTime(), to)
	if err != nil {
		return opentime.TimeRange{}, err
	}

	return opentime.NewRange(start, r.Duration()), nil
}

// stepToParent returns the additive offset mapping a time in current's
// space into its parent's space: the parent's placement start minus
// current's trimmed start.
func stepToParent(current Itemer) (opentime.RationalTime, error) {
	parent := current.Parent()
	if parent == nil {
		return opentime.RationalTime{}, fmt.Errorf(
			"transform time through %q: %w", current.Name(), ErrNotAChild)
	}

	trimmed, err := current.TrimmedRange()
	if err != nil {
		return opentime.RationalTime{}, err
	}

	index, err := parent.IndexOfChild(current)
	if err != nil {
		return opentime.RationalTime{}, err
	}

	placement, err := parent.composer().RangeOfChildAtIndex(index)
	if err != nil {
		return opentime.RationalTime{}, err
	}

	return placement.StartTime().Sub(trimmed.StartTime()), nil
}

// highestAncestor returns the root item of the tree this item belongs to.
func (it *Item) highestAncestor() Itemer {
	current := it.self
	for current.Parent() != nil {
		current = current.Parent().self
	}

	return current
}
