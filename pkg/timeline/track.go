package timeline

import (
	"fmt"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Track kinds.
const (
	TrackKindVideo = "Video"
	TrackKindAudio = "Audio"
)

// Track is a sequential composition: children concatenate in time via the
// prefix-sum placement, except transitions, which overlap the boundary
// between their neighbors.
type Track struct {
	Composition

	kind string
}

// NewTrack creates an empty track of the given kind.
func NewTrack(name, kind string, sourceRange *opentime.TimeRange) *Track {
	t := &Track{kind: kind}
	t.initComposition(t, name, sourceRange)

	return t
}

// Kind returns the track kind, video or audio.
func (t *Track) Kind() string {
	return t.kind
}

// SetKind sets the track kind.
func (t *Track) SetKind(kind string) {
	t.kind = kind
}

// CompositionKind names the track container kind.
func (t *Track) CompositionKind() string {
	return "Track"
}

// AvailableRange returns the track's full extent: zero through the summed
// duration of its non-overlapping children.
func (t *Track) AvailableRange() (opentime.TimeRange, error) {
	duration := opentime.New(0, 1)

	for _, child := range t.children {
		if child.Overlapping() {
			continue
		}

		childDuration, err := child.Duration()
		if err != nil {
			return opentime.TimeRange{}, err
		}

		duration = duration.Add(childDuration)
	}

	return opentime.NewRange(opentime.New(0, duration.Rate()), duration), nil
}

// placeChild places a child at the prefix sum; a transition is shifted
// back by its in offset so it straddles the boundary it blends.
func (t *Track) placeChild(last opentime.RationalTime, child Composable,
	duration opentime.RationalTime,
) opentime.TimeRange {
	if transition, ok := child.(*Transition); ok {
		return opentime.NewRange(last.Sub(transition.InOffset()), duration)
	}

	return opentime.NewRange(last, duration)
}

// NeighborsOf returns the elements immediately before and after child in
// the track. Either side is nil when child is first or last.
func (t *Track) NeighborsOf(child Composable) (previous, next Composable, err error) {
	index, err := t.IndexOfChild(child)
	if err != nil {
		return nil, nil, fmt.Errorf("neighbors in track %q: %w", t.name, err)
	}

	if index > 0 {
		previous = t.children[index-1]
	}

	if index < len(t.children)-1 {
		next = t.children[index+1]
	}

	return previous, next, nil
}

// HandlesOfChild returns the extra duration a neighboring transition
// reveals before and after the child's trimmed range. Either side is nil
// when the neighbor is not a transition.
func (t *Track) HandlesOfChild(child Composable) (head, tail *opentime.RationalTime, err error) {
	previous, next, err := t.NeighborsOf(child)
	if err != nil {
		return nil, nil, err
	}

	if transition, ok := previous.(*Transition); ok {
		in := transition.InOffset()
		head = &in
	}

	if transition, ok := next.(*Transition); ok {
		out := transition.OutOffset()
		tail = &out
	}

	return head, tail, nil
}
