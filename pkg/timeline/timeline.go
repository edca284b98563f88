package timeline

import (
	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Timeline is the root of a composition tree: a stack of tracks plus an
// optional global start time anchoring the timeline in an external clock.
type Timeline struct {
	name            string
	globalStartTime *opentime.RationalTime
	tracks          *Stack
}

// NewTimeline creates a timeline with an empty track stack.
func NewTimeline(name string) *Timeline {
	return &Timeline{
		name:   name,
		tracks: NewStack("tracks", nil),
	}
}

// Name returns the timeline's display name.
func (tl *Timeline) Name() string {
	return tl.name
}

// SetName sets the timeline's display name.
func (tl *Timeline) SetName(name string) {
	tl.name = name
}

// GlobalStartTime returns the external-clock anchor, or nil.
func (tl *Timeline) GlobalStartTime() *opentime.RationalTime {
	return tl.globalStartTime
}

// SetGlobalStartTime sets or clears the external-clock anchor.
func (tl *Timeline) SetGlobalStartTime(t *opentime.RationalTime) {
	tl.globalStartTime = t
}

// Tracks returns the stack holding the timeline's tracks.
func (tl *Timeline) Tracks() *Stack {
	return tl.tracks
}

// SetTracks replaces the track stack. A nil stack installs an empty one.
func (tl *Timeline) SetTracks(tracks *Stack) {
	if tracks == nil {
		tracks = NewStack("tracks", nil)
	}

	tl.tracks = tracks
}

// Duration returns the timeline's total duration, the extent of its track
// stack.
func (tl *Timeline) Duration() (opentime.RationalTime, error) {
	return tl.tracks.Duration()
}

// RangeOfChild returns the placement of a descendant element in the track
// stack's coordinate space.
func (tl *Timeline) RangeOfChild(child Composable) (opentime.TimeRange, error) {
	return tl.tracks.RangeOfChild(child)
}

// VideoTracks returns the timeline's video tracks in stack order.
func (tl *Timeline) VideoTracks() []*Track {
	return tl.tracksOfKind(TrackKindVideo)
}

// AudioTracks returns the timeline's audio tracks in stack order.
func (tl *Timeline) AudioTracks() []*Track {
	return tl.tracksOfKind(TrackKindAudio)
}

func (tl *Timeline) tracksOfKind(kind string) []*Track {
	var result []*Track

	for _, child := range tl.tracks.children {
		if track, ok := child.(*Track); ok && track.Kind() == kind {
			result = append(result, track)
		}
	}

	return result
}

// FindClips returns every clip in the timeline, optionally restricted to a
// search range.
func (tl *Timeline) FindClips(searchRange *opentime.TimeRange, shallow bool) ([]*Clip, error) {
	return Find[*Clip](tl.tracks, searchRange, shallow)
}
