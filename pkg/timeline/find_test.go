package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/cutline/pkg/timeline"
)

// newNestedStack builds:
//
//	stack
//	├── trackA: clipA0 (10), clipA1 (5)
//	└── trackB: clipB0 (10), gap (5), innerTrack: clipI0 (5)
func newNestedStack(t *testing.T) (stack *timeline.Stack, clips []*timeline.Clip) {
	t.Helper()

	clipA0 := newTestClip("a0", 10)
	clipA1 := newTestClip("a1", 5)
	clipB0 := newTestClip("b0", 10)
	clipI0 := newTestClip("i0", 5)

	trackA := timeline.NewTrack("trackA", timeline.TrackKindVideo, nil)
	require.NoError(t, trackA.AppendChild(clipA0))
	require.NoError(t, trackA.AppendChild(clipA1))

	inner := timeline.NewTrack("inner", timeline.TrackKindVideo, nil)
	require.NoError(t, inner.AppendChild(clipI0))

	trackB := timeline.NewTrack("trackB", timeline.TrackKindAudio, nil)
	require.NoError(t, trackB.AppendChild(clipB0))
	require.NoError(t, trackB.AppendChild(timeline.NewGap("g", frames(5))))
	require.NoError(t, trackB.AppendChild(inner))

	stack = timeline.NewStack("stack", nil)
	require.NoError(t, stack.AppendChild(trackA))
	require.NoError(t, stack.AppendChild(trackB))

	return stack, []*timeline.Clip{clipA0, clipA1, clipB0, clipI0}
}

// TestFind_AllClips verifies deep typed search returns every clip in
// pre-order.
func TestFind_AllClips(t *testing.T) {
	t.Parallel()

	stack, clips := newNestedStack(t)

	found, err := timeline.Find[*timeline.Clip](stack, nil, false)
	require.NoError(t, err)
	require.Len(t, found, 4)

	for i, clip := range clips {
		assert.Same(t, clip, found[i])
	}
}

// TestFind_Tracks verifies container kinds are themselves findable, parents
// before their subtrees.
func TestFind_Tracks(t *testing.T) {
	t.Parallel()

	stack, _ := newNestedStack(t)

	found, err := timeline.Find[*timeline.Track](stack, nil, false)
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "trackA", found[0].Name())
	assert.Equal(t, "trackB", found[1].Name())
	assert.Equal(t, "inner", found[2].Name())
}

// TestFind_Shallow verifies the shallow search stops at direct children.
func TestFind_Shallow(t *testing.T) {
	t.Parallel()

	stack, _ := newNestedStack(t)

	found, err := timeline.Find[*timeline.Clip](stack, nil, true)
	require.NoError(t, err)
	assert.Empty(t, found)

	tracks, err := timeline.Find[*timeline.Track](stack, nil, true)
	require.NoError(t, err)
	assert.Len(t, tracks, 2)
}

// TestFind_InterfaceKind verifies the reflexive kind test: every descendant
// matches Composable.
func TestFind_InterfaceKind(t *testing.T) {
	t.Parallel()

	stack, _ := newNestedStack(t)

	found, err := timeline.Find[timeline.Composable](stack, nil, false)
	require.NoError(t, err)
	// 2 tracks + 2 clips + 1 clip + gap + inner track + 1 clip.
	assert.Len(t, found, 8)
}

// TestFind_RangeRestricted verifies the search range narrows candidates and
// is remapped into nested coordinate spaces.
func TestFind_RangeRestricted(t *testing.T) {
	t.Parallel()

	stack, clips := newNestedStack(t)

	// Stack-space [12, 18): trackA-local [12,18) overlaps clipA1 ([10,15));
	// trackB-local [12,18) overlaps the gap and the inner track, whose
	// local [−3, 3) overlaps clipI0 ([0,5)).
	search := frameRange(12, 18)

	found, err := timeline.Find[*timeline.Clip](stack, &search, false)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Same(t, clips[1], found[0])
	assert.Same(t, clips[3], found[1])
}

// TestFindClips_Helper verifies the convenience wrapper.
func TestFindClips_Helper(t *testing.T) {
	t.Parallel()

	stack, clips := newNestedStack(t)

	found, err := timeline.FindClips(stack, nil, false)
	require.NoError(t, err)
	assert.Len(t, found, len(clips))
}

// TestTimeline_Roots verifies the root object's track accessors and global
// start time.
func TestTimeline_Roots(t *testing.T) {
	t.Parallel()

	tl := timeline.NewTimeline("cut")
	assert.Equal(t, "cut", tl.Name())
	assert.Nil(t, tl.GlobalStartTime())

	video := timeline.NewTrack("v1", timeline.TrackKindVideo, nil)
	audio := timeline.NewTrack("a1", timeline.TrackKindAudio, nil)
	require.NoError(t, video.AppendChild(newTestClip("c", 10)))
	require.NoError(t, tl.Tracks().AppendChild(video))
	require.NoError(t, tl.Tracks().AppendChild(audio))

	require.Len(t, tl.VideoTracks(), 1)
	require.Len(t, tl.AudioTracks(), 1)

	duration, err := tl.Duration()
	require.NoError(t, err)
	assert.True(t, duration.Equal(frames(10)))

	start := frames(86400)
	tl.SetGlobalStartTime(&start)
	require.NotNil(t, tl.GlobalStartTime())

	clipsFound, err := tl.FindClips(nil, false)
	require.NoError(t, err)
	assert.Len(t, clipsFound, 1)
}
