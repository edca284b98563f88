package persist_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
	"github.com/Sumatoshi-tech/cutline/pkg/persist"
	"github.com/Sumatoshi-tech/cutline/pkg/timeline"
)

const testRate = 24.0

func frames(n float64) opentime.RationalTime {
	return opentime.New(n, testRate)
}

func frameRange(start, duration float64) opentime.TimeRange {
	return opentime.NewRange(frames(start), frames(duration))
}

// newEditTimeline builds a timeline with two tracks, media references,
// a gap and a transition, exercising every persisted element kind.
func newEditTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()

	mediaRange := frameRange(0, 100)
	ref := &timeline.MediaReference{
		TargetURL:      "file:///media/shot-01.mov",
		AvailableRange: &mediaRange,
	}

	sourceA := frameRange(10, 20)
	sourceB := frameRange(0, 15)

	video := timeline.NewTrack("V1", timeline.TrackKindVideo, nil)
	require.NoError(t, video.AppendChild(timeline.NewClip("shot-01", ref, &sourceA)))
	require.NoError(t, video.AppendChild(timeline.NewTransition(
		"dissolve", timeline.TransitionTypeSMPTEDissolve, frames(2), frames(3))))
	require.NoError(t, video.AppendChild(timeline.NewClip("shot-02", nil, &sourceB)))

	audio := timeline.NewTrack("A1", timeline.TrackKindAudio, nil)
	require.NoError(t, audio.AppendChild(timeline.NewGap("silence", frames(5))))
	require.NoError(t, audio.AppendChild(timeline.NewClip("dialog", nil, &sourceB)))

	tl := timeline.NewTimeline("edit")
	start := frames(86400)
	tl.SetGlobalStartTime(&start)

	require.NoError(t, tl.Tracks().AppendChild(video))
	require.NoError(t, tl.Tracks().AppendChild(audio))

	return tl
}

func TestSaveLoadTimeline_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".otio", ".yaml", ".otlz"} {
		ext := ext
		t.Run(ext, func(t *testing.T) {
			t.Parallel()

			original := newEditTimeline(t)
			path := filepath.Join(t.TempDir(), "edit"+ext)

			require.NoError(t, persist.SaveTimeline(path, original))

			restored, err := persist.LoadTimeline(path)
			require.NoError(t, err)

			assertTimelinesEquivalent(t, original, restored)
		})
	}
}

// assertTimelinesEquivalent checks names, structure, ownership links and
// the placement of every child on every track.
func assertTimelinesEquivalent(t *testing.T, original, restored *timeline.Timeline) {
	t.Helper()

	assert.Equal(t, original.Name(), restored.Name())

	require.NotNil(t, restored.GlobalStartTime())
	assert.True(t, original.GlobalStartTime().Equal(*restored.GlobalStartTime()))

	origTracks := original.Tracks().Children()
	restTracks := restored.Tracks().Children()
	require.Len(t, restTracks, len(origTracks))

	for i, origChild := range origTracks {
		origTrack, ok := origChild.(*timeline.Track)
		require.True(t, ok)

		restTrack, ok := restTracks[i].(*timeline.Track)
		require.True(t, ok)

		assert.Equal(t, origTrack.Name(), restTrack.Name())
		assert.Equal(t, origTrack.Kind(), restTrack.Kind())
		assert.Same(t, &restored.Tracks().Composition, restTrack.Parent())

		assertSamePlacements(t, origTrack, restTrack)
	}
}

func assertSamePlacements(t *testing.T, origTrack, restTrack *timeline.Track) {
	t.Helper()

	origChildren := origTrack.Children()
	restChildren := restTrack.Children()
	require.Len(t, restChildren, len(origChildren))

	for i, restChild := range restChildren {
		assert.Equal(t, origChildren[i].Name(), restChild.Name())
		assert.True(t, restTrack.HasChild(restChild))

		origRange, origErr := origTrack.RangeOfChildAtIndex(i)
		restRange, restErr := restTrack.RangeOfChildAtIndex(i)

		require.NoError(t, origErr)
		require.NoError(t, restErr)
		assert.True(t, origRange.StartTime().Equal(restRange.StartTime()),
			"child %d start", i)
		assert.True(t, origRange.Duration().Equal(restRange.Duration()),
			"child %d duration", i)
	}
}

func TestLoadTimeline_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := persist.LoadTimeline(filepath.Join(t.TempDir(), "edit.xml"))

	require.ErrorIs(t, err, persist.ErrUnsupportedExtension)
}

func TestLoadTimeline_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := persist.LoadTimeline(filepath.Join(t.TempDir(), "absent.otio"))

	require.Error(t, err)
}

func TestDecodeTimeline_UnknownSchema(t *testing.T) {
	t.Parallel()

	_, err := persist.DecodeTimeline(map[string]any{"SCHEMA": "Reel.1", "name": "x"})

	require.ErrorIs(t, err, persist.ErrUnknownSchema)
}

func TestDecodeComposable_MissingSchema(t *testing.T) {
	t.Parallel()

	_, err := persist.DecodeComposable(map[string]any{"name": "x"})

	require.ErrorIs(t, err, persist.ErrMissingSchema)
}

func TestValidateDocument_RejectsNegativeRate(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"SCHEMA": "Timeline.1",
		"name":   "broken",
		"tracks": map[string]any{
			"SCHEMA":   "Stack.1",
			"name":     "tracks",
			"children": []any{},
		},
		"global_start_time": map[string]any{
			"SCHEMA": "RationalTime.1",
			"value":  float64(0),
			"rate":   float64(-24),
		},
	}

	err := persist.ValidateDocument(doc)

	require.ErrorIs(t, err, persist.ErrSchemaViolation)
}

func TestValidateDocument_AcceptsEncodedTimeline(t *testing.T) {
	t.Parallel()

	doc, err := persist.EncodeTimeline(newEditTimeline(t))
	require.NoError(t, err)

	require.NoError(t, persist.ValidateDocument(doc))
}
