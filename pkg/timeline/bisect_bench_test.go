package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
	"github.com/Sumatoshi-tech/cutline/pkg/timeline"
)

// Benchmark layout sizes.
const (
	benchSmall = 64
	benchLarge = 8192
)

// Alternative bisectRight implementations benchmarked against the
// production branch-based halving. All variants operate on a pre-extracted
// key sequence, as production does, so the comparison isolates search
// strategy.

// bisectRightBranchless replaces the branch in the halving loop with
// arithmetic bound updates.
func bisectRightBranchless(keys []opentime.RationalTime, tgt opentime.RationalTime, lower, upper int) int {
	for lower < upper {
		mid := lower + (upper-lower)>>1

		le := 0
		if keys[mid].LessOrEqual(tgt) {
			le = 1
		}

		lower += le * (mid + 1 - lower)
		upper -= (1 - le) * (upper - mid)
	}

	return lower
}

// bisectRightUnrolled splits wide ranges into quarters per iteration before
// falling back to plain halving.
func bisectRightUnrolled(keys []opentime.RationalTime, tgt opentime.RationalTime, lower, upper int) int {
	for upper-lower > 4 {
		span := upper - lower
		q1 := lower + span>>2
		q2 := lower + span>>1
		q3 := upper - span>>2

		switch {
		case tgt.Less(keys[q1]):
			upper = q1
		case tgt.Less(keys[q2]):
			lower = q1 + 1
			upper = q2
		case tgt.Less(keys[q3]):
			lower = q2 + 1
			upper = q3
		default:
			lower = q3 + 1
		}
	}

	for lower < upper {
		mid := lower + (upper-lower)>>1
		if tgt.Less(keys[mid]) {
			upper = mid
		} else {
			lower = mid + 1
		}
	}

	return lower
}

// buildBenchTrack creates a track of n one-frame clips and the cumulative
// end-key sequence for the alternative implementations.
func buildBenchTrack(b *testing.B, n int) (*timeline.Track, []opentime.RationalTime) {
	b.Helper()

	track := timeline.NewTrack("bench", timeline.TrackKindVideo, nil)

	children := make([]timeline.Composable, 0, n)
	keys := make([]opentime.RationalTime, 0, n)

	for i := 0; i < n; i++ {
		children = append(children, newTestClip("c", 1))
		keys = append(keys, frames(i+1))
	}

	require.NoError(b, track.SetChildren(children))

	return track, keys
}

// TestBisectAlternatives_AgreeWithProduction verifies the benchmark-only
// implementations return the production result on shared inputs.
func TestBisectAlternatives_AgreeWithProduction(t *testing.T) {
	t.Parallel()

	track := newTrackWithDurations(t, 10, 5, 10, 0, 0, 5) // ends 10,15,25,25,25,30
	keys := endKeys(t, track)

	for target := -1; target <= 31; target++ {
		want, err := track.BisectRight(frames(target), keys, 0, timeline.WholeSequence)
		require.NoError(t, err)

		require.Equal(t, want, bisectRightBranchless(keys, frames(target), 0, len(keys)), "branchless(%d)", target)
		require.Equal(t, want, bisectRightUnrolled(keys, frames(target), 0, len(keys)), "unrolled(%d)", target)
	}
}

func benchmarkBisectRight(b *testing.B, n int) {
	track, keys := buildBenchTrack(b, n)
	target := frames(n / 2)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := track.BisectRight(target, keys, 0, timeline.WholeSequence)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkBisectRightBranchless(b *testing.B, n int) {
	_, keys := buildBenchTrack(b, n)
	target := frames(n / 2)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		bisectRightBranchless(keys, target, 0, len(keys))
	}
}

func benchmarkBisectRightUnrolled(b *testing.B, n int) {
	_, keys := buildBenchTrack(b, n)
	target := frames(n / 2)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		bisectRightUnrolled(keys, target, 0, len(keys))
	}
}

func BenchmarkBisectRight_64(b *testing.B)   { benchmarkBisectRight(b, benchSmall) }
func BenchmarkBisectRight_8192(b *testing.B) { benchmarkBisectRight(b, benchLarge) }

func BenchmarkBisectRightBranchless_64(b *testing.B)   { benchmarkBisectRightBranchless(b, benchSmall) }
func BenchmarkBisectRightBranchless_8192(b *testing.B) { benchmarkBisectRightBranchless(b, benchLarge) }

func BenchmarkBisectRightUnrolled_64(b *testing.B)   { benchmarkBisectRightUnrolled(b, benchSmall) }
func BenchmarkBisectRightUnrolled_8192(b *testing.B) { benchmarkBisectRightUnrolled(b, benchLarge) }

func BenchmarkChildAtTime_8192(b *testing.B) {
	track, _ := buildBenchTrack(b, benchLarge)
	target := frames(benchLarge / 2)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := track.ChildAtTime(target, true)
		if err != nil {
			b.Fatal(err)
		}
	}
}
