package opentime

import "fmt"

// TimeRange is a half-open span of time: a start time plus a non-negative
// duration. The range covers [StartTime, EndTimeExclusive).
type TimeRange struct {
	start    RationalTime
	duration RationalTime
}

// NewRange creates a TimeRange from a start time and a duration.
func NewRange(start, duration RationalTime) TimeRange {
	return TimeRange{start: start, duration: duration}
}

// RangeFromStartEndTime creates the half-open range [start, endExclusive).
func RangeFromStartEndTime(start, endExclusive RationalTime) TimeRange {
	return TimeRange{start: start, duration: endExclusive.Sub(start)}
}

// StartTime returns the start of the range.
func (r TimeRange) StartTime() RationalTime {
	return r.start
}

// Duration returns the length of the range.
func (r TimeRange) Duration() RationalTime {
	return r.duration
}

// EndTimeExclusive returns the first instant after the range.
func (r TimeRange) EndTimeExclusive() RationalTime {
	return r.start.Add(r.duration)
}

// EndTimeInclusive returns the last instant covered by the range. For an
// empty range this is one unit before the start.
func (r TimeRange) EndTimeInclusive() RationalTime {
	end := r.EndTimeExclusive()

	return end.Sub(New(1, end.Rate()))
}

// IsEmpty reports whether the range covers no time at all.
func (r TimeRange) IsEmpty() bool {
	return r.duration.value <= 0
}

// ContainsTime reports whether t falls inside the half-open range.
func (r TimeRange) ContainsTime(t RationalTime) bool {
	return r.start.LessOrEqual(t) && t.Less(r.EndTimeExclusive())
}

// ContainsRange reports whether other lies entirely inside r.
func (r TimeRange) ContainsRange(other TimeRange) bool {
	return r.start.LessOrEqual(other.start) &&
		other.EndTimeExclusive().LessOrEqual(r.EndTimeExclusive())
}

// Overlaps reports whether r and other share any instant. Ranges that only
// touch at a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Less(other.EndTimeExclusive()) &&
		other.start.Less(r.EndTimeExclusive())
}

// Intersection returns the overlapping portion of r and other. The second
// return value is false when the two ranges share no time.
func (r TimeRange) Intersection(other TimeRange) (TimeRange, bool) {
	start := r.start.Max(other.start)
	end := r.EndTimeExclusive().Min(other.EndTimeExclusive())

	if !start.Less(end) {
		return TimeRange{}, false
	}

	return RangeFromStartEndTime(start, end), true
}

// Clamped returns t limited to the instants the range covers.
func (r TimeRange) Clamped(t RationalTime) RationalTime {
	return t.Max(r.start).Min(r.EndTimeInclusive())
}

// DurationExtendedBy returns a copy of r with the duration grown by d.
func (r TimeRange) DurationExtendedBy(d RationalTime) TimeRange {
	return TimeRange{start: r.start, duration: r.duration.Add(d)}
}

// Offset returns a copy of r shifted by d.
func (r TimeRange) Offset(d RationalTime) TimeRange {
	return TimeRange{start: r.start.Add(d), duration: r.duration}
}

// String renders the range as "[start, end)".
func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.start, r.EndTimeExclusive())
}
