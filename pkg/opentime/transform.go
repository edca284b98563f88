package opentime

// TimeTransform is an affine mapping between coordinate spaces: a scale
// applied to the value, then an offset, with an optional rate conversion.
// A rate of zero keeps the input's rate.
type TimeTransform struct {
	offset RationalTime
	scale  float64
	rate   float64
}

// IdentityTransform returns the transform that maps every time to itself.
func IdentityTransform() TimeTransform {
	return TimeTransform{scale: 1}
}

// NewTransform creates a TimeTransform. A rate of zero means "preserve the
// input rate".
func NewTransform(offset RationalTime, scale, rate float64) TimeTransform {
	return TimeTransform{offset: offset, scale: scale, rate: rate}
}

// Offset returns the transform's offset component.
func (x TimeTransform) Offset() RationalTime {
	return x.offset
}

// Scale returns the transform's scale component.
func (x TimeTransform) Scale() float64 {
	return x.scale
}

// AppliedToTime maps t through the transform.
func (x TimeTransform) AppliedToTime(t RationalTime) RationalTime {
	result := New(t.value*x.scale, t.rate).Add(x.offset)

	targetRate := x.rate
	if targetRate <= 0 {
		targetRate = result.Rate()
	}

	return result.RescaledTo(targetRate)
}

// AppliedToRange maps a range through the transform, scaling its duration.
func (x TimeTransform) AppliedToRange(r TimeRange) TimeRange {
	start := x.AppliedToTime(r.StartTime())
	duration := New(r.Duration().value*x.scale, r.Duration().rate)

	targetRate := x.rate
	if targetRate <= 0 {
		targetRate = duration.Rate()
	}

	return NewRange(start, duration.RescaledTo(targetRate))
}

// ComposedWith returns the transform equivalent to applying x first, then
// other.
func (x TimeTransform) ComposedWith(other TimeTransform) TimeTransform {
	return TimeTransform{
		offset: other.AppliedToTime(x.offset),
		scale:  x.scale * other.scale,
		rate:   other.rate,
	}
}
