// Package opentime provides the rational time value types used by the
// timeline composition core: a RationalTime (a value measured against a
// rate), a TimeRange (a start time plus a duration), and a TimeTransform
// (an affine mapping between coordinate spaces). Arithmetic between values
// at different rates rescales to the higher rate, so integer frame math
// stays exact.
package opentime

import (
	"fmt"
	"math"
)

// RationalTime measures time as a value counted against a rate, typically
// frames against a frame rate. The zero value is 0 at rate 0, which is
// invalid; use New or FromFrames.
type RationalTime struct {
	value float64
	rate  float64
}

// New creates a RationalTime from a value and a rate.
func New(value, rate float64) RationalTime {
	return RationalTime{value: value, rate: rate}
}

// FromFrames creates a RationalTime from an integer frame count at the
// given rate.
func FromFrames(frame int, rate float64) RationalTime {
	return RationalTime{value: float64(frame), rate: rate}
}

// Value returns the raw value component.
func (t RationalTime) Value() float64 {
	return t.value
}

// Rate returns the rate component.
func (t RationalTime) Rate() float64 {
	return t.rate
}

// IsInvalid reports whether the time is unusable: a non-positive rate or a
// NaN component.
func (t RationalTime) IsInvalid() bool {
	return t.rate <= 0 || math.IsNaN(t.rate) || math.IsNaN(t.value)
}

// ValueRescaledTo returns the value this time would have at newRate.
func (t RationalTime) ValueRescaledTo(newRate float64) float64 {
	if t.rate == newRate {
		return t.value
	}

	return t.value * newRate / t.rate
}

// RescaledTo returns an equivalent RationalTime expressed at newRate.
func (t RationalTime) RescaledTo(newRate float64) RationalTime {
	return RationalTime{value: t.ValueRescaledTo(newRate), rate: newRate}
}

// ToFrames returns the time as an integer frame count at its own rate.
func (t RationalTime) ToFrames() int {
	return int(t.value)
}

// Add returns t + other, expressed at the higher of the two rates.
func (t RationalTime) Add(other RationalTime) RationalTime {
	if t.rate < other.rate {
		return RationalTime{
			value: t.ValueRescaledTo(other.rate) + other.value,
			rate:  other.rate,
		}
	}

	return RationalTime{
		value: t.value + other.ValueRescaledTo(t.rate),
		rate:  t.rate,
	}
}

// Sub returns t - other, expressed at the higher of the two rates.
func (t RationalTime) Sub(other RationalTime) RationalTime {
	return t.Add(RationalTime{value: -other.value, rate: other.rate})
}

// Neg returns the additive inverse of t.
func (t RationalTime) Neg() RationalTime {
	return RationalTime{value: -t.value, rate: t.rate}
}

// Cmp compares t against other at a common rate. It returns -1 when t is
// earlier, +1 when t is later, and 0 when the two denote the same instant.
func (t RationalTime) Cmp(other RationalTime) int {
	diff := t.Sub(other).value

	switch {
	case diff < 0:
		return -1
	case diff > 0:
		return 1
	default:
		return 0
	}
}

// Less reports whether t denotes an earlier instant than other.
func (t RationalTime) Less(other RationalTime) bool {
	return t.Cmp(other) < 0
}

// LessOrEqual reports whether t is at or before other.
func (t RationalTime) LessOrEqual(other RationalTime) bool {
	return t.Cmp(other) <= 0
}

// Equal reports whether t and other denote the same instant, allowing for
// differing rates.
func (t RationalTime) Equal(other RationalTime) bool {
	return t.Cmp(other) == 0
}

// AlmostEqual reports whether t and other denote instants within delta of
// each other, measured at a common rate.
func (t RationalTime) AlmostEqual(other RationalTime, delta float64) bool {
	return math.Abs(t.Sub(other).value) <= delta
}

// Min returns the earlier of t and other.
func (t RationalTime) Min(other RationalTime) RationalTime {
	if other.Less(t) {
		return other
	}

	return t
}

// Max returns the later of t and other.
func (t RationalTime) Max(other RationalTime) RationalTime {
	if t.Less(other) {
		return other
	}

	return t
}

// String renders the time as "value/rate".
func (t RationalTime) String() string {
	return fmt.Sprintf("%g/%g", t.value, t.rate)
}
