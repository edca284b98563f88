package timeline

import (
	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Standard transition type names.
const (
	TransitionTypeSMPTEDissolve = "SMPTE_Dissolve"
	TransitionTypeCustom        = "Custom_Transition"
)

// Transition is an overlapping element blending its neighbors: it reaches
// back into the previous element by its in offset and forward into the next
// by its out offset, without occupying a slot of its own in the track's
// prefix-sum layout.
type Transition struct {
	composableBase

	transitionType string
	inOffset       opentime.RationalTime
	outOffset      opentime.RationalTime
}

// NewTransition creates a transition with the given offsets.
func NewTransition(name, transitionType string, inOffset, outOffset opentime.RationalTime) *Transition {
	return &Transition{
		composableBase: composableBase{name: name},
		transitionType: transitionType,
		inOffset:       inOffset,
		outOffset:      outOffset,
	}
}

// TransitionType returns the transition's type name.
func (tr *Transition) TransitionType() string {
	return tr.transitionType
}

// InOffset returns how far the transition reaches into the previous
// element.
func (tr *Transition) InOffset() opentime.RationalTime {
	return tr.inOffset
}

// OutOffset returns how far the transition reaches into the next element.
func (tr *Transition) OutOffset() opentime.RationalTime {
	return tr.outOffset
}

// Duration returns the transition's total footprint, in offset plus out
// offset.
func (tr *Transition) Duration() (opentime.RationalTime, error) {
	return tr.inOffset.Add(tr.outOffset), nil
}

// Overlapping reports true: a transition shares time with its neighbors.
func (tr *Transition) Overlapping() bool {
	return true
}

// Visible reports false: a transition modifies its neighbors' media rather
// than contributing its own.
func (tr *Transition) Visible() bool {
	return false
}
