package timeline

import (
	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Gap is an invisible filler element holding a slot of time open inside a
// track.
type Gap struct {
	Item
}

// NewGap creates a gap spanning the given duration, starting at zero.
func NewGap(name string, duration opentime.RationalTime) *Gap {
	sourceRange := opentime.NewRange(opentime.New(0, duration.Rate()), duration)

	g := &Gap{}
	g.initItem(g, name, &sourceRange)

	return g
}

// AvailableRange returns the gap's source range; a gap provides exactly the
// time it was created to fill.
func (g *Gap) AvailableRange() (opentime.TimeRange, error) {
	if g.sourceRange != nil {
		return *g.sourceRange, nil
	}

	return opentime.NewRange(opentime.New(0, 1), opentime.New(0, 1)), nil
}

// Visible reports false: gaps contribute no media.
func (g *Gap) Visible() bool {
	return false
}
