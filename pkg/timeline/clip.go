package timeline

import (
	"fmt"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// MediaReference points a clip at its media: a target URL and the range of
// media the target can provide. This core never opens the target; the
// available range is the only part queries consume.
type MediaReference struct {
	TargetURL      string
	AvailableRange *opentime.TimeRange
}

// Clip is a leaf element referencing a piece of media. Its available range
// comes from the media reference; a source range trims it.
type Clip struct {
	Item

	mediaReference *MediaReference
}

// NewClip creates a clip. mediaReference and sourceRange may be nil; a clip
// without either cannot compute a duration.
func NewClip(name string, mediaReference *MediaReference, sourceRange *opentime.TimeRange) *Clip {
	cl := &Clip{mediaReference: mediaReference}
	cl.initItem(cl, name, sourceRange)

	return cl
}

// MediaReference returns the clip's media reference, or nil.
func (cl *Clip) MediaReference() *MediaReference {
	return cl.mediaReference
}

// SetMediaReference replaces the clip's media reference.
func (cl *Clip) SetMediaReference(ref *MediaReference) {
	cl.mediaReference = ref
}

// AvailableRange returns the range of media the reference provides.
func (cl *Clip) AvailableRange() (opentime.TimeRange, error) {
	if cl.mediaReference == nil || cl.mediaReference.AvailableRange == nil {
		return opentime.TimeRange{}, fmt.Errorf("available range of clip %q: %w", cl.name, ErrNoDuration)
	}

	return *cl.mediaReference.AvailableRange, nil
}
