// Package persist serializes composition trees to schema-tagged documents
// and back. Every element kind encodes to a map carrying a "SCHEMA" tag;
// decoding dispatches on the tag through a constructor registry. A round
// trip preserves the tree's ownership invariants and produces identical
// query results.
package persist

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
	"github.com/Sumatoshi-tech/cutline/pkg/timeline"
)

// Schema tags for the persisted element kinds.
const (
	schemaKey = "SCHEMA"

	schemaTimeline     = "Timeline.1"
	schemaStack        = "Stack.1"
	schemaTrack        = "Track.1"
	schemaClip         = "Clip.1"
	schemaGap          = "Gap.1"
	schemaTransition   = "Transition.1"
	schemaRationalTime = "RationalTime.1"
	schemaTimeRange    = "TimeRange.1"
	schemaExternalRef  = "ExternalReference.1"
)

// Sentinel decoding errors.
var (
	// ErrMissingSchema is returned when a document lacks the schema tag.
	ErrMissingSchema = errors.New("persist: document missing schema tag")

	// ErrUnknownSchema is returned for a schema tag with no registered
	// constructor.
	ErrUnknownSchema = errors.New("persist: unknown schema")

	// ErrMalformedDocument is returned when a document field has the wrong
	// shape or type.
	ErrMalformedDocument = errors.New("persist: malformed document")
)

// EncodeTimeline renders a timeline as a schema-tagged document tree.
func EncodeTimeline(tl *timeline.Timeline) (map[string]any, error) {
	tracks, err := EncodeComposable(tl.Tracks())
	if err != nil {
		return nil, err
	}

	doc := map[string]any{
		schemaKey: schemaTimeline,
		"name":    tl.Name(),
		"tracks":  tracks,
	}

	if start := tl.GlobalStartTime(); start != nil {
		doc["global_start_time"] = encodeTime(*start)
	}

	return doc, nil
}

// EncodeComposable renders any element kind as a schema-tagged document.
func EncodeComposable(c timeline.Composable) (map[string]any, error) {
	switch v := c.(type) {
	case *timeline.Clip:
		return encodeClip(v), nil
	case *timeline.Gap:
		return encodeItemDoc(schemaGap, v.Name(), v.SourceRange()), nil
	case *timeline.Transition:
		return encodeTransition(v), nil
	case *timeline.Track:
		doc, err := encodeComposition(schemaTrack, &v.Composition)
		if err != nil {
			return nil, err
		}

		doc["kind"] = v.Kind()

		return doc, nil
	case *timeline.Stack:
		return encodeComposition(schemaStack, &v.Composition)
	default:
		return nil, fmt.Errorf("encode %T: %w", c, ErrUnknownSchema)
	}
}

func encodeComposition(schema string, c *timeline.Composition) (map[string]any, error) {
	children := make([]any, 0, c.Len())

	for _, child := range c.Children() {
		doc, err := EncodeComposable(child)
		if err != nil {
			return nil, err
		}

		children = append(children, doc)
	}

	doc := encodeItemDoc(schema, c.Name(), c.SourceRange())
	doc["children"] = children

	return doc, nil
}

func encodeClip(cl *timeline.Clip) map[string]any {
	doc := encodeItemDoc(schemaClip, cl.Name(), cl.SourceRange())

	if ref := cl.MediaReference(); ref != nil {
		refDoc := map[string]any{
			schemaKey:    schemaExternalRef,
			"target_url": ref.TargetURL,
		}
		if ref.AvailableRange != nil {
			refDoc["available_range"] = encodeRange(*ref.AvailableRange)
		}

		doc["media_reference"] = refDoc
	}

	return doc
}

func encodeTransition(tr *timeline.Transition) map[string]any {
	return map[string]any{
		schemaKey:         schemaTransition,
		"name":            tr.Name(),
		"transition_type": tr.TransitionType(),
		"in_offset":       encodeTime(tr.InOffset()),
		"out_offset":      encodeTime(tr.OutOffset()),
	}
}

func encodeItemDoc(schema, name string, sourceRange *opentime.TimeRange) map[string]any {
	doc := map[string]any{
		schemaKey: schema,
		"name":    name,
	}

	if sourceRange != nil {
		doc["source_range"] = encodeRange(*sourceRange)
	}

	return doc
}

func encodeTime(t opentime.RationalTime) map[string]any {
	return map[string]any{
		schemaKey: schemaRationalTime,
		"value":   t.Value(),
		"rate":    t.Rate(),
	}
}

func encodeRange(r opentime.TimeRange) map[string]any {
	return map[string]any{
		schemaKey:  schemaTimeRange,
		"start":    encodeTime(r.StartTime()),
		"duration": encodeTime(r.Duration()),
	}
}

// DecodeTimeline reconstructs a timeline from a schema-tagged document
// tree. The rebuilt tree satisfies the composition ownership invariants.
func DecodeTimeline(doc map[string]any) (*timeline.Timeline, error) {
	err := expectSchema(doc, schemaTimeline)
	if err != nil {
		return nil, err
	}

	tl := timeline.NewTimeline(stringField(doc, "name"))

	if raw, ok := doc["global_start_time"]; ok {
		start, timeErr := decodeTime(raw)
		if timeErr != nil {
			return nil, timeErr
		}

		tl.SetGlobalStartTime(&start)
	}

	rawTracks, ok := doc["tracks"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("timeline tracks: %w", ErrMalformedDocument)
	}

	tracks, err := DecodeComposable(rawTracks)
	if err != nil {
		return nil, err
	}

	stack, ok := tracks.(*timeline.Stack)
	if !ok {
		return nil, fmt.Errorf("timeline tracks must be a stack: %w", ErrMalformedDocument)
	}

	tl.SetTracks(stack)

	return tl, nil
}

// DecodeComposable reconstructs any element kind from a schema-tagged
// document.
func DecodeComposable(doc map[string]any) (timeline.Composable, error) {
	schema, ok := doc[schemaKey].(string)
	if !ok {
		return nil, ErrMissingSchema
	}

	switch schema {
	case schemaClip:
		return decodeClip(doc)
	case schemaGap:
		return decodeGap(doc)
	case schemaTransition:
		return decodeTransition(doc)
	case schemaTrack:
		track := timeline.NewTrack(stringField(doc, "name"), stringField(doc, "kind"), nil)

		err := decodeCompositionInto(&track.Composition, doc)
		if err != nil {
			return nil, err
		}

		return track, nil
	case schemaStack:
		stack := timeline.NewStack(stringField(doc, "name"), nil)

		err := decodeCompositionInto(&stack.Composition, doc)
		if err != nil {
			return nil, err
		}

		return stack, nil
	default:
		return nil, fmt.Errorf("schema %q: %w", schema, ErrUnknownSchema)
	}
}

func decodeCompositionInto(c *timeline.Composition, doc map[string]any) error {
	sourceRange, err := optionalRange(doc, "source_range")
	if err != nil {
		return err
	}

	c.SetSourceRange(sourceRange)

	rawChildren, ok := doc["children"].([]any)
	if !ok {
		return fmt.Errorf("children of %q: %w", c.Name(), ErrMalformedDocument)
	}

	children := make([]timeline.Composable, 0, len(rawChildren))

	for _, raw := range rawChildren {
		childDoc, isMap := raw.(map[string]any)
		if !isMap {
			return fmt.Errorf("child of %q: %w", c.Name(), ErrMalformedDocument)
		}

		child, decodeErr := DecodeComposable(childDoc)
		if decodeErr != nil {
			return decodeErr
		}

		children = append(children, child)
	}

	return c.SetChildren(children)
}

func decodeClip(doc map[string]any) (*timeline.Clip, error) {
	sourceRange, err := optionalRange(doc, "source_range")
	if err != nil {
		return nil, err
	}

	var ref *timeline.MediaReference

	if rawRef, ok := doc["media_reference"].(map[string]any); ok {
		availableRange, rangeErr := optionalRange(rawRef, "available_range")
		if rangeErr != nil {
			return nil, rangeErr
		}

		ref = &timeline.MediaReference{
			TargetURL:      stringField(rawRef, "target_url"),
			AvailableRange: availableRange,
		}
	}

	return timeline.NewClip(stringField(doc, "name"), ref, sourceRange), nil
}

func decodeGap(doc map[string]any) (*timeline.Gap, error) {
	sourceRange, err := optionalRange(doc, "source_range")
	if err != nil {
		return nil, err
	}

	if sourceRange == nil {
		return nil, fmt.Errorf("gap %q missing source range: %w", stringField(doc, "name"), ErrMalformedDocument)
	}

	gap := timeline.NewGap(stringField(doc, "name"), sourceRange.Duration())
	gap.SetSourceRange(sourceRange)

	return gap, nil
}

func decodeTransition(doc map[string]any) (*timeline.Transition, error) {
	inOffset, err := decodeTime(doc["in_offset"])
	if err != nil {
		return nil, err
	}

	outOffset, err := decodeTime(doc["out_offset"])
	if err != nil {
		return nil, err
	}

	return timeline.NewTransition(
		stringField(doc, "name"),
		stringField(doc, "transition_type"),
		inOffset,
		outOffset,
	), nil
}

func decodeTime(raw any) (opentime.RationalTime, error) {
	doc, ok := raw.(map[string]any)
	if !ok {
		return opentime.RationalTime{}, fmt.Errorf("rational time: %w", ErrMalformedDocument)
	}

	value, err := numberField(doc, "value")
	if err != nil {
		return opentime.RationalTime{}, err
	}

	rate, err := numberField(doc, "rate")
	if err != nil {
		return opentime.RationalTime{}, err
	}

	return opentime.New(value, rate), nil
}

func decodeRange(raw any) (opentime.TimeRange, error) {
	doc, ok := raw.(map[string]any)
	if !ok {
		return opentime.TimeRange{}, fmt.Errorf("time range: %w", ErrMalformedDocument)
	}

	start, err := decodeTime(doc["start"])
	if err != nil {
		return opentime.TimeRange{}, err
	}

	duration, err := decodeTime(doc["duration"])
	if err != nil {
		return opentime.TimeRange{}, err
	}

	return opentime.NewRange(start, duration), nil
}

func optionalRange(doc map[string]any, key string) (*opentime.TimeRange, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return nil, nil
	}

	r, err := decodeRange(raw)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func expectSchema(doc map[string]any, want string) error {
	schema, ok := doc[schemaKey].(string)
	if !ok {
		return ErrMissingSchema
	}

	if schema != want {
		return fmt.Errorf("schema %q, want %q: %w", schema, want, ErrUnknownSchema)
	}

	return nil
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)

	return s
}

// numberField reads a numeric field, tolerating the integer types YAML
// decoding produces where JSON produces float64.
func numberField(doc map[string]any, key string) (float64, error) {
	switch v := doc[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("field %q: %w", key, ErrMalformedDocument)
	}
}
