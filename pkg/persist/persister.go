package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sumatoshi-tech/cutline/pkg/timeline"
)

// ErrUnsupportedExtension is returned for a file extension no codec handles.
var ErrUnsupportedExtension = errors.New("persist: unsupported file extension")

// CodecForPath selects a codec by the path's file extension.
func CodecForPath(path string) (Codec, error) {
	switch filepath.Ext(path) {
	case jsonExtension:
		return NewJSONCodec(), nil
	case yamlExtension:
		return NewYAMLCodec(), nil
	case compressedExtension:
		return NewCompressedCodec(), nil
	default:
		return nil, fmt.Errorf("%q: %w", filepath.Ext(path), ErrUnsupportedExtension)
	}
}

// SaveTimeline writes a timeline to the given path. The codec is chosen by
// file extension.
func SaveTimeline(path string, tl *timeline.Timeline) error {
	codec, err := CodecForPath(path)
	if err != nil {
		return err
	}

	doc, err := EncodeTimeline(tl)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create timeline file: %w", err)
	}
	defer file.Close()

	err = codec.Encode(file, doc)
	if err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}

	return nil
}

// LoadTimeline reads a timeline from the given path. The codec is chosen by
// file extension and the document is validated against the timeline schema
// before reconstruction.
func LoadTimeline(path string) (*timeline.Timeline, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}

	err = ValidateDocument(doc)
	if err != nil {
		return nil, err
	}

	tl, err := DecodeTimeline(doc)
	if err != nil {
		return nil, fmt.Errorf("decode timeline: %w", err)
	}

	return tl, nil
}

// LoadDocument reads a raw schema-tagged document from the given path
// without validating or reconstructing it.
func LoadDocument(path string) (map[string]any, error) {
	codec, err := CodecForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timeline file: %w", err)
	}
	defer file.Close()

	doc, err := codec.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("read timeline: %w", err)
	}

	return doc, nil
}
