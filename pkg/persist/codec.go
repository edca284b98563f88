package persist

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"gopkg.in/yaml.v3"
)

// File extensions for supported codecs.
const (
	jsonExtension       = ".otio"
	yamlExtension       = ".yaml"
	compressedExtension = ".otlz"
)

// Default indentation for pretty-printed JSON.
const defaultIndent = "    "

// Codec defines how a document tree is serialized and deserialized.
type Codec interface {
	// Encode writes the document to the writer.
	Encode(w io.Writer, doc map[string]any) error
	// Decode reads a document from the reader.
	Decode(r io.Reader) (map[string]any, error)
	// Extension returns the file extension for this codec (e.g., ".otio").
	Extension() string
}

// JSONCodec implements Codec using JSON encoding with optional indentation.
type JSONCodec struct {
	// Indent specifies the indentation string. Empty string means compact JSON.
	Indent string
}

// NewJSONCodec creates a JSON codec with pretty-printing (4-space indent).
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: defaultIndent}
}

// Encode implements Codec.Encode using JSON encoding.
func (c *JSONCodec) Encode(w io.Writer, doc map[string]any) error {
	encoder := json.NewEncoder(w)
	if c.Indent != "" {
		encoder.SetIndent("", c.Indent)
	}

	err := encoder.Encode(doc)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode using JSON decoding.
func (c *JSONCodec) Decode(r io.Reader) (map[string]any, error) {
	var doc map[string]any

	decoder := json.NewDecoder(r)

	err := decoder.Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}

	return doc, nil
}

// Extension implements Codec.Extension for JSON timeline files.
func (c *JSONCodec) Extension() string {
	return jsonExtension
}

// YAMLCodec implements Codec using YAML encoding.
type YAMLCodec struct{}

// NewYAMLCodec creates a YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Encode implements Codec.Encode using YAML encoding.
func (c *YAMLCodec) Encode(w io.Writer, doc map[string]any) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	err := encoder.Encode(doc)
	if err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode using YAML decoding. Nested mappings come
// back as map[string]any so the result feeds the document decoder directly.
func (c *YAMLCodec) Decode(r io.Reader) (map[string]any, error) {
	var doc map[string]any

	decoder := yaml.NewDecoder(r)

	err := decoder.Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}

	return normalizeKeys(doc), nil
}

// Extension implements Codec.Extension for YAML timeline files.
func (c *YAMLCodec) Extension() string {
	return yamlExtension
}

// normalizeKeys rewrites any map[any]any nodes a YAML decoder may produce
// into map[string]any, recursively.
func normalizeKeys(doc map[string]any) map[string]any {
	for k, v := range doc {
		doc[k] = normalizeValue(v)
	}

	return doc
}

func normalizeValue(v any) any {
	switch node := v.(type) {
	case map[string]any:
		return normalizeKeys(node)
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}

		return out
	case []any:
		for i, item := range node {
			node[i] = normalizeValue(item)
		}

		return node
	default:
		return v
	}
}

// CompressedCodec wraps another codec with LZ4 block compression. The
// encoded form is the uncompressed length as a little-endian uint64 header
// followed by one LZ4 block.
type CompressedCodec struct {
	inner Codec
}

// NewCompressedCodec creates an LZ4 codec around compact JSON.
func NewCompressedCodec() *CompressedCodec {
	return &CompressedCodec{inner: &JSONCodec{}}
}

// Encode implements Codec.Encode by compressing the inner codec's output.
func (c *CompressedCodec) Encode(w io.Writer, doc map[string]any) error {
	var buf bytes.Buffer

	err := c.inner.Encode(&buf, doc)
	if err != nil {
		return err
	}

	compressed := make([]byte, lz4.CompressBlockBound(buf.Len()))

	n, err := lz4.CompressBlock(buf.Bytes(), compressed, nil)
	if err != nil {
		return fmt.Errorf("lz4 compress: %w", err)
	}

	payload := compressed[:n]
	if n == 0 {
		// Incompressible input is stored as-is. The decoder detects this
		// case by comparing payload length to the header.
		payload = buf.Bytes()
	}

	err = binary.Write(w, binary.LittleEndian, uint64(buf.Len()))
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	_, err = w.Write(payload)
	if err != nil {
		return fmt.Errorf("write block: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode by decompressing into the inner codec.
func (c *CompressedCodec) Decode(r io.Reader) (map[string]any, error) {
	var rawLen uint64

	err := binary.Read(r, binary.LittleEndian, &rawLen)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read block: %w", err)
	}

	if uint64(len(compressed)) == rawLen {
		return c.inner.Decode(bytes.NewReader(compressed))
	}

	decompressed := make([]byte, rawLen)

	n, err := lz4.UncompressBlock(compressed, decompressed)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}

	return c.inner.Decode(bytes.NewReader(decompressed[:n]))
}

// Extension implements Codec.Extension for compressed timeline files.
func (c *CompressedCodec) Extension() string {
	return compressedExtension
}
