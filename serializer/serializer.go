package serializer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/xy-planning-network/responder/http/resp"
	"gopkg.in/yaml.v3"
)

// Formats a Serializer supports.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const (
	jsonIndent = "    "
	yamlIndent = 4
)

// Serializer encodes data into JSON or YAML.
// Serializer implements resp.Serializer.
type Serializer struct {
	pool *sync.Pool
}

// New constructs a *Serializer.
func New() *Serializer {
	return &Serializer{pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }}}
}

// Serialize encodes data into format, configured by opts.
//
// Unknown formats return ErrUnsupportedFormat.
// Data that cannot be encoded returns ErrSerialize.
func (s *Serializer) Serialize(data any, format string, opts map[string]any) (string, error) {
	b := s.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer s.pool.Put(b)

	var err error
	switch strings.ToLower(format) {
	case FormatJSON:
		err = encodeJSON(b, data, jsonOptions(opts))
	case FormatYAML, "yml":
		err = encodeYAML(b, data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return "", fmt.Errorf("%w %T into %s: %w", ErrSerialize, data, format, err)
	}

	return b.String(), nil
}

// jsonOptions finds the resp.JsonEncodeOptions in opts,
// falling back to resp.DefaultJsonEncodeOptions.
func jsonOptions(opts map[string]any) resp.JsonEncodeOptions {
	switch v := opts[resp.JsonEncodeOptionsKey].(type) {
	case resp.JsonEncodeOptions:
		return v
	case int:
		return resp.JsonEncodeOptions(v)
	case uint:
		return resp.JsonEncodeOptions(v)
	default:
		return resp.DefaultJsonEncodeOptions
	}
}

func encodeJSON(b *bytes.Buffer, data any, opts resp.JsonEncodeOptions) error {
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(opts.Has(resp.JsonEscapeHTML))
	if opts.Has(resp.JsonPrettyPrint) {
		enc.SetIndent("", jsonIndent)
	}

	if err := enc.Encode(data); err != nil {
		return err
	}

	// NOTE: Encode terminates each value with a newline
	b.Truncate(len(bytes.TrimRight(b.Bytes(), "\n")))
	return nil
}

func encodeYAML(b *bytes.Buffer, data any) (err error) {
	// NOTE: yaml.v3 panics on values it cannot represent, e.g., channels
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	enc := yaml.NewEncoder(b)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(data); err != nil {
		return err
	}

	return enc.Close()
}
