package resp

// JsonEncodeOptionsKey is the key in a Serializer's options holding the JsonEncodeOptions to encode with.
const JsonEncodeOptionsKey = "json_encode_options"

// JsonEncodeOptions is a set of flags tuning how a Serializer writes JSON.
type JsonEncodeOptions uint

const (
	// JsonEscapeHTML escapes <, > and & so the output is safe to embed in HTML.
	JsonEscapeHTML JsonEncodeOptions = 1 << iota

	// JsonPrettyPrint indents nested values.
	JsonPrettyPrint

	// DefaultJsonEncodeOptions is passed to the Serializer by Json unless SerializerContext overwrites it.
	DefaultJsonEncodeOptions = JsonEscapeHTML
)

// Has asserts whether every flag in flag is set.
func (o JsonEncodeOptions) Has(flag JsonEncodeOptions) bool { return o&flag == flag }
