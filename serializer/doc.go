/*
Package serializer encodes data into text formats for resp.Responder.

A [Serializer] supports the formats:
  - json, through github.com/goccy/go-json
  - yaml, through gopkg.in/yaml.v3

JSON output is tuned by the resp.JsonEncodeOptions found under resp.JsonEncodeOptionsKey
in the options passed to Serialize.
*/
package serializer
