package serializer

import "errors"

var (
	ErrSerialize         = errors.New("cannot serialize")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
