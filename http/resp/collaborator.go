package resp

import (
	"fmt"

	"github.com/xy-planning-network/responder"
)

// A TemplateEngine renders the named template with the provided data.
//
// Implementations return an error when the template cannot be found, parsed or executed.
type TemplateEngine interface {
	Render(name string, data map[string]any) (string, error)
}

// A UrlGenerator resolves a named route and its parameters into a URL
// shaped according to the ReferenceType.
//
// Implementations return an error when the route does not exist
// or the parameters cannot satisfy it.
type UrlGenerator interface {
	Generate(name string, params map[string]string, ref ReferenceType) (string, error)
}

// A Serializer encodes data into the named format, configured by opts.
//
// Implementations return an error when data cannot be represented in format.
type Serializer interface {
	Serialize(data any, format string, opts map[string]any) (string, error)
}

// A ReferenceType declares the shape of a generated URL.
type ReferenceType int

const (
	// AbsoluteURL includes scheme and host, e.g., https://example.com/user/kpicaza
	AbsoluteURL ReferenceType = iota

	// AbsolutePath is only the path, e.g., /user/kpicaza
	AbsolutePath

	// NetworkPath omits the scheme, e.g., //example.com/user/kpicaza
	NetworkPath
)

func (rt ReferenceType) String() string {
	switch rt {
	case AbsoluteURL:
		return "absolute-url"
	case AbsolutePath:
		return "absolute-path"
	case NetworkPath:
		return "network-path"
	default:
		return fmt.Sprintf("ReferenceType(%d)", int(rt))
	}
}

func (rt ReferenceType) Valid() error {
	switch rt {
	case AbsoluteURL, AbsolutePath, NetworkPath:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrNotValid, rt)
	}
}

var (
	_ responder.Enumerable = AbsoluteURL
	_ responder.Enumerable = DispositionInline
)

// A Disposition controls whether a client displays a file or downloads it.
type Disposition string

const (
	DispositionAttachment Disposition = "attachment"
	DispositionInline     Disposition = "inline"
)

func (d Disposition) String() string { return string(d) }

func (d Disposition) Valid() error {
	switch d {
	case DispositionAttachment, DispositionInline:
		return nil
	default:
		return fmt.Errorf("%w: disposition %q", ErrNotValid, string(d))
	}
}
