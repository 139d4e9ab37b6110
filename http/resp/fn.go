package resp

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"
)

// Defaults applied when a call passes no Fn overriding them.
const (
	DefaultEmptyCode    = http.StatusNoContent
	DefaultRenderCode   = http.StatusOK
	DefaultRedirectCode = http.StatusFound
	DefaultRouteCode    = http.StatusFound
	DefaultResponseCode = http.StatusFound
	DefaultJsonCode     = http.StatusOK

	DefaultDisposition = DispositionAttachment

	// DefaultRouteReference is the shape of the URL Route redirects to.
	DefaultRouteReference = AbsolutePath

	// DefaultUrlReference is the shape of the URL Url returns.
	DefaultUrlReference = AbsoluteURL

	// DefaultHtmlContentType is set by Render when no Content-Type header was provided.
	DefaultHtmlContentType = "text/html; charset=UTF-8"

	// DefaultJsonContentType is set by Json when no Content-Type header was provided.
	DefaultJsonContentType = "application/json"
)

// A Fn is a functional option that sets an argument of a single Responder method call.
type Fn func(*call) error

// call holds the arguments a Responder method collected from its Fns.
type call struct {
	code        int
	header      http.Header
	serializer  map[string]any
	filename    string
	disposition Disposition
	fsys        fs.FS
	ref         ReferenceType
	refSet      bool
}

// newCall applies opts over the defaults of a Responder method.
func newCall(code int, opts []Fn) (*call, error) {
	c := &call{
		code:        code,
		header:      make(http.Header),
		serializer:  make(map[string]any),
		disposition: DefaultDisposition,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// reference returns the ReferenceType set by Reference or def.
func (c *call) reference(def ReferenceType) ReferenceType {
	if c.refSet {
		return c.ref
	}

	return def
}

// Code sets the response status code.
//
// Codes outside of 100-599 return ErrNotValid.
func Code(code int) Fn {
	return func(c *call) error {
		if code < 100 || code > 599 {
			return fmt.Errorf("%w: HTTP status code %d", ErrNotValid, code)
		}

		c.code = code
		return nil
	}
}

// Header sets the values for key, replacing any set before.
func Header(key string, vals ...string) Fn {
	return func(c *call) error {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: empty header name", ErrMissingData)
		}

		c.header[http.CanonicalHeaderKey(key)] = append([]string(nil), vals...)
		return nil
	}
}

// Headers sets every key in h, replacing any values set before for the same key.
func Headers(h http.Header) Fn {
	return func(c *call) error {
		for k, vals := range h {
			if err := Header(k, vals...)(c); err != nil {
				return err
			}
		}

		return nil
	}
}

// SerializerContext merges ctx into the options passed to the Serializer.
// Keys in ctx overwrite those set before, including defaults.
//
// Used with Responder.Json.
func SerializerContext(ctx map[string]any) Fn {
	return func(c *call) error {
		for k, v := range ctx {
			c.serializer[k] = v
		}

		return nil
	}
}

// Filename sets the name a client saves a file as.
// Names including a path separator return ErrNotValid.
//
// Used with Responder.File.
func Filename(name string) Fn {
	return func(c *call) error {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w: filename %q cannot contain / or \\", ErrNotValid, name)
		}

		c.filename = name
		return nil
	}
}

// ContentDisposition sets whether the client displays or downloads a file.
//
// Used with Responder.File.
func ContentDisposition(d Disposition) Fn {
	return func(c *call) error {
		if err := d.Valid(); err != nil {
			return err
		}

		c.disposition = d
		return nil
	}
}

// Attachment has the client download a file.
func Attachment() Fn { return ContentDisposition(DispositionAttachment) }

// Inline has the client display a file.
func Inline() Fn { return ContentDisposition(DispositionInline) }

// FS resolves files in fsys instead of the OS filesystem.
//
// Used with Responder.File.
func FS(fsys fs.FS) Fn {
	return func(c *call) error {
		if fsys == nil {
			return fmt.Errorf("%w: nil fs.FS", ErrMissingData)
		}

		c.fsys = fsys
		return nil
	}
}

// Reference sets the shape of a generated URL.
//
// Used with Responder.Route and Responder.Url.
func Reference(ref ReferenceType) Fn {
	return func(c *call) error {
		if err := ref.Valid(); err != nil {
			return err
		}

		c.ref = ref
		c.refSet = true
		return nil
	}
}
