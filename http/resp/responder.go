package resp

import (
	"fmt"
	"html"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xy-planning-network/responder/logger"
)

// responderFrames is the number of frames between a Responder method and its logger.
const responderFrames = 1

const redirectTmpl = `<!DOCTYPE html>
<html>
    <head>
        <meta charset="UTF-8" />
        <meta http-equiv="refresh" content="0;url='%[1]s'" />

        <title>Redirecting to %[1]s</title>
    </head>
    <body>
        Redirecting to <a href="%[1]s">%[1]s</a>.
    </body>
</html>`

// redirectCodes are the status codes a redirect can be sent with.
var redirectCodes = map[int]bool{
	http.StatusCreated:           true,
	http.StatusMovedPermanently:  true,
	http.StatusFound:             true,
	http.StatusSeeOther:          true,
	http.StatusTemporaryRedirect: true,
	http.StatusPermanentRedirect: true,
}

// Responder maintains the collaborators needed to build HTTP responses.
// It exposes a method for each form of response:
//
//	Empty
//	Render
//	Redirect
//	Route
//	Response
//	Json
//	File
//
// and Url for generating URLs without responding.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
// A Responder holds no state between calls; it is safe for concurrent use
// when its collaborators are.
type Responder struct {
	logger     logger.Logger
	engine     TemplateEngine
	serializer Serializer
	urls       UrlGenerator
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := new(Responder)
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	return d
}

// Empty builds a Response without a body.
//
// The default status code is 204.
func (doer *Responder) Empty(opts ...Fn) (*Response, error) {
	c, err := newCall(DefaultEmptyCode, opts)
	if err != nil {
		return nil, err
	}

	return &Response{kind: KindEmpty, code: c.code, header: c.header}, nil
}

// Render renders tmpl with data through the TemplateEngine and builds an HTML Response from the result.
// Unless a Content-Type header is set by Header or Headers, Render sets it to DefaultHtmlContentType.
//
// The default status code is 200.
//
// Errors from the TemplateEngine return as they are.
func (doer *Responder) Render(tmpl string, data map[string]any, opts ...Fn) (*Response, error) {
	c, err := newCall(DefaultRenderCode, opts)
	if err != nil {
		return nil, err
	}

	if doer.engine == nil {
		return nil, fmt.Errorf("%w: no TemplateEngine configured", ErrBadConfig)
	}

	if data == nil {
		data = make(map[string]any)
	}

	content, err := doer.engine.Render(tmpl, data)
	if err != nil {
		return nil, doer.fail("cannot render "+tmpl, err)
	}

	if c.header.Get("Content-Type") == "" {
		c.header.Set("Content-Type", DefaultHtmlContentType)
	}

	return &Response{kind: KindHTML, code: c.code, header: c.header, content: []byte(content)}, nil
}

// Redirect builds a Response redirecting to url.
// The body is a small HTML page linking to url for clients not following the Location header.
//
// The default status code is 302.
// Codes other than 201, 301, 302, 303, 307 and 308 return ErrNotValid.
func (doer *Responder) Redirect(url string, opts ...Fn) (*Response, error) {
	c, err := newCall(DefaultRedirectCode, opts)
	if err != nil {
		return nil, err
	}

	return redirect(url, c)
}

// Route generates the URL for the named route and params through the UrlGenerator
// and builds a Response redirecting to it, exactly as Redirect does.
//
// The default status code is 302.
// The default shape of the URL is DefaultRouteReference.
//
// Errors from the UrlGenerator return as they are.
func (doer *Responder) Route(name string, params map[string]string, opts ...Fn) (*Response, error) {
	c, err := newCall(DefaultRouteCode, opts)
	if err != nil {
		return nil, err
	}

	u, err := doer.generate(name, params, c.reference(DefaultRouteReference))
	if err != nil {
		return nil, err
	}

	return redirect(u, c)
}

// Response builds a Response with content as its body.
// Response applies no defaults to the headers.
//
// The default status code is 302.
func (doer *Responder) Response(content string, opts ...Fn) (*Response, error) {
	c, err := newCall(DefaultResponseCode, opts)
	if err != nil {
		return nil, err
	}

	return &Response{kind: KindPlain, code: c.code, header: c.header, content: []byte(content)}, nil
}

// Json serializes data into JSON through the Serializer and builds a Response from the result.
//
// The Serializer receives JsonEncodeOptionsKey set to DefaultJsonEncodeOptions,
// followed by any keys set with SerializerContext, which overwrite it.
// Unless a Content-Type header is set by Header or Headers, Json sets it to DefaultJsonContentType.
//
// The default status code is 200.
//
// Errors from the Serializer return as they are.
func (doer *Responder) Json(data any, opts ...Fn) (*Response, error) {
	c, err := newCall(DefaultJsonCode, opts)
	if err != nil {
		return nil, err
	}

	if doer.serializer == nil {
		return nil, fmt.Errorf("%w: no Serializer configured", ErrBadConfig)
	}

	ctx := map[string]any{JsonEncodeOptionsKey: DefaultJsonEncodeOptions}
	for k, v := range c.serializer {
		ctx[k] = v
	}

	content, err := doer.serializer.Serialize(data, "json", ctx)
	if err != nil {
		return nil, doer.fail("cannot serialize JSON", err)
	}

	if c.header.Get("Content-Type") == "" {
		c.header.Set("Content-Type", DefaultJsonContentType)
	}

	return &Response{kind: KindJSON, code: c.code, header: c.header, content: []byte(content)}, nil
}

// File builds a Response sending the file found at fp,
// in the OS filesystem or the fs.FS set by FS.
//
// The client saves the file under its own base name unless Filename sets another one,
// and downloads it unless Inline is passed.
// Content-Type is guessed from the extension of the file, then of the filename,
// falling back to application/octet-stream.
// Headers set by Header or Headers replace these defaults, except Content-Length.
//
// The default status code is 200.
// Range and conditional requests are only honoured with 200.
//
// If no readable file exists at fp, File returns ErrNotExist.
func (doer *Responder) File(fp string, opts ...Fn) (*Response, error) {
	c, err := newCall(http.StatusOK, opts)
	if err != nil {
		return nil, err
	}

	f, err := openFile(fp, c)
	if err != nil {
		return nil, doer.fail("cannot send file", err)
	}

	name := c.filename
	if name == "" {
		name = f.name
	}

	disposition, err := formatDisposition(c.disposition, name)
	if err != nil {
		return nil, err
	}

	ct := mime.TypeByExtension(path.Ext(f.name))
	if ct == "" {
		ct = mime.TypeByExtension(path.Ext(name))
	}

	if ct == "" {
		ct = "application/octet-stream"
	}

	h := c.header
	setDefault(h, "Content-Disposition", disposition)
	setDefault(h, "Content-Type", ct)
	if !f.modTime.IsZero() {
		setDefault(h, "Last-Modified", f.modTime.UTC().Format(http.TimeFormat))
	}
	h.Set("Content-Length", strconv.FormatInt(f.size, 10))

	return &Response{kind: KindFile, code: c.code, header: h, file: f}, nil
}

// Url generates the URL for the named route and params through the UrlGenerator.
//
// The default shape of the URL is DefaultUrlReference.
//
// Errors from the UrlGenerator return as they are.
func (doer *Responder) Url(name string, params map[string]string, opts ...Fn) (string, error) {
	c, err := newCall(0, opts)
	if err != nil {
		return "", err
	}

	return doer.generate(name, params, c.reference(DefaultUrlReference))
}

// fail logs err at the debug level and returns it.
func (doer *Responder) fail(msg string, err error) error {
	doer.logger.Debug(msg, &logger.LogContext{Error: err})
	return err
}

// generate calls the UrlGenerator.
func (doer *Responder) generate(name string, params map[string]string, ref ReferenceType) (string, error) {
	if doer.urls == nil {
		return "", fmt.Errorf("%w: no UrlGenerator configured", ErrBadConfig)
	}

	if params == nil {
		params = make(map[string]string)
	}

	u, err := doer.urls.Generate(name, params, ref)
	if err != nil {
		return "", doer.fail("cannot generate URL for route "+name, err)
	}

	return u, nil
}

// redirect builds the Response for Redirect and Route.
func redirect(url string, c *call) (*Response, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: cannot redirect to an empty URL", ErrMissingData)
	}

	if !redirectCodes[c.code] {
		return nil, fmt.Errorf("%w: HTTP status code %d is not a redirect", ErrNotValid, c.code)
	}

	c.header.Set("Location", url)
	if c.header.Get("Content-Type") == "" {
		c.header.Set("Content-Type", DefaultHtmlContentType)
	}

	escaped := html.EscapeString(url)
	return &Response{
		kind:    KindRedirect,
		code:    c.code,
		header:  c.header,
		content: []byte(fmt.Sprintf(redirectTmpl, escaped)),
	}, nil
}

// formatDisposition builds the Content-Disposition header for name.
//
// Names needing encoding are sent both as filename*
// and as an ASCII filename for clients not understanding the former.
func formatDisposition(d Disposition, name string) (string, error) {
	encoded := mime.FormatMediaType(d.String(), map[string]string{"filename": name})
	if encoded == "" {
		return "", fmt.Errorf("%w: cannot format Content-Disposition for %q", ErrNotValid, name)
	}

	if !strings.Contains(encoded, "filename*=") {
		return encoded, nil
	}

	fallback := mime.FormatMediaType(d.String(), map[string]string{"filename": asciiFilename(name)})
	return fallback + strings.TrimPrefix(encoded, d.String()), nil
}

// asciiFilename replaces every character of name outside printable ASCII, and %, with _.
func asciiFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '%' {
			return '_'
		}

		return r
	}, name)
}

// setDefault sets key to val unless a value was set already.
func setDefault(h http.Header, key, val string) {
	if h.Get(key) == "" {
		h.Set(key, val)
	}
}

// openFile resolves fp into a *File, confirming it is a readable, regular file.
func openFile(fp string, c *call) (*File, error) {
	if fp == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrNotExist)
	}

	f := &File{path: fp, fsys: c.fsys}
	if c.fsys == nil {
		f.name = filepath.Base(fp)
	} else {
		f.name = path.Base(fp)
	}

	file, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotExist, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotExist, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotExist, fp)
	}

	f.size = info.Size()
	f.modTime = info.ModTime()

	return f, nil
}
