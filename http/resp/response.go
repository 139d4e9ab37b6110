package resp

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"
)

// A Kind names the form of response a Responder method built.
type Kind int

const (
	KindPlain Kind = iota
	KindEmpty
	KindHTML
	KindRedirect
	KindJSON
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindEmpty:
		return "empty"
	case KindHTML:
		return "html"
	case KindRedirect:
		return "redirect"
	case KindJSON:
		return "json"
	case KindFile:
		return "file"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// A Response is the status code, headers and body a Responder method built.
//
// A Response does not change once returned.
// Its body is either in-memory content or, for KindFile, a *File read when the Response is written.
type Response struct {
	kind    Kind
	code    int
	header  http.Header
	content []byte
	file    *File
}

// Kind returns the form of the Response.
func (r *Response) Kind() Kind { return r.kind }

// Code returns the HTTP status code of the Response.
func (r *Response) Code() int { return r.code }

// Header returns a copy of the headers of the Response.
func (r *Response) Header() http.Header { return r.header.Clone() }

// Content returns a copy of the in-memory body of the Response.
// Content is nil for KindEmpty and KindFile.
func (r *Response) Content() []byte { return bytes.Clone(r.content) }

// File returns the file a KindFile Response sends, or nil.
func (r *Response) File() *File { return r.file }

// ContentLength returns the number of bytes the body of the Response holds.
func (r *Response) ContentLength() int64 {
	if r.file != nil {
		return r.file.size
	}

	return int64(len(r.content))
}

// Body opens a reader over the body of the Response.
// Calling code must close it.
func (r *Response) Body() (io.ReadCloser, error) {
	if r.file != nil {
		f, err := r.file.Open()
		if err != nil {
			return nil, err
		}

		return f, nil
	}

	if len(r.content) == 0 {
		return http.NoBody, nil
	}

	return io.NopCloser(bytes.NewReader(r.content)), nil
}

// ServeHTTP writes the Response to w.
//
// File bodies with status 200 are served with [http.ServeContent] when the opened file can seek,
// which handles Range and conditional requests.
func (r *Response) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.file == nil {
		r.writeHeader(w)
		w.WriteHeader(r.code)
		if len(r.content) > 0 {
			w.Write(r.content)
		}

		return
	}

	f, err := r.file.Open()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	r.writeHeader(w)
	if rs, ok := f.(io.ReadSeeker); ok && r.code == http.StatusOK {
		// NOTE: ServeContent computes Content-Length itself, including for ranges
		w.Header().Del("Content-Length")
		http.ServeContent(w, req, r.file.name, r.file.modTime, rs)
		return
	}

	w.WriteHeader(r.code)
	io.Copy(w, f)
}

func (r *Response) writeHeader(w http.ResponseWriter) {
	h := w.Header()
	for k, vals := range r.header {
		h[k] = append([]string(nil), vals...)
	}
}

// A File references the file a KindFile Response sends.
type File struct {
	name    string
	path    string
	size    int64
	modTime time.Time
	fsys    fs.FS
}

// Name returns the base name of the file.
func (f *File) Name() string { return f.name }

// Path returns the path the file was resolved from.
func (f *File) Path() string { return f.path }

// Size returns the size of the file in bytes at the time it was resolved.
func (f *File) Size() int64 { return f.size }

// ModTime returns the modification time of the file at the time it was resolved.
func (f *File) ModTime() time.Time { return f.modTime }

// Open opens the file for reading from the fs.FS it was resolved in
// or, when none was set, the OS filesystem.
func (f *File) Open() (fs.File, error) {
	if f.fsys != nil {
		return f.fsys.Open(f.path)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}

	return file, nil
}
