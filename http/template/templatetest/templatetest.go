/*
Package templatetest exposes a mock fs.FS that implements basic file operations.
Used in unit tests for the purposes of avoiding the use of testdata/ directories when unit testing template rendering.
*/
package templatetest

import (
	"bytes"
	"io/fs"
	"path"
	"time"

	"github.com/xy-planning-network/responder/http/template"
)

// NewEngine constructs a *template.Engine looking up templates in the mocked files first.
func NewEngine(tmpls ...FileMocker) *template.Engine {
	return template.New(template.WithFS(NewMockFS(tmpls...)))
}

type FileMocker interface {
	fs.FileInfo
	Open() fs.File
}

type MockFS []FileMocker

func NewMockFS(tmpls ...FileMocker) fs.FS { return append(MockFS{}, tmpls...) }

// Glob checks whether the pattern matches the file after removing all directory paths from
// the respective parts.
//
// Buyer beware: Glob is a simplistic implementation of fs.GlobFS.
//
// i.e., pattern: some/long/path/*
// will match all of the following
// - some/long/path/myfile.txt
// - some/long/otherfile.txt
// - totally/different/tree/somefile.txt
func (mfs MockFS) Glob(pattern string) ([]string, error) {
	_, pattern = path.Split(pattern)
	matches := []string{}
	for _, f := range mfs {
		n := f.Name()
		_, filename := path.Split(n)
		matched, err := path.Match(pattern, filename)
		if err != nil {
			return nil, err
		}
		if matched {
			matches = append(matches, n)
		}
	}

	return matches, nil
}

func (mfs MockFS) Open(name string) (fs.File, error) {
	for _, f := range mfs {
		if f.Name() == name {
			return f.Open(), nil
		}
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

type MockFile struct {
	data    []byte
	modTime time.Time
	name    string
}

func NewMockFile(name string, data []byte) FileMocker {
	return &MockFile{data: data, name: name}
}

func (m *MockFile) IsDir() bool        { return false }
func (m *MockFile) Mode() fs.FileMode  { return 0o444 }
func (m *MockFile) ModTime() time.Time { return m.modTime }
func (m *MockFile) Name() string       { return m.name }
func (m *MockFile) Size() int64        { return int64(len(m.data)) }
func (m *MockFile) Sys() any           { return nil }

// Open returns a handle reading the file from its start.
func (m *MockFile) Open() fs.File { return &openFile{m, bytes.NewReader(m.data)} }

type openFile struct {
	info *MockFile
	*bytes.Reader
}

func (f *openFile) Close() error               { return nil }
func (f *openFile) Stat() (fs.FileInfo, error) { return f.info, nil }
