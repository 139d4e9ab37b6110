package template

import (
	"bytes"
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
	"sync"
)

// Paths of the pages embedded in this package.
// Any file at the same path in the user filesystem takes precedence.
const (
	ErrorTmpl       = "tmpl/error.tmpl"
	MaintenanceTmpl = "tmpl/maintenance.tmpl"
)

// Engine parses and executes HTML templates found in an fs.FS,
// with the functions provided.
// Engine implements resp.TemplateEngine.
type Engine struct {
	fs      fs.FS
	fns     html.FuncMap
	layouts []string
	pool    *sync.Pool
}

// New constructs an *Engine with the provided functional options.
//
// Templates are looked up in the fs.FS set by WithFS, or the current working directory,
// and then in the templates embedded in this package.
func New(opts ...EngineOptFn) *Engine {
	e := &Engine{
		fns:  make(html.FuncMap),
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(e)
	}

	userFS := e.fs
	if userFS == nil {
		userFS = os.DirFS(".")
	}

	e.fs = &mergeFS{
		cache:   make(map[string]func(string) (fs.File, error)),
		userDir: userFS,
		pkgDir:  pkgFS,
	}

	return e
}

// Parse parses files found in the fs.FS of the *Engine with the functions provided previously.
// The returned template is named after the base name of the first file.
func (e *Engine) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	return html.New(path.Base(files[0])).Funcs(e.fns).ParseFS(e.fs, files...)
}

// Render parses the layouts set by WithLayouts followed by name
// and executes the first of them with data.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty template name", ErrNoFiles)
	}

	fps := append(append([]string(nil), e.layouts...), name)
	tmpl, err := e.Parse(fps...)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrRender, name, err)
	}

	b := e.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer e.pool.Put(b)

	if err := tmpl.ExecuteTemplate(b, path.Base(fps[0]), data); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrRender, name, err)
	}

	return b.String(), nil
}
