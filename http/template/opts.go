package template

import "io/fs"

// The EngineOptFn applies functional options to an *Engine when constructing it.
type EngineOptFn func(*Engine)

// WithFn encloses a named function so it can be added to an *Engine's function map.
func WithFn(name string, fn any) EngineOptFn {
	return func(e *Engine) {
		e.AddFn(name, fn)
	}
}

// WithFS sets the filesystem templates are looked up in before the embedded ones.
func WithFS(filesys fs.FS) EngineOptFn {
	return func(e *Engine) {
		e.fs = filesys
	}
}

// WithLayouts sets templates parsed ahead of the one Render is called with.
// The first layout is the template executed.
func WithLayouts(fps ...string) EngineOptFn {
	return func(e *Engine) {
		e.layouts = append(e.layouts, fps...)
	}
}
