package template

import (
	"fmt"
	html "html/template"
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/resp"
)

// AddFn includes the named function in the *Engine function map.
func (e *Engine) AddFn(name string, fn any) {
	if e.fns == nil {
		e.fns = make(html.FuncMap)
	}
	e.fns[name] = fn
}

// Env encloses some Environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e responder.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// RootUrl encloses the *url.URL representing the base URL of the web app.
// It returns "rootUrl" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootUrl", func() string { return "" }
	}

	s := u.String()
	return "rootUrl", func() string { return s }
}

// Urls returns the functions "url" and "path" generating URLs for named routes through g.
//
// Both take the route name followed by pairs of parameter names and values:
//
//	<a href="{{ path "user_profile" "username" .username }}">Profile</a>
//
// "url" generates absolute URLs; "path" generates absolute paths.
func Urls(g resp.UrlGenerator) html.FuncMap {
	return html.FuncMap{
		"url":  generate(g, resp.AbsoluteURL),
		"path": generate(g, resp.AbsolutePath),
	}
}

func generate(g resp.UrlGenerator, ref resp.ReferenceType) func(string, ...string) (string, error) {
	return func(name string, pairs ...string) (string, error) {
		if len(pairs)%2 != 0 {
			return "", fmt.Errorf("%w: odd number of parameters for route %s", responder.ErrMissingData, name)
		}

		params := make(map[string]string, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			params[pairs[i]] = pairs[i+1]
		}

		return g.Generate(name, params, ref)
	}
}

// WithFns adds every function in fns to an *Engine's function map.
func WithFns(fns html.FuncMap) EngineOptFn {
	return func(e *Engine) {
		for name, fn := range fns {
			e.AddFn(name, fn)
		}
	}
}
