package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/middleware"
	"github.com/xy-planning-network/responder/http/resp"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// A Route with a Name can be turned back into a URL through [*Router.Generate].
type Route struct {
	Name        string
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests to handlers and generates URLs for named routes.
// Router implements resp.UrlGenerator.
type Router struct {
	Env           responder.Environment
	base          *url.URL
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
//
// base is the scheme and host absolute URLs are generated with.
// If base is nil, absolute URLs and network paths fall back to absolute paths.
func New(env responder.Environment, base *url.URL, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{Env: env, base: base, logReq: logReq, r: mux.NewRouter()}
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.Env)(handler),
			r.everyReqStack...,
		),
	)
}

// Generate builds the URL for the route registered under name,
// shaped according to ref.
//
// Values in params matching variables in the route's path fill them in;
// all others are appended to the URL as query parameters.
//
// Generate implements resp.UrlGenerator.
func (r *Router) Generate(name string, params map[string]string, ref resp.ReferenceType) (string, error) {
	if err := ref.Valid(); err != nil {
		return "", err
	}

	route := r.r.Get(name)
	if route == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrRouteNotFound, name, err)
	}

	vars, err := pathVars(tmpl)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrRouteNotFound, name, err)
	}

	query := make(url.Values)
	for k, v := range params {
		query.Set(k, v)
	}

	pairs := make([]string, 0, len(vars)*2)
	for _, v := range vars {
		val, ok := params[v]
		if !ok {
			return "", fmt.Errorf("%w: %q requires %q", ErrMissingParams, name, v)
		}

		pairs = append(pairs, v, val)
		query.Del(v)
	}

	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrMissingParams, name, err)
	}

	u.RawQuery = query.Encode()
	if r.base != nil {
		u.Path = strings.TrimSuffix(r.base.Path, "/") + u.Path
	}

	if r.base == nil || r.base.Host == "" || ref == resp.AbsolutePath {
		return u.String(), nil
	}

	u.Host = r.base.Host
	if ref == resp.AbsoluteURL {
		u.Scheme = r.base.Scheme
	}

	return u.String(), nil
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter(nil), r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler), mws...)

		mr := r.r.Handle(route.Path, handler).Methods(route.Method)
		if route.Name != "" {
			mr.Name(route.Name)
		}
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Static serves the files in filesys under prefix,
// with a "Cache-Control" header set on each response.
//
// e.g., r.Static("/static/", os.DirFS("web/static"))
func (r *Router) Static(prefix string, filesys fs.FS) {
	r.r.PathPrefix(prefix).Handler(middleware.Chain(
		http.StripPrefix(prefix, http.FileServer(http.FS(filesys))),
		cacheControlMiddleware(),
		r.logReq,
	))
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
// Routes named on the Subrouter can be generated by its parent and vice versa.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		base:          r.base,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
	}
}

// pathVars lists the names of the variables in a route's path template,
// e.g., "id" and "slug" in "/posts/{id:[0-9]+}/{slug}".
func pathVars(tmpl string) ([]string, error) {
	var (
		names []string
		level int
		start int
	)

	for i := 0; i < len(tmpl); i++ {
		switch tmpl[i] {
		case '{':
			if level == 0 {
				start = i + 1
			}
			level++

		case '}':
			level--
			if level < 0 {
				return nil, fmt.Errorf("unbalanced braces in %q", tmpl)
			}

			if level == 0 {
				name, _, _ := strings.Cut(tmpl[start:i], ":")
				names = append(names, strings.TrimSpace(name))
			}
		}
	}

	if level != 0 {
		return nil, fmt.Errorf("unbalanced braces in %q", tmpl)
	}

	return names, nil
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
