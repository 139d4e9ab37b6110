/*
Package router routes HTTP requests to handlers and generates URLs for them.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

A Route given a Name can be resolved back into a URL with [*Router.Generate],
which makes a *Router the resp.UrlGenerator a resp.Responder redirects to routes with:

	r := router.New(env, baseURL, middleware.LogRequest(log))
	r.Handle(router.Route{Name: "user_profile", Path: "/user/{username}", Method: http.MethodGet, Handler: profile})

	rp := resp.NewResponder(resp.WithUrlGenerator(r))
	res, err := rp.Route("user_profile", map[string]string{"username": "kpicaza"})
*/
package router
