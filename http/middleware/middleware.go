package middleware

import (
	"net/http"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
// The first adapter is the first to see a request.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter returns the handler it was passed as is.
func NoopAdapter(h http.Handler) http.Handler { return h }
