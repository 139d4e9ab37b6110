package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allow" style headers on a response
// for requests from the origins provided.
// The handler including this middleware must also handle the http.MethodOptions method
// and not just the HTTP method it's designed for.
func CORS(origins ...string) Adapter {
	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Content-Type",
			RequestIDHeader,
		}),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		}),
		handlers.ExposedHeaders([]string{"Content-Disposition", RequestIDHeader}),
	)
}
