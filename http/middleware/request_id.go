package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/responder"
)

// RequestIDHeader is the header RequestID sets the request ID in,
// on both the request handed down and the response.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under responder.RequestIDKey
// and sets it on the response under RequestIDHeader.
//
// A well-formed uuid sent in the RequestIDHeader request header is reused.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			r = r.Clone(context.WithValue(r.Context(), responder.RequestIDKey, id))
			r.Header.Set(RequestIDHeader, id)
			h.ServeHTTP(w, r)
		})
	}
}
