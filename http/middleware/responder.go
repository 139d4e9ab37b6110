package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/resp"
)

// InjectResponder stores a *resp.Responder in the *http.Request.Context
// under responder.ResponderKey, thereby making it available to handlers.
func InjectResponder(rp *resp.Responder) Adapter {
	if rp == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), responder.ResponderKey, rp)))
		})
	}
}

// ResponderFrom retrieves the *resp.Responder InjectResponder stored in ctx.
func ResponderFrom(ctx context.Context) (*resp.Responder, bool) {
	rp, ok := ctx.Value(responder.ResponderKey).(*resp.Responder)
	return rp, ok
}
