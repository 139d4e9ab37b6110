package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/resp"
)

// ForceHTTPS redirects HTTP requests to HTTPS outside of development and testing,
// building the redirect with rp.
//
// The "X-Forwarded-Proto" is used to check whether HTTP was requested due to the application
// running behind a proxy.
func ForceHTTPS(rp *resp.Responder, env responder.Environment) Adapter {
	if rp == nil || env.IsDevelopment() || env.IsTesting() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			res, err := rp.Redirect(u.String(), resp.Code(http.StatusPermanentRedirect))
			if err != nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}

			res.ServeHTTP(w, r)
		})
	}
}
