package middleware_test

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/middleware"
)

func TestForceHTTPS(t *testing.T) {
	rp := newResponder()

	tcs := []struct {
		name     string
		env      responder.Environment
		proto    string
		tls      bool
		code     int
		location string
	}{
		{"Development", responder.Development, "http", false, http.StatusOK, ""},
		{"Testing", responder.Testing, "http", false, http.StatusOK, ""},
		{"Forwarded-HTTPS", responder.Production, "https", false, http.StatusOK, ""},
		{"TLS", responder.Production, "", true, http.StatusOK, ""},
		{"Forwarded-HTTP", responder.Production, "http", false, http.StatusPermanentRedirect, "https://example.com/path?q=1"},
		{"Staging", responder.Staging, "", false, http.StatusPermanentRedirect, "https://example.com/path?q=1"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "http://example.com/path?q=1", nil)
			if tc.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tc.proto)
			}

			if tc.tls {
				r.TLS = new(tls.ConnectionState)
			}

			// Act
			middleware.ForceHTTPS(rp, tc.env)(noopHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}
