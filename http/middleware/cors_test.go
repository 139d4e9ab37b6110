package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responder/http/middleware"
)

func TestCORS(t *testing.T) {
	tcs := []struct {
		name     string
		origin   string
		expected string
	}{
		{"Allowed", "https://example.com", "https://example.com"},
		{"Not-Allowed", "https://evil.example.com", ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://api.example.com", nil)
			r.Header.Set("Origin", tc.origin)

			// Act
			middleware.CORS("https://example.com")(noopHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
