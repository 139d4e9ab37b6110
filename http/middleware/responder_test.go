package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responder/http/middleware"
)

func TestInjectResponder(t *testing.T) {
	// Arrange + Act
	actual := middleware.InjectResponder(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	rp := newResponder()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	middleware.InjectResponder(rp)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		actualResponder, ok := middleware.ResponderFrom(rx.Context())

		// Assert
		require.True(t, ok)
		require.Equal(t, rp, actualResponder)
	})).ServeHTTP(w, r)

	// Act
	_, ok := middleware.ResponderFrom(context.Background())

	// Assert
	require.False(t, ok)
}
