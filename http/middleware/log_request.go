package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/logger"
)

// LogRequest logs the request's method, requested URL, and originating IP address
// after the request is handled, along with the status code, response size and duration
// using the enclosed implementation of logger.Logger.
//
// LogRequest masks the values of these query parameters:
//   - password
//   - token
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			uri := r.URL.Path
			q := r.URL.Query()
			responder.Mask(q, "password")
			responder.Mask(q, "token")
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri, strconv.Itoa(m.Code)}
			if ip, ok := r.Context().Value(responder.IpAddrKey).(string); ok {
				strs = append([]string{ip}, strs...)
			}

			data := map[string]any{
				"bytes":       m.Written,
				"duration_ms": m.Duration.Milliseconds(),
			}
			if id, ok := r.Context().Value(responder.RequestIDKey).(string); ok {
				data["request_id"] = id
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data})
		})
	}
}
