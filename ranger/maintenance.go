package ranger

import (
	"net/http"
	"strconv"

	"github.com/xy-planning-network/responder/http/resp"
	"github.com/xy-planning-network/responder/http/template"
)

const (
	maintenanceEnvVar = "MAINTENANCE_MODE"

	// maintenanceRetryAfter is how long, in seconds, clients are asked to wait.
	maintenanceRetryAfter = 600
)

// MaintModeHandler responds to all requests with 503 and a Retry-After header.
//
// GET requests receive the maintenance page, which lists contact as the address to reach out to.
// If the page cannot be rendered, or for any other method, the body is empty.
func MaintModeHandler(rp *resp.Responder, contact string) http.HandlerFunc {
	opts := []resp.Fn{
		resp.Code(http.StatusServiceUnavailable),
		resp.Header("Retry-After", strconv.Itoa(maintenanceRetryAfter)),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var (
			res *resp.Response
			err error
		)

		if r.Method == http.MethodGet {
			res, err = rp.Render(template.MaintenanceTmpl, map[string]any{"contact": contact}, opts...)
		}

		if r.Method != http.MethodGet || err != nil {
			res, err = rp.Empty(opts...)
		}

		if err != nil {
			w.Header().Set("Retry-After", strconv.Itoa(maintenanceRetryAfter))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		res.ServeHTTP(w, r)
	}
}
