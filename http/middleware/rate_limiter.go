package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/responder/http/resp"
	"golang.org/x/time/rate"
)

// Defaults for visitors NewVisitors creates.
const (
	DefaultVisitorRate  rate.Limit = 5
	DefaultVisitorBurst            = 20

	visitorTTL = 60 * time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst int
	limit rate.Limit
	val   map[string]Visitor
	mu    sync.Mutex
}

// NewVisitors constructs a *Visitors whose new visitors make at most limit requests every second
// with bursts of up to burst.
// Zero values use DefaultVisitorRate and DefaultVisitorBurst.
func NewVisitors(limit rate.Limit, burst int) *Visitors {
	if limit == 0 {
		limit = DefaultVisitorRate
	}

	if burst == 0 {
		burst = DefaultVisitorBurst
	}

	return &Visitors{burst: burst, limit: limit, val: make(map[string]Visitor)}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len returns the number of visitors tracked.
func (vs *Visitors) Len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler
// while the visitor at the request's IP address has not exceeded their rate.
// Otherwise, RateLimit responds through rp with 429 and a Retry-After header.
func RateLimit(rp *resp.Responder, visitors *Visitors) Adapter {
	if rp == nil || visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer visitors.cleanup()

			if !visitors.Fetch(GetIPAddress(r.Header)).Limiter.Allow() {
				res, err := rp.Empty(resp.Code(http.StatusTooManyRequests), resp.Header("Retry-After", "1"))
				if err != nil {
					http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
					return
				}

				res.ServeHTTP(w, r)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
