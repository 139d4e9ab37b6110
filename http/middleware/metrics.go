package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

const unmatchedRoute = "unmatched"

// A Metrics collects the number of responses written and how long handling the requests took.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics constructs a *Metrics and registers its collectors in reg under namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "responses_total",
			Help:      "Number of responses written.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time spent handling requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordMetrics observes each response in m,
// labelled with the path template of the matched route.
//
// if m is nil, NoopAdapter returns and this middleware does nothing.
func RecordMetrics(m *Metrics) Adapter {
	if m == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snoop := httpsnoop.CaptureMetrics(h, w, r)

			route := unmatchedRoute
			if cur := mux.CurrentRoute(r); cur != nil {
				if tmpl, err := cur.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}

			m.requests.WithLabelValues(route, r.Method, strconv.Itoa(snoop.Code)).Inc()
			m.duration.WithLabelValues(route, r.Method).Observe(snoop.Duration.Seconds())
		})
	}
}
