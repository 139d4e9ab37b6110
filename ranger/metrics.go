package ranger

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/responder/http/middleware"
)

// metrics pairs the collectors a *Ranger records responses in
// with the registry exposing them.
type metrics struct {
	*middleware.Metrics
	reg *prometheus.Registry
}

func newMetrics(namespace string) (*metrics, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(prometheus.NewGoCollector()); err != nil {
		return nil, err
	}

	m, err := middleware.NewMetrics(namespace, reg)
	if err != nil {
		return nil, err
	}

	return &metrics{Metrics: m, reg: reg}, nil
}

// handler exposes the registry in the Prometheus text format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
