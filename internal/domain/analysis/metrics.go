package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics cuenta resultados por Source (no_credential / provider_success / provider_failure).
type Metrics struct {
	results *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vetclinic",
		Subsystem: "analysis",
		Name:      "results_total",
		Help:      "Consultation analyses by result source.",
	}, []string{"source"})

	if reg != nil {
		if err := reg.Register(results); err != nil {
			return nil, err
		}
	}
	return &Metrics{results: results}, nil
}

func (m *Metrics) observe(src Source) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(string(src)).Inc()
}
