package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK     = "ok"
	outcomeFailed = "failed"
)

// Metrics counts pipeline outcomes. A nil *Metrics records nothing.
type Metrics struct {
	documents *prometheus.CounterVec
	records   prometheus.Counter
}

// NewMetrics registers the pipeline counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		documents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpv_documents_processed_total",
				Help: "Gazette documents processed, by outcome.",
			},
			[]string{"outcome"},
		),
		records: f.NewCounter(prometheus.CounterOpts{
			Name: "rpv_records_extracted_total",
			Help: "Records extracted from relevant paragraphs.",
		}),
	}
}

func (m *Metrics) documentDone(outcome string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordsExtracted(n int) {
	if m == nil {
		return
	}
	m.records.Add(float64(n))
}
