package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/constants"
)

const (
	EntityFieldOfInterest = "field_of_interest"
	EntityCountry         = "country"

	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"

	OutcomeCommitted   = "committed"
	OutcomeConflict    = "conflict"
	OutcomeAlreadyGone = "already_gone"
	OutcomeDuplicate   = "duplicate"
	OutcomeError       = "error"
)

// Recorder counts the terminal state of every write.
type Recorder struct {
	writes  *prometheus.CounterVec
	records *prometheus.GaugeVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		writes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "versioned_writes_total",
				Help:      "Writes by entity, operation and terminal outcome.",
			},
			[]string{"entity", "operation", "outcome"},
		),
		records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "records",
				Help:      "Stored records per entity, as of the last stats refresh.",
			},
			[]string{"entity"},
		),
	}
}

func (r *Recorder) Write(entity, operation, outcome string) {
	if r == nil {
		return
	}
	r.writes.WithLabelValues(entity, operation, outcome).Inc()
}

func (r *Recorder) SetRecords(entity string, n int) {
	if r == nil {
		return
	}
	r.records.WithLabelValues(entity).Set(float64(n))
}
