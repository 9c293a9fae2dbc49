package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments exposed on /metrics.
type Metrics struct {
	RecordsImported prometheus.Counter
	ImportsFailed   prometheus.Counter
	ExportsServed   prometheus.Counter
	ErrorsCount     *prometheus.CounterVec
}

// New registers and returns the service metrics under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		RecordsImported: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_imported_total",
			Help:      "The total number of passenger rows imported from spreadsheets",
		}),
		ImportsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_failed_total",
			Help:      "The total number of spreadsheet rows that failed to import",
		}),
		ExportsServed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_served_total",
			Help:      "The total number of spreadsheet downloads generated",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors by operation",
		}, []string{"operation"}),
	}
}
