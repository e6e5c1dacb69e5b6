package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Persistent store metrics
	StoreWrites    *prometheus.CounterVec
	StoreFallbacks *prometheus.CounterVec

	// Roster metrics
	RosterMutations *prometheus.CounterVec
	RosterSize      prometheus.Gauge

	// SOAP composer metrics
	DraftsActive prometheus.Gauge
	NotesSaved   prometheus.Counter
	SavesBlocked prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		StoreWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_writes_total",
			Help:      "Total number of whole-blob writes to the persistent store",
		}, []string{"key"}),
		StoreFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_fallbacks_total",
			Help:      "Total number of loads that fell back to the default value",
		}, []string{"key"}),

		RosterMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_mutations_total",
			Help:      "Total number of roster mutations by operation",
		}, []string{"operation"}),
		RosterSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_size",
			Help:      "Current number of patients in the roster",
		}),

		DraftsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "drafts_active",
			Help:      "Current number of open SOAP drafts",
		}),
		NotesSaved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notes_saved_total",
			Help:      "Total number of SOAP notes saved",
		}),
		SavesBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_blocked_total",
			Help:      "Total number of save attempts rejected by the completeness gate",
		}),
	}
}
