// Package metrics holds the Prometheus collectors of the readers and the
// canonicalizer. They live in a private registry so that importing the
// library doesn't touch the default one.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry contains all collectors of this package
var Registry = prometheus.NewRegistry()

var (
	// IdentificationsRead counts PSM records produced by the streaming reader
	IdentificationsRead = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mzid_identifications_read_total",
		Help: "Number of spectrum identification items read by the streaming reader.",
	})

	// DanglingReferences counts ids that could not be resolved while
	// building the full graph, by referenced entity kind
	DanglingReferences = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mzid_dangling_references_total",
		Help: "References to undeclared ids left unresolved by the graph reader.",
	}, []string{"kind"})

	// CanonicalEntities is the size of each canonical list after the last rebuild
	CanonicalEntities = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mzid_canonical_entities",
		Help: "Number of entities in each canonical list after the last rebuild.",
	}, []string{"kind"})

	// ReadDuration observes how long a complete read takes, per reader
	ReadDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mzid_read_duration_seconds",
		Help:    "Time to read one mzIdentML document.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	}, []string{"reader"})
)

func init() {
	Registry.MustRegister(IdentificationsRead, DanglingReferences, CanonicalEntities, ReadDuration)
}

// WriteTextfile writes the current values in the text exposition format,
// for the node exporter textfile collector
func WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, Registry)
}
