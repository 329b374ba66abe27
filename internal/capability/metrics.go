package capability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visiongo_capability_loads_total",
		Help: "Capability load outcomes, partitioned by binding state.",
	}, []string{"state"})

	loadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visiongo_capability_load_failures_total",
		Help: "Individual capability load failures while the core was available.",
	}, []string{"capability"})

	deferredAccesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visiongo_capability_deferred_access_total",
		Help: "Attribute accesses that hit a deferred capability placeholder.",
	}, []string{"capability"})
)
