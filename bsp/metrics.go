package bsp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for runtime-level observability.
var (
	superstepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bspnum_supersteps_total",
		Help: "The total number of barrier synchronizations completed, summed over ranks",
	})
	putElementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bspnum_put_elements_total",
		Help: "The total number of elements moved by one-sided put operations",
	})
	activeRanks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bspnum_active_ranks",
		Help: "Current number of live ranks across all spawned worlds",
	})
	spawnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bspnum_spawns_total",
		Help: "The total number of spawned worlds by outcome",
	}, []string{"status"})
)
