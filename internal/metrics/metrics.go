package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paredros_parses_total",
		Help: "Total number of parse sessions, labelled by outcome.",
	}, []string{"status"})

	NodesBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paredros_nodes_built_total",
		Help: "Total traversal nodes created, labelled by node kind.",
	}, []string{"kind"})

	AlternativesExpanded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paredros_alternatives_expanded_total",
		Help: "Total what-if alternative expansions performed (cache misses only).",
	})

	ExpansionNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paredros_expansion_nodes_total",
		Help: "Total synthetic nodes created by alternative expansion.",
	})

	NavigationOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paredros_navigation_ops_total",
		Help: "Total navigator operations, labelled by operation.",
	}, []string{"op"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "paredros_graph_nodes",
		Help: "Node count of the most recently built traversal graph.",
	})
)
