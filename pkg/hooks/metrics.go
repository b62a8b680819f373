package hooks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// decisionsTotal counts filtering decisions.
	// Labels: hook (message, tool_call), action (blocked, redacted, warned)
	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leakgate",
			Subsystem: "hooks",
			Name:      "decisions_total",
			Help:      "Total filtering decisions by hook and action",
		},
		[]string{"hook", "action"},
	)

	// detectionsTotal counts detections by pattern name.
	detectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leakgate",
			Subsystem: "hooks",
			Name:      "detections_total",
			Help:      "Total secret detections by pattern",
		},
		[]string{"pattern"},
	)
)
