package calendar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var syncTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calendar_sync_total",
		Help: "Total number of calendar sync attempts",
	},
	[]string{"operation", "outcome"},
)

func observeSync(operation string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	syncTotal.WithLabelValues(operation, outcome).Inc()
}
