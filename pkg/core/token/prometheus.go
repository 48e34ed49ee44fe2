package token

import "github.com/prometheus/client_golang/prometheus"

// Metrics used in monitoring service.
var (
	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Completed privileged operations counted by kind",
			Name:      "operations_total",
			Namespace: "ftapt",
		},
		[]string{"op"},
	)

	permissionDenials = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Privileged calls rejected by the authorization gate",
			Name:      "permission_denials_total",
			Namespace: "ftapt",
		},
	)
)

func init() {
	prometheus.MustRegister(
		operations,
		permissionDenials,
	)
}
