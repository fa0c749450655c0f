package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Total number of subsidy applications accepted at intake",
		},
	)

	FraudChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_checks_total",
			Help: "Total number of fraud checks run against stored applications",
		},
		[]string{"verdict"},
	)

	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of standalone prediction requests",
		},
		[]string{"outcome"},
	)
)
