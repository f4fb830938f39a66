package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_tenancy_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_tenancy_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// SubmissionOutcomes tracks submission orchestrator outcomes
	SubmissionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_tenancy_submissions_total",
			Help: "Number of tenancy application submissions by outcome",
		},
		[]string{"outcome"},
	)

	// StepValidations tracks step validation results
	StepValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_tenancy_step_validations_total",
			Help: "Number of form step validations",
		},
		[]string{"step", "result"},
	)

	// EmailDeliveries tracks outbound email results
	EmailDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_tenancy_email_deliveries_total",
			Help: "Number of outbound emails by kind and result",
		},
		[]string{"kind", "result"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_tenancy_active_connections",
			Help: "Number of active connections",
		},
	)
)
