package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Drop Metrics
var (
	DropsPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDropsPosted,
			Help: HelpTextDropsPosted,
		},
		[]string{LabelGame},
	)

	DropsExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDropsExpired,
			Help: HelpTextDropsExpired,
		},
		[]string{LabelGame},
	)

	DropPostErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDropPostErrors,
			Help: HelpTextDropPostErrors,
		},
		[]string{LabelGame},
	)

	ClaimAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimAttempts,
			Help: HelpTextClaimAttempts,
		},
		[]string{LabelGame, LabelOutcome},
	)

	RewardsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsAwarded,
			Help: HelpTextRewardsAwarded,
		},
		[]string{LabelGame, LabelRarity},
	)

	ControlActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameControlActions,
			Help: HelpTextControlActions,
		},
		[]string{LabelAction},
	)

	StealAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStealAttempts,
			Help: HelpTextStealAttempts,
		},
		[]string{LabelOutcome},
	)

	PointsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsAwarded,
			Help: HelpTextPointsAwarded,
		},
	)

	CommandsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsHandled,
			Help: HelpTextCommandsHandled,
		},
		[]string{LabelCommand},
	)
)

// Scheduling Metrics
var (
	SchedulerQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSchedulerQueueDepth,
			Help: HelpTextSchedulerQueueDepth,
		},
	)

	JobsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobsProcessed,
			Help: HelpTextJobsProcessed,
		},
	)

	JobsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobsFailed,
			Help: HelpTextJobsFailed,
		},
	)
)
