package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Drop metric names
const (
	MetricNameDropsPosted     = "dropgame_drops_posted_total"
	MetricNameDropsExpired    = "dropgame_drops_expired_total"
	MetricNameDropPostErrors  = "dropgame_drop_post_errors_total"
	MetricNameClaimAttempts   = "dropgame_claim_attempts_total"
	MetricNameRewardsAwarded  = "dropgame_rewards_awarded_total"
	MetricNameControlActions  = "dropgame_control_actions_total"
	MetricNameStealAttempts   = "dropgame_steal_attempts_total"
	MetricNamePointsAwarded   = "dropgame_points_awarded_total"
	MetricNameCommandsHandled = "dropgame_commands_handled_total"
)

// Scheduling metric names
const (
	MetricNameSchedulerQueueDepth = "dropgame_scheduler_queue_depth"
	MetricNameJobsProcessed       = "dropgame_jobs_processed_total"
	MetricNameJobsFailed          = "dropgame_jobs_failed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Drop metric help text
const (
	HelpTextDropsPosted     = "Total number of drops announced"
	HelpTextDropsExpired    = "Total number of drops that expired unclaimed"
	HelpTextDropPostErrors  = "Total number of failed drop announcements"
	HelpTextClaimAttempts   = "Total number of claim attempts by outcome"
	HelpTextRewardsAwarded  = "Total number of rewards awarded by rarity"
	HelpTextControlActions  = "Total number of drop control button presses"
	HelpTextStealAttempts   = "Total number of steal attempts by result"
	HelpTextPointsAwarded   = "Total points credited to members"
	HelpTextCommandsHandled = "Total number of slash commands handled"
)

// Scheduling metric help text
const (
	HelpTextSchedulerQueueDepth = "Number of entries waiting in the scheduler"
	HelpTextJobsProcessed       = "Total number of worker jobs completed"
	HelpTextJobsFailed          = "Total number of worker jobs that failed"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelGame    = "game"
	LabelOutcome = "outcome"
	LabelRarity  = "rarity"
	LabelAction  = "action"
	LabelCommand = "command"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration in seconds
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
