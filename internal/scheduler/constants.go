package scheduler

// Log messages
const (
	LogMsgEntryScheduled   = "Scheduler entry scheduled"
	LogMsgSchedulerStopped = "Scheduler stopped"
)
