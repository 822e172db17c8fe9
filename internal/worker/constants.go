package worker

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerPoolStopped = "Worker pool stopped"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount  = 2
	TestQueueSize    = 10
	TestWaitTimeout  = 2000 // milliseconds
	TestPollInterval = 5    // milliseconds
)
