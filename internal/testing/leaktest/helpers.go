// Package leaktest checks that background loops such as the scheduler and
// worker pool release their goroutines once stopped.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollEvery     = 10 * time.Millisecond
	stackBufBytes = 1 << 16
)

// GoroutineChecker records the goroutine count when a test starts.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines outlive the
// baseline. Stopped loops get until the settle timeout to exit.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after, ok := Settle(g.before+tolerance, settleTimeout)
	if ok {
		return
	}
	buf := make([]byte, stackBufBytes)
	n := runtime.Stack(buf, true)
	g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d\n%s",
		g.before, after, tolerance, buf[:n])
}

// Settle polls until at most target goroutines are running or timeout
// passes. It returns the last count seen.
func Settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollEvery)
	}
}
