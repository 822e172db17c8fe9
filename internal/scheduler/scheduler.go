package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/metrics"
	"github.com/osse101/dropgame/internal/worker"
)

// Scheduler fires keyed one-shot jobs into a worker pool. Each key has at most
// one pending entry; scheduling a key again replaces its entry.
type Scheduler struct {
	workerPool *worker.Pool
	clock      clockwork.Clock

	mu      sync.Mutex
	queue   entryQueue
	index   map[string]*entry
	seq     uint64
	started bool

	wake     chan struct{}
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler. A nil clock means the real clock.
func New(pool *worker.Pool, clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		workerPool: pool,
		clock:      clock,
		index:      make(map[string]*entry),
		wake:       make(chan struct{}, 1),
		quit:       make(chan struct{}),
	}
}

// Clock returns the clock driving the scheduler.
func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

// Schedule runs job after delay, replacing any entry already pending for key.
func (s *Scheduler) Schedule(key string, delay time.Duration, job worker.Job) {
	if delay < 0 {
		delay = 0
	}
	at := s.clock.Now().Add(delay)

	s.mu.Lock()
	if old, ok := s.index[key]; ok {
		heap.Remove(&s.queue, old.pos)
	}
	s.seq++
	e := &entry{key: key, at: at, seq: s.seq, job: job}
	heap.Push(&s.queue, e)
	s.index[key] = e
	depth := len(s.queue)
	s.mu.Unlock()

	metrics.SchedulerQueueDepth.Set(float64(depth))
	logger.FromContext(context.Background()).Debug(LogMsgEntryScheduled, "key", key, "delay", delay)
	s.notify()
}

// Cancel drops the pending entry for key. It reports whether one existed.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	e, ok := s.index[key]
	if ok {
		heap.Remove(&s.queue, e.pos)
		delete(s.index, key)
	}
	depth := len(s.queue)
	s.mu.Unlock()

	if ok {
		metrics.SchedulerQueueDepth.Set(float64(depth))
		s.notify()
	}
	return ok
}

// Pending returns the fire time of the entry for key.
func (s *Scheduler) Pending(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.index[key]; ok {
		return e.at, true
	}
	return time.Time{}, false
}

// Len returns the number of pending entries.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Start launches the dispatch loop. It stops when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop ends the dispatch loop and discards every pending entry.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()

		s.mu.Lock()
		dropped := len(s.queue)
		s.queue = nil
		s.index = make(map[string]*entry)
		s.mu.Unlock()

		metrics.SchedulerQueueDepth.Set(0)
		logger.FromContext(context.Background()).Info(LogMsgSchedulerStopped, "dropped", dropped)
	})
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		// Any pending wake-up is covered by the scan below.
		select {
		case <-s.wake:
		default:
		}

		due, next, hasNext := s.popDue()
		for _, e := range due {
			if !s.workerPool.Enqueue(e.job) {
				return
			}
		}

		var timer clockwork.Timer
		var fire <-chan time.Time
		if hasNext {
			timer = s.clock.NewTimer(next.Sub(s.clock.Now()))
			fire = timer.Chan()
			// The clock may have moved between the scan and the timer.
			if !s.clock.Now().Before(next) {
				stopTimer(timer)
				continue
			}
		}

		select {
		case <-fire:
		case <-s.wake:
		case <-s.quit:
			stopTimer(timer)
			return
		case <-ctx.Done():
			stopTimer(timer)
			return
		}
		stopTimer(timer)
	}
}

// popDue removes every entry whose time has come and returns the fire time
// of the next one.
func (s *Scheduler) popDue() (due []*entry, next time.Time, hasNext bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for len(s.queue) > 0 && !s.queue[0].at.After(now) {
		e := heap.Pop(&s.queue).(*entry)
		delete(s.index, e.key)
		due = append(due, e)
	}
	if len(due) > 0 {
		metrics.SchedulerQueueDepth.Set(float64(len(s.queue)))
	}
	if len(s.queue) == 0 {
		return due, time.Time{}, false
	}
	return due, s.queue[0].at, true
}

func stopTimer(t clockwork.Timer) {
	if t != nil {
		t.Stop()
	}
}
