package scheduler

import (
	"time"

	"github.com/osse101/dropgame/internal/worker"
)

type entry struct {
	key string
	at  time.Time
	seq uint64
	job worker.Job
	pos int
}

// entryQueue is a min-heap ordered by fire time, then by insertion order.
type entryQueue []*entry

func (q entryQueue) Len() int { return len(q) }

func (q entryQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q entryQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].pos = i
	q[j].pos = j
}

func (q *entryQueue) Push(x any) {
	e := x.(*entry)
	e.pos = len(*q)
	*q = append(*q, e)
}

func (q *entryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.pos = -1
	*q = old[:n-1]
	return e
}
