package drop

import (
	"time"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/reward"
)

// Cadence decides how long a guild waits before its next drop.
type Cadence interface {
	NextDelay(sched domain.GuildDropSchedule, now time.Time, rng reward.RNG) time.Duration
}

// RandomInterval waits a uniformly random whole number of seconds within the
// schedule's [min, max] bounds.
type RandomInterval struct{}

func (RandomInterval) NextDelay(sched domain.GuildDropSchedule, now time.Time, rng reward.RNG) time.Duration {
	lo, hi := sched.MinInterval, sched.MaxInterval
	if lo <= 0 {
		lo = domain.DefaultMinInterval
	}
	if hi < lo {
		hi = lo
	}
	return time.Duration(lo+rng.IntN(hi-lo+1)) * time.Second
}

// FixedCadence waits First before a guild's first drop, then Recurring after
// the persisted time of the last one.
type FixedCadence struct {
	First     time.Duration
	Recurring time.Duration
}

// DefaultFixedCadence is the six hour then every two days rhythm.
var DefaultFixedCadence = FixedCadence{First: domain.FirstDropDelay, Recurring: domain.RecurringDropDelay}

func (c FixedCadence) NextDelay(sched domain.GuildDropSchedule, now time.Time, rng reward.RNG) time.Duration {
	if !sched.FirstDropDone || sched.LastDropAt == 0 {
		return c.First
	}
	next := time.Unix(sched.LastDropAt, 0).Add(c.Recurring)
	if d := next.Sub(now); d > 0 {
		return d
	}
	return 0
}

// nextDelay applies the test-mode override on top of the cadence.
func nextDelay(c Cadence, sched domain.GuildDropSchedule, now time.Time, rng reward.RNG) time.Duration {
	if sched.TestMode {
		return domain.TestModeDropDelay
	}
	return c.NextDelay(sched, now, rng)
}
