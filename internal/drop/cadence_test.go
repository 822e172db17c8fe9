package drop

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/dropgame/internal/domain"
)

func TestRandomInterval_StaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	sched := domain.GuildDropSchedule{MinInterval: 30, MaxInterval: 40}
	now := time.Unix(1000, 0)

	seen := make(map[time.Duration]bool)
	for range 500 {
		d := RandomInterval{}.NextDelay(sched, now, rng)
		assert.GreaterOrEqual(t, d, 30*time.Second)
		assert.LessOrEqual(t, d, 40*time.Second)
		assert.Zero(t, d%time.Second)
		seen[d] = true
	}
	assert.Len(t, seen, 11, "every whole second in range should come up")
}

func TestRandomInterval_Degenerate(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	now := time.Unix(1000, 0)

	assert.Equal(t, 15*time.Second,
		RandomInterval{}.NextDelay(domain.GuildDropSchedule{MinInterval: 15, MaxInterval: 5}, now, rng))
	assert.Equal(t, domain.DefaultMinInterval*time.Second,
		RandomInterval{}.NextDelay(domain.GuildDropSchedule{}, now, rng))
}

func TestFixedCadence(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	c := DefaultFixedCadence

	tests := []struct {
		name  string
		sched domain.GuildDropSchedule
		want  time.Duration
	}{
		{
			name:  "first drop",
			sched: domain.GuildDropSchedule{},
			want:  6 * time.Hour,
		},
		{
			name:  "recurring from last drop",
			sched: domain.GuildDropSchedule{FirstDropDone: true, LastDropAt: now.Add(-10 * time.Hour).Unix()},
			want:  38 * time.Hour,
		},
		{
			name:  "overdue fires immediately",
			sched: domain.GuildDropSchedule{FirstDropDone: true, LastDropAt: now.Add(-72 * time.Hour).Unix()},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.NextDelay(tt.sched, now, nil))
		})
	}
}

func TestNextDelay_TestModeOverrides(t *testing.T) {
	sched := domain.GuildDropSchedule{TestMode: true, FirstDropDone: true, LastDropAt: 1}
	assert.Equal(t, time.Minute, nextDelay(DefaultFixedCadence, sched, time.Unix(1000, 0), nil))
}
