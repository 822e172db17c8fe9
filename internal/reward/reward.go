// Package reward draws rarity tiers and generates reward names.
package reward

import (
	"math/rand/v2"

	"gitlab.com/zephyrtronium/pick"

	"github.com/osse101/dropgame/internal/domain"
)

// RNG is the source of randomness for draws. *rand.Rand from math/rand/v2
// satisfies it, so tests can pass a seeded generator.
type RNG interface {
	Uint32() uint32
	IntN(n int) int
}

type globalRNG struct{}

func (globalRNG) Uint32() uint32 { return rand.Uint32() }
func (globalRNG) IntN(n int) int { return rand.IntN(n) }

// DefaultRNG returns a goroutine-safe RNG backed by the runtime's global source.
func DefaultRNG() RNG {
	return globalRNG{}
}

// Weights are in hundredths of a percent and sum to 10000.
var rarity = pick.New([]pick.Case[domain.Tier]{
	{E: domain.TierCommon, W: 5500},
	{E: domain.TierRare, W: 3500},
	{E: domain.TierEpic, W: 800},
	{E: domain.TierLegendary, W: 160},
	{E: domain.TierMythic, W: 34},
	{E: domain.TierGoddess, W: 6},
})

// PickRarity draws one tier.
func PickRarity(rng RNG) domain.Tier {
	return rarity.Pick(rng.Uint32())
}

// Draw picks a tier and a name for it from c in one step.
func Draw(rng RNG, c *Catalog) (domain.Tier, string) {
	t := PickRarity(rng)
	return t, c.Generate(rng, t)
}

func choose(rng RNG, pool []string) string {
	return pool[rng.IntN(len(pool))]
}
