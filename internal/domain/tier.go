package domain

import (
	"fmt"
	"strings"
)

// Tier is a reward rarity. Tiers are ordered from most to least common.
type Tier int

const (
	TierCommon Tier = iota
	TierRare
	TierEpic
	TierLegendary
	TierMythic
	TierGoddess
)

// Tiers lists every tier in ascending rarity.
var Tiers = []Tier{TierCommon, TierRare, TierEpic, TierLegendary, TierMythic, TierGoddess}

type tierInfo struct {
	name  string
	color int
	emoji string
}

var tierTable = [...]tierInfo{
	TierCommon:    {"Common", 0x8b8b8b, "🟫"},
	TierRare:      {"Rare", 0x3da5ff, "🔷"},
	TierEpic:      {"Epic", 0x9b59b6, "🟣"},
	TierLegendary: {"Legendary", 0xffa500, "🟧"},
	TierMythic:    {"Mythic", 0x00ffa2, "🟢"},
	TierGoddess:   {"Goddess", 0xff2ed1, "✨"},
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t >= TierCommon && t <= TierGoddess
}

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierTable[t].name
}

// Color is the embed color used when revealing a reward of this tier.
func (t Tier) Color() int {
	if !t.Valid() {
		return 0
	}
	return tierTable[t].color
}

// Emoji is the display symbol for this tier.
func (t Tier) Emoji() string {
	if !t.Valid() {
		return "•"
	}
	return tierTable[t].emoji
}

// CounterKey is the member-scoped counter name for this tier, e.g. "rarity_epic".
func (t Tier) CounterKey() string {
	return "rarity_" + strings.ToLower(t.String())
}

// ParseTier resolves a tier from its display name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if strings.EqualFold(tierTable[t].name, s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown rarity %q", ErrInvalidInput, s)
}

// MarshalText encodes the tier by name so persisted history stays readable.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tier %d", ErrInvalidInput, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
