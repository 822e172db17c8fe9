package domain

import "time"

// Game identifies one of the drop minigames. It scopes every persisted key.
type Game string

const (
	GameMesh   Game = "mesh"
	GameModel  Game = "model"
	GameReason Game = "reason"
)

// GuildDropSchedule is the persisted per-guild drop configuration and bookkeeping.
type GuildDropSchedule struct {
	ChannelID       string  `json:"channel_id,omitempty"`
	MinInterval     int     `json:"min_interval"`
	MaxInterval     int     `json:"max_interval"`
	ExpirySeconds   int     `json:"expiry_seconds"`
	AttemptCooldown float64 `json:"user_attempt_cooldown"`
	LastDropAt      int64   `json:"last_drop_at,omitempty"`
	FirstDropDone   bool    `json:"first_drop_done,omitempty"`
	TestMode        bool    `json:"test_mode,omitempty"`
	TestChannelID   string  `json:"test_channel_id,omitempty"`
}

// Configured reports whether a drop channel is set.
func (s GuildDropSchedule) Configured() bool {
	return s.ChannelID != ""
}

// EffectiveChannel is where drops are posted and claimed: the test channel
// while test mode is on and one is set, otherwise the drop channel.
func (s GuildDropSchedule) EffectiveChannel() string {
	if s.TestMode && s.TestChannelID != "" {
		return s.TestChannelID
	}
	return s.ChannelID
}

// Expiry is the unclaimed-drop window, zero when drops never expire.
func (s GuildDropSchedule) Expiry() time.Duration {
	return time.Duration(s.ExpirySeconds) * time.Second
}

// Cooldown is the per-user claim attempt cooldown.
func (s GuildDropSchedule) Cooldown() time.Duration {
	return time.Duration(s.AttemptCooldown * float64(time.Second))
}

// RewardRecord is one generated reward owned by the member who claimed it.
type RewardRecord struct {
	Name      string `json:"name"`
	Tier      Tier   `json:"rarity"`
	Emoji     string `json:"emoji"`
	Timestamp int64  `json:"ts"`
}

// NewRewardRecord stamps a reward with its tier's emoji and the claim time.
func NewRewardRecord(name string, tier Tier, at time.Time) RewardRecord {
	return RewardRecord{
		Name:      name,
		Tier:      tier,
		Emoji:     tier.Emoji(),
		Timestamp: at.Unix(),
	}
}
