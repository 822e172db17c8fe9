package domain

import "time"

// Profile is a member's reason-game economy state.
type Profile struct {
	Points           int   `json:"points"`
	Streak           int   `json:"streak"`
	TotalClaims      int   `json:"total_claims"`
	TotalWins        int   `json:"total_wins"`
	TotalLosses      int   `json:"total_losses"`
	SuccessfulSteals int   `json:"successful_steals"`
	LastDailyClaim   int64 `json:"last_daily_claim,omitempty"`
}

// WalletEntry is a reason text a member claimed into their wallet.
type WalletEntry struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"ts"`
}

// BestReason is one entry of a guild's top-rated reasons list.
type BestReason struct {
	Text      string `json:"text"`
	Votes     int    `json:"votes"`
	FirstSeen int64  `json:"first_seen"`
}

// Rating is a subject's verdict on a reason drop.
type Rating string

const (
	RatingNone Rating = ""
	RatingWin  Rating = "win"
	RatingLoss Rating = "loss"
)

// ReasonDrop is the persisted claim state of one posted reason message.
type ReasonDrop struct {
	MessageID   string `json:"message_id"`
	ChannelID   string `json:"channel_id"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	Text        string `json:"text"`
	Color       int    `json:"color,omitempty"`
	PostedAt    int64  `json:"posted_at"`
	RerollsLeft int    `json:"rerolls_left"`
	ClaimedBy   string `json:"claimed_by,omitempty"`
	Rating      Rating `json:"rating,omitempty"`
	Expired     bool   `json:"expired,omitempty"`
}

// Open reports whether the drop can still be acted on at now given its expiry window.
func (d ReasonDrop) Open(now time.Time, window time.Duration) bool {
	if d.Expired {
		return false
	}
	if window <= 0 {
		return true
	}
	return now.Sub(time.Unix(d.PostedAt, 0)) < window
}
