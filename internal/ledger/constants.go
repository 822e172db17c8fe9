package ledger

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgLoadHistory     = "failed to load history for %s: %w"
	ErrMsgSaveHistory     = "failed to save history for %s: %w"
	ErrMsgUpdateCounter   = "failed to update counter %s for %s: %w"
	ErrMsgLoadProfile     = "failed to load profile for %s: %w"
	ErrMsgSaveProfile     = "failed to save profile for %s: %w"
	ErrMsgLoadWallet      = "failed to load wallet for %s: %w"
	ErrMsgSaveWallet      = "failed to save wallet for %s: %w"
	ErrMsgLoadBestReasons = "failed to load best reasons for %s: %w"
	ErrMsgSaveBestReasons = "failed to save best reasons for %s: %w"
	ErrMsgListProfiles    = "failed to list profiles for guild %s: %w"
	ErrMsgInvalidRating   = "invalid rating %q"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgRewardRecorded  = "Reward recorded"
	LogMsgClaimAwarded    = "Claim points awarded"
	LogMsgRatingAwarded   = "Rating points awarded"
	LogMsgPointsTransfer  = "Points transferred"
	LogMsgBadProfileEntry = "Skipping unreadable profile"
)
