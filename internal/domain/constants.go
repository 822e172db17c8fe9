package domain

import "time"

// Persisted key names. Guild-scoped keys live under an empty user id.
const (
	KeySchedule    = "schedule"
	KeyOptOut      = "opt_out_list"
	KeyBestReasons = "best_reasons"
	KeyDropBook    = "drop_book"

	KeyItems       = "items"
	KeyClaims      = "claims"
	KeyLastAttempt = "last_attempt"
	KeyProfile     = "profile"
	KeyWallet      = "wallet"
)

// Cooldown action names.
const (
	ActionAttempt    = "attempt"
	ActionSteal      = "steal"
	ActionStealGuild = "steal_guild"
)

// Default cooldown durations
const (
	AttemptCooldownDuration    = 2 * time.Second
	StealCooldownDuration      = 300 * time.Second
	StealGuildCooldownDuration = 120 * time.Second
)

// Random-interval cadence defaults (seconds).
const (
	DefaultMinInterval     = 1800
	DefaultMaxInterval     = 3600
	DefaultExpirySeconds   = 600
	DefaultAttemptCooldown = 2.0
)

// Fixed cadence used by the reason game.
const (
	FirstDropDelay      = 6 * time.Hour
	RecurringDropDelay  = 48 * time.Hour
	TestModeDropDelay   = time.Minute
	PostFailureBackoff  = 5 * time.Second
	DefaultReasonExpiry = 24 * time.Hour
)

// History caps
const (
	MeshHistoryCap   = 500
	ModelHistoryCap  = 5000
	WalletCap        = 500
	BestReasonsCap   = 50
	DropBookCap      = 200
	HistoryPageSize  = 10
	LeaderboardLimit = 10
)

// Economy rules
const (
	ClaimPoints      = 5
	DailyBonusPoints = 10
	DailyBonusWindow = 24 * time.Hour
	WinPoints        = 3
	LossPoints       = 1
	RerollsPerDrop   = 3
	StealSuccessRate = 0.20
	StealMinAmount   = 5
	StealMaxAmount   = 15
)
