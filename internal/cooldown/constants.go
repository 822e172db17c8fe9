package cooldown

import "time"

// DefaultCooldownDuration is the fallback cooldown for unknown actions
const DefaultCooldownDuration = 5 * time.Minute

// StoreKeyPrefix prefixes the action name in the keyed store, so the claim
// attempt stamp lives under "last_attempt".
const StoreKeyPrefix = "last_"

// Hash Constants
const (
	// HashSeparator joins the scope and action when hashing advisory lock keys
	HashSeparator = ":"

	// HashMaskPositiveInt64 keeps advisory lock keys positive
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// SQL Query Constants
const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	SQLSelectLastUsed = `
		SELECT last_used_at
		FROM user_cooldowns
		WHERE game = $1 AND guild_id = $2 AND user_id = $3 AND action_name = $4
	`

	SQLDeleteCooldown = `
		DELETE FROM user_cooldowns
		WHERE game = $1 AND guild_id = $2 AND user_id = $3 AND action_name = $4
	`

	SQLUpsertCooldown = `
		INSERT INTO user_cooldowns (game, guild_id, user_id, action_name, last_used_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game, guild_id, user_id, action_name) DO UPDATE
		SET last_used_at = EXCLUDED.last_used_at
	`
)

// Error Message Constants
const (
	ErrMsgCheckCooldownFailed     = "failed to check cooldown: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgAcquireLockFailed       = "failed to acquire advisory lock: %w"
	ErrMsgGetCooldownTxFailed     = "failed to get cooldown within transaction: %w"
	ErrMsgUpdateCooldownFailed    = "failed to update cooldown: %w"
	ErrMsgCommitTransactionFailed = "failed to commit cooldown transaction: %w"
	ErrMsgResetCooldownFailed     = "failed to reset cooldown: %w"
	ErrMsgGetLastUsedFailed       = "failed to get last used: %w"
)

// Log Message Constants
const (
	LogMsgDevModeBypass         = "DEV_MODE: Bypassing cooldown enforcement"
	LogMsgRaceConditionDetected = "Race condition detected - concurrent request on cooldown"
	LogMsgCooldownEnforced      = "Cooldown enforced successfully"
)

// Error Message Format Strings (for ErrOnCooldown.Error())
const (
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"
	ErrFmtCooldownSecondsOnly = "You can %s again in %ds"
)

// SecondsPerMinute is used for time duration calculations
const SecondsPerMinute = 60

// Override list syntax
const (
	OverrideSeparator   = ","
	OverrideAssign      = "="
	ErrMsgBadOverride   = "%w: cooldown override %q"
	ErrMsgUnknownAction = "%w: no cooldown named %q"
)
