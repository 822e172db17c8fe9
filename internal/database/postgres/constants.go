package postgres

// SQL Query Constants - kv_store
const (
	SQLSelectValue = `
		SELECT value
		FROM kv_store
		WHERE game = $1 AND guild_id = $2 AND user_id = $3 AND key = $4
	`

	SQLUpsertValue = `
		INSERT INTO kv_store (game, guild_id, user_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (game, guild_id, user_id, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	SQLDeleteValue = `DELETE FROM kv_store WHERE game = $1 AND guild_id = $2 AND user_id = $3 AND key = $4`

	SQLSelectMemberValues = `
		SELECT user_id, value
		FROM kv_store
		WHERE game = $1 AND guild_id = $2 AND key = $3 AND user_id <> ''
	`
)

// Error Messages - kv_store Operations
const (
	ErrMsgFailedToGetValue    = "failed to get"
	ErrMsgFailedToSetValue    = "failed to set"
	ErrMsgFailedToDeleteValue = "failed to delete"
	ErrMsgFailedToListMembers = "failed to list member values"
)
