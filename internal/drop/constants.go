package drop

// Reaction emoji
const (
	EmojiCooldown = "⏳"
	EmojiWarning  = "⚠️"
	EmojiNothing  = "🚫"
	EmojiLostRace = "❌"
)

// User-facing notices
const (
	MsgSlowDown          = "⏳ Slow down a bit."
	MsgFmtNotConfigured  = "⚠️ No drop channel configured yet. Ask an admin to run `/%s setchannel`."
	MsgFmtNothingToClaim = "🚫 No active %s right now."
	MsgWrongChannel      = "🚫 Try this in the configured drop channel."
	MsgLostRace          = "❌ Someone else already revealed it."
)

// Admin replies
const (
	MsgFmtChannelSet      = "✅ %s drops will appear in <#%s>."
	MsgFmtChannelCleared  = "🛑 %s drops are off. Set a channel to turn them back on."
	MsgFmtTestModeOn      = "🧪 Test mode on: drops every minute in <#%s>."
	MsgTestModeOff        = "🧪 Test mode off: back to the normal schedule."
	MsgTestModeNoChannel  = "🧪 Test mode on. Set a drop channel to start."
	MsgChannelUnavailable = "⚠️ I can't post in that channel."
	MsgDebugSent          = "debug drop sent ✅"
	MsgDebugNoChannel     = "no channel set"
	MsgDebugMissing       = "channel missing"
	MsgDebugActive        = "drop already active"
	MsgDebugNoMembers     = "no eligible members"
)

// Error messages
const (
	ErrMsgLoadSchedule = "failed to load schedule for guild %s: %w"
	ErrMsgSaveSchedule = "failed to save schedule for guild %s: %w"
	ErrMsgAnnounce     = "failed to build announcement: %w"
	ErrMsgSendDrop     = "failed to send drop: %w"
)

// Log messages
const (
	LogMsgClaimAttempt       = "Claim attempt"
	LogMsgActivated          = "Drop schedule activated"
	LogMsgDeactivated        = "Drop schedule deactivated"
	LogMsgIdle               = "No drop channel configured, going idle"
	LogMsgChannelMissing     = "Drop channel missing, skipping round"
	LogMsgDropStillActive    = "Previous drop still outstanding, skipping round"
	LogMsgNoEligibleMembers  = "No eligible members, skipping round"
	LogMsgDropPosted         = "Drop posted"
	LogMsgDropPostFailed     = "Drop post failed, backing off"
	LogMsgDropExpired        = "Drop expired"
	LogMsgExpiryNoticeFailed = "Failed to post expiry notice"
	LogMsgPostedHookFailed   = "Post-publish hook failed"
	LogMsgScheduleSaveFailed = "Failed to persist drop bookkeeping"
	LogMsgDropRestored       = "Outstanding drop restored"
	LogMsgRestoreFailed      = "Failed to restore outstanding drop"
	LogMsgShutdown           = "Drop game shut down"
)
