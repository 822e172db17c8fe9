package discord

import "time"

// Command and option names
const (
	SubReveal       = "reveal"
	SubShow         = "show"
	SubSetChannel   = "setchannel"
	SubClearChannel = "clearchannel"
	SubTestMode     = "testmode"
	SubDropNow      = "dropnow"
	SubBag          = "bag"
	SubWallet       = "wallet"
	SubStats        = "stats"
	SubLeaderboard  = "leaderboard"
	SubHelp         = "help"

	OptChannel = "channel"
	OptEnabled = "enabled"
	OptUser    = "user"
)

// Log messages
const (
	LogMsgReady             = "Bot is ready"
	LogMsgRunning           = "Discord bot is now running"
	LogMsgCheckingCommands  = "Checking Discord commands..."
	LogMsgCommandsForced    = "Force update enabled - replacing all commands"
	LogMsgCommandsUnchanged = "Commands unchanged, skipping registration"
	LogMsgCommandsChanged   = "Commands changed, updating..."
	LogMsgCommandsUpdated   = "Commands updated successfully"
	LogMsgCommandFailed     = "Command failed"
	LogMsgComponentFailed   = "Component interaction failed"
	LogMsgRespondFailed     = "Failed to respond to interaction"
	LogMsgKeywordFailed     = "Keyword claim failed"
	LogMsgActivateFailed    = "Failed to activate drop game"
	LogMsgGuildJoined       = "Guild available"
	LogMsgGuildLeft         = "Guild removed"
	LogMsgPermsFailed       = "Failed to resolve channel permissions"
)

// Error messages
const (
	ErrMsgCreateSession  = "error creating Discord session: %w"
	ErrMsgOpenSession    = "error opening connection: %w"
	ErrMsgFetchCommands  = "failed to fetch existing commands: %w"
	ErrMsgUpdateCommands = "failed to update commands: %w"
	ErrMsgSend           = "failed to send message to channel %s: %w"
	ErrMsgEdit           = "failed to edit message %s: %w"
	ErrMsgReact          = "failed to react to message %s: %w"
	ErrMsgListMembers    = "failed to list members of guild %s: %w"
)

// Pacing and caching
const (
	// Discord allows roughly five messages per five seconds per channel.
	ChannelRateEvery = time.Second
	ChannelBurst     = 5
	LimiterCacheSize = 512
	LimiterIdleTTL   = 10 * time.Minute

	MembersPageSize = 1000
	MembersCacheTTL = 5 * time.Minute
	MembersCacheCap = 256
)
