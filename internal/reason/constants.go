package reason

import "time"

// Control actions
const (
	ActionReroll = "reroll"
	ActionClaim  = "claim"
	ActionWin    = "win"
	ActionLoss   = "loss"
	ActionSteal  = "steal"
	ActionStop   = "stop"

	WalletView = "wallet"
)

// Drop message
const (
	DropContentFmt  = "Hey %s, here is a reason for you!"
	DropTitle       = "Reason to Reject"
	DropFooterFmt   = "Selected for: %s | Your choice is private"
	ExpiredFooter   = "This reason has expired."
	ShowTitle       = "Reason"
	LabelReroll     = "Reroll"
	LabelClaim      = "Claim"
	LabelWin        = "Win"
	LabelLoss       = "Loss"
	LabelSteal      = "Steal"
	LabelStop       = "Stop showing me this"
	EmojiReroll     = "🎲"
	EmojiClaim      = "💼"
	EmojiWin        = "🏆"
	EmojiLoss       = "🪦"
	EmojiSteal      = "🦹"
	DefaultReasonFn = "reasons.json"
)

// Control replies
const (
	MsgFmtNotSubject      = "Only %s can use that."
	MsgUnknownDrop        = "I don't remember this reason anymore."
	MsgDropExpired        = "This reason has expired."
	MsgFmtRerolled        = "🎲 Rerolled! %d left."
	MsgNoRerolls          = "No rerolls left on this one."
	MsgFmtClaimed         = "💼 Saved to your wallet! +%d points."
	MsgFmtClaimedDaily    = "💼 Saved to your wallet! +%d points (daily bonus included)."
	MsgAlreadyClaimed     = "You already claimed this one."
	MsgFmtRatedWin        = "🏆 Marked as a win! +%d points. Streak: %d."
	MsgFmtRatedLoss       = "🪦 Marked as a loss. +%d point. Streak reset."
	MsgAlreadyRated       = "You already rated this one."
	MsgOwnDrop            = "You can't steal your own reason."
	MsgStealFailed        = "🚨 Caught! The steal failed."
	MsgFmtNothingToSteal  = "%s has nothing to steal."
	MsgFmtStealSuccess    = "🦹 %s stole %d points from %s!"
	MsgOptedOut           = "You won't be picked for random reasons anymore."
	MsgAlreadyOptedOut    = "You have already opted out."
	MsgNotPageOwner       = "Only the requester can use these buttons."
	MsgUnknownControl     = "That button doesn't do anything anymore."
	StealOutcomeSuccess   = "success"
	StealOutcomeFailed    = "failed"
	StealOutcomeEmpty     = "empty"
	StealOutcomeCooldown  = "cooldown"
	StealOutcomeForbidden = "own_drop"
)

// Views
const (
	WalletTitleFmt      = "%s's Wallet"
	WalletLineFmt       = "**%d.** %s <t:%d:R>"
	WalletFooterFmt     = "Reasons %d-%d / %d"
	WalletEmptyFmt      = "%s has no reasons saved yet."
	WalletColor         = 0x2ecc71
	StatsTitleFmt       = "%s's Reason Stats"
	StatsColor          = 0xf1c40f
	StatsNoAchievements = "None yet."
	LeaderboardTitle    = "Server Leaderboard"
	LeaderboardBest     = "Best reasons"
	LeaderboardRichest  = "Most points"
	LeaderboardEmpty    = "Nobody has rated a reason a win yet."
	LeaderboardColor    = 0xe67e22
	HelpTitle           = "Reason Help"
	HelpColor           = 0x3498db
	HelpFooter          = "Use `/reason show` to get a reason instantly."
	HelpDescription     = "Ever needed a graceful way to say “no”?\n" +
		"This tiny game returns random, generic, creative, and sometimes hilarious reasons (to reject), " +
		"perfectly suited for any scenario: personal, professional, student life, dev life, or just because.\n\n" +
		"Every so often someone in the drop channel is picked for a reason. The pick can reroll it, " +
		"save it to their wallet, or rate it a win or a loss. Anyone else can try to steal some points.\n\n" +
		"Built for humans, excuses, and humor."
)

// Errors and logs
const (
	ErrMsgLoadTexts   = "failed to load reasons from %s: %w"
	ErrMsgNoTexts     = "reason list %s is empty"
	ErrMsgLoadBook    = "failed to load drop book for guild %s: %w"
	ErrMsgSaveBook    = "failed to save drop book for guild %s: %w"
	ErrMsgLoadOptOut  = "failed to load opt-out list for guild %s: %w"
	ErrMsgSaveOptOut  = "failed to save opt-out list for guild %s: %w"
	ErrMsgListMembers = "failed to list eligible members: %w"

	LogMsgControl       = "Reason control used"
	LogMsgExpireEdit    = "Failed to disable expired reason controls"
	LogMsgRerollEdit    = "Failed to update rerolled reason"
	LogMsgStealRolled   = "Steal attempted"
	LogMsgTextsLoaded   = "Reasons loaded"
	LogMsgSubjectPicked = "Reason subject picked"
)

// Caches
const (
	BookCacheSize = 1024
	BookCacheTTL  = time.Hour
)
