package discord

// Friendly message constants for Discord responses
const (
	MsgNotAdmin        = "🔒 **Admins only**\nYou need Manage Server to do that."
	MsgGuildOnly       = "This command only works inside a server."
	MsgCooldownActive  = "⏳ **Whoa there!**\nYou need to wait a bit before doing that again."
	MsgStoreDown       = "💾 Storage is having a moment. Try again shortly."
	MsgInvalidInput    = "❓ That didn't look right. Check the command options."
	MsgUnknownCommand  = "❓ I don't know that command."
	MsgUnknownControl  = "❓ That button no longer does anything."
	MsgGenericError    = "❌ Something went wrong."
	MsgFmtCooldownWait = "%s\n%s"
)
