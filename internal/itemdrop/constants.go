package itemdrop

// Announcement and reveal text
const (
	AnnounceTitleFmt       = "A %s Appears"
	AnnounceDescriptionFmt = "⬛ **A mysterious %s shimmers into existence...**\nType `%s` to reveal it!"
	AnnounceFooterFmt      = "Expires in %d min if not claimed."
	AnnounceColor          = 0x607d8b

	FadeFmt = "⏳ The %s faded away."

	RevealTitleFmt       = "%s %s %s Revealed!"
	RevealDescriptionFmt = "**%s** unveiled **%s**"
	RevealFooter         = "gg 🧊"
)

// Bag and stats views
const (
	BagView            = "bag"
	BagTitleFmt        = "%s's %s"
	BagLineFmt         = "**%d.** %s **%s** — *%s* <t:%d:R>"
	BagFooterFmt       = "Items %d-%d / %d"
	BagEmptyFmt        = "%s has no %s yet."
	BagColor           = 0x5865f2
	MsgNotPageOwner    = "Only the requester can use these buttons."
	StatsTitleFmt      = "%s's %s Stats"
	StatsTotalField    = "Total reveals"
	StatsEmptyFmt      = "%s hasn't revealed any %s yet."
	HelpTitleFmt       = "%s Drops"
	HelpColor          = 0x3498db
	HelpDescriptionFmt = "Every so often a mystery %[1]s appears in the drop channel. " +
		"The first person to type `%[2]s` or use `/%[3]s reveal` unveils it and keeps it.\n\n" +
		"Rarities, from most to least common: %[4]s."
	HelpFooterFmt = "Use `/%s bag` to see what you've collected."
)

// Log messages
const (
	LogMsgRecordFailed = "Failed to record reward"
	LogMsgRevealFailed = "Failed to send reveal"
	LogMsgRevealed     = "Drop revealed"
)

// Error messages
const (
	ErrMsgRecordReward = "failed to record reward: %w"
)
