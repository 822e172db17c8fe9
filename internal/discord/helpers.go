package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/osse101/dropgame/internal/drop"
)

const adminPermissions = discordgo.PermissionAdministrator | discordgo.PermissionManageGuild

// isAdmin reports whether the invoking member may change drop settings.
func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&adminPermissions != 0
}

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

// subcommand returns the invoked subcommand and its options.
func subcommand(i *discordgo.InteractionCreate) (string, optionMap) {
	opts := optionMap{}
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return "", opts
	}
	sub := data.Options[0]
	if sub.Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", opts
	}
	for _, o := range sub.Options {
		opts[o.Name] = o
	}
	return sub.Name, opts
}

func (o optionMap) channelID(name string) string {
	opt, ok := o[name]
	if !ok {
		return ""
	}
	return opt.ChannelValue(nil).ID
}

func (o optionMap) boolean(name string, fallback bool) bool {
	opt, ok := o[name]
	if !ok {
		return fallback
	}
	return opt.BoolValue()
}

// member resolves a user option, falling back to the invoker.
func (o optionMap) member(i *discordgo.InteractionCreate, name string) drop.Member {
	opt, ok := o[name]
	if !ok {
		return memberOf(i.Member, i.User)
	}
	id := opt.UserValue(nil).ID
	resolved := i.ApplicationCommandData().Resolved
	if resolved == nil {
		return drop.Member{ID: id, DisplayName: id}
	}
	return memberOf(resolved.Members[id], resolved.Users[id])
}

// guildMember looks up a member for views opened from a button, where no
// resolved data is attached.
func guildMember(s *discordgo.Session, guildID, userID string) drop.Member {
	if m, err := s.State.Member(guildID, userID); err == nil {
		return memberOf(m, nil)
	}
	if m, err := s.GuildMember(guildID, userID); err == nil {
		return memberOf(m, nil)
	}
	return drop.Member{ID: userID, DisplayName: userID}
}

func option(name, desc string, typ discordgo.ApplicationCommandOptionType, required bool) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{Type: typ, Name: name, Description: desc, Required: required}
	if typ == discordgo.ApplicationCommandOptionChannel {
		opt.ChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}
	}
	return opt
}

func sub(name, desc string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: desc,
		Options:     opts,
	}
}
