package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/logger"
)

// Directory lists guild members through the REST API. Member lists are
// cached per guild for a few minutes; permissions are checked fresh.
type Directory struct {
	session *discordgo.Session
	members *expirable.LRU[string, []*discordgo.Member]
}

// NewDirectory wraps session.
func NewDirectory(session *discordgo.Session) *Directory {
	return &Directory{
		session: session,
		members: expirable.NewLRU[string, []*discordgo.Member](MembersCacheCap, nil, MembersCacheTTL),
	}
}

// EligibleMembers lists non-bot members who can view channelID.
func (d *Directory) EligibleMembers(ctx context.Context, guildID, channelID string) ([]drop.Member, error) {
	all, err := d.list(ctx, guildID)
	if err != nil {
		return nil, err
	}
	out := make([]drop.Member, 0, len(all))
	for _, m := range all {
		if m.User == nil || m.User.Bot {
			continue
		}
		if !d.canView(ctx, m.User.ID, channelID) {
			continue
		}
		out = append(out, memberOf(m, nil))
	}
	return out, nil
}

// Forget drops the cached member list of guildID.
func (d *Directory) Forget(guildID string) {
	d.members.Remove(guildID)
}

func (d *Directory) list(ctx context.Context, guildID string) ([]*discordgo.Member, error) {
	if cached, ok := d.members.Get(guildID); ok {
		return cached, nil
	}
	var all []*discordgo.Member
	after := ""
	for {
		page, err := d.session.GuildMembers(guildID, after, MembersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf(ErrMsgListMembers, guildID, err)
		}
		all = append(all, page...)
		if len(page) < MembersPageSize {
			break
		}
		after = page[len(page)-1].User.ID
	}
	d.members.Add(guildID, all)
	return all, nil
}

func (d *Directory) canView(ctx context.Context, userID, channelID string) bool {
	perms, err := d.session.State.UserChannelPermissions(userID, channelID)
	if err != nil {
		perms, err = d.session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgPermsFailed, "user_id", userID, "channel_id", channelID, "error", err)
			return false
		}
	}
	return perms&discordgo.PermissionViewChannel != 0
}
