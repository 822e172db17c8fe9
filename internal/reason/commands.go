package reason

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/ledger"
	"github.com/osse101/dropgame/internal/store"
)

// Show hands the requester a reason on the spot. It has no controls and is
// not recorded.
func (s *Service) Show(ctx context.Context, req drop.ClaimRequest) error {
	return req.Respond(ctx, drop.Message{Embed: &drop.Embed{
		Title:       ShowTitle,
		Description: s.pickText(""),
		Color:       s.pickColor(),
	}})
}

// SetChannel points drops at channelID and starts the schedule.
func (s *Service) SetChannel(ctx context.Context, guildID, channelID string) (string, error) {
	return drop.ChannelSetReply(Title, channelID, s.game.SetChannel(ctx, guildID, channelID))
}

// ClearChannel turns drops off for the guild.
func (s *Service) ClearChannel(ctx context.Context, guildID string) (string, error) {
	return drop.ChannelClearedReply(Title, s.game.ClearChannel(ctx, guildID))
}

// SetTestMode switches the one-minute cadence on or off.
func (s *Service) SetTestMode(ctx context.Context, guildID string, enabled bool, channelID string) (string, error) {
	return drop.TestModeReply(s.game.SetTestMode(ctx, guildID, enabled, channelID))
}

// DropNow forces a drop and describes what happened.
func (s *Service) DropNow(ctx context.Context, guildID string) (string, error) {
	_, err := s.game.DropNow(ctx, guildID)
	return drop.DropNowReply(err)
}

// Wallet renders one page of target's kept reasons for viewer.
func (s *Service) Wallet(ctx context.Context, guildID string, viewer, target drop.Member, page int) (drop.Message, error) {
	entries, err := s.ledger.Wallet(ctx, store.Member(s.kind, guildID, target.ID))
	if err != nil {
		return drop.Message{}, err
	}
	if len(entries) == 0 {
		return drop.Text(fmt.Sprintf(WalletEmptyFmt, target.Mention())), nil
	}

	p := ledger.Paginate(entries, page, domain.HistoryPageSize)
	lines := make([]string, 0, len(p.Items))
	for i, e := range p.Items {
		lines = append(lines, fmt.Sprintf(WalletLineFmt, p.Start+i, e.Text, e.Timestamp))
	}

	ref := drop.PageRef{Game: s.kind, View: WalletView, Owner: viewer.ID, Target: target.ID, Index: p.Index}
	return drop.Message{
		Embed: &drop.Embed{
			Title:       fmt.Sprintf(WalletTitleFmt, target.DisplayName),
			Description: strings.Join(lines, "\n"),
			Color:       WalletColor,
			Footer:      fmt.Sprintf(WalletFooterFmt, p.Start, p.End, p.Total),
		},
		Buttons: drop.PagerButtons(ref, p.HasPrev(), p.HasNext()),
	}, nil
}

// TurnPage answers a wallet pager press from its owner.
func (s *Service) TurnPage(ctx context.Context, guildID string, presser drop.Member, ref drop.PageRef, target drop.Member) (drop.Message, error) {
	if presser.ID != ref.Owner {
		return drop.Private(MsgNotPageOwner), nil
	}
	return s.Wallet(ctx, guildID, presser, target, ref.Index)
}

// Stats renders target's points, streak and achievements.
func (s *Service) Stats(ctx context.Context, guildID string, target drop.Member) (drop.Message, error) {
	p, err := s.ledger.Profile(ctx, store.Member(s.kind, guildID, target.ID))
	if err != nil {
		return drop.Message{}, err
	}

	earned := ledger.Achievements(p)
	badges := StatsNoAchievements
	if len(earned) > 0 {
		names := make([]string, 0, len(earned))
		for _, a := range earned {
			names = append(names, a.Emoji+" "+a.Name)
		}
		badges = strings.Join(names, "\n")
	}

	return drop.Message{Embed: &drop.Embed{
		Title: fmt.Sprintf(StatsTitleFmt, target.DisplayName),
		Color: StatsColor,
		Fields: []drop.Field{
			{Name: "Points", Value: drop.Count(p.Points), Inline: true},
			{Name: "Streak", Value: drop.Count(p.Streak), Inline: true},
			{Name: "Claims", Value: drop.Count(p.TotalClaims), Inline: true},
			{Name: "Wins", Value: drop.Count(p.TotalWins), Inline: true},
			{Name: "Losses", Value: drop.Count(p.TotalLosses), Inline: true},
			{Name: "Steals", Value: drop.Count(p.SuccessfulSteals), Inline: true},
			{Name: "Achievements", Value: badges},
		},
	}}, nil
}

// Leaderboard shows the guild's best-rated reasons and richest members.
func (s *Service) Leaderboard(ctx context.Context, guildID string) (drop.Message, error) {
	best, err := s.ledger.BestReasons(ctx, store.Guild(s.kind, guildID), domain.LeaderboardLimit)
	if err != nil {
		return drop.Message{}, err
	}
	if len(best) == 0 {
		return drop.Text(LeaderboardEmpty), nil
	}
	rich, err := s.ledger.Richest(ctx, s.kind, guildID, domain.LeaderboardLimit)
	if err != nil {
		return drop.Message{}, err
	}

	lines := make([]string, 0, len(best))
	for i, b := range best {
		lines = append(lines, fmt.Sprintf("**%d.** %s (%d)", i+1, b.Text, b.Votes))
	}
	fields := []drop.Field{{Name: LeaderboardBest, Value: strings.Join(lines, "\n")}}
	if len(rich) > 0 {
		rows := make([]string, 0, len(rich))
		for i, r := range rich {
			rows = append(rows, fmt.Sprintf("**%d.** %s %s pts", i+1, drop.Member{ID: r.UserID}.Mention(), drop.Count(r.Points)))
		}
		fields = append(fields, drop.Field{Name: LeaderboardRichest, Value: strings.Join(rows, "\n")})
	}
	return drop.Message{Embed: &drop.Embed{
		Title:  LeaderboardTitle,
		Color:  LeaderboardColor,
		Fields: fields,
	}}, nil
}

// Help explains the game.
func (s *Service) Help() drop.Message {
	return drop.Message{Embed: &drop.Embed{
		Title:       HelpTitle,
		Description: HelpDescription,
		Color:       HelpColor,
		Footer:      HelpFooter,
	}}
}
