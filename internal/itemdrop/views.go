package itemdrop

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/ledger"
	"github.com/osse101/dropgame/internal/store"
)

// Bag renders one page of target's history for viewer. Only viewer can turn
// its pages.
func (s *Service) Bag(ctx context.Context, guildID string, viewer, target drop.Member, page int) (drop.Message, error) {
	items, err := s.ledger.History(ctx, store.Member(s.variant.Game, guildID, target.ID))
	if err != nil {
		return drop.Message{}, err
	}
	if len(items) == 0 {
		return drop.Text(fmt.Sprintf(BagEmptyFmt, target.Mention(), strings.ToLower(s.variant.Plural))), nil
	}

	p := ledger.Paginate(items, page, domain.HistoryPageSize)
	lines := make([]string, 0, len(p.Items))
	for i, it := range p.Items {
		lines = append(lines, fmt.Sprintf(BagLineFmt, p.Start+i, it.Emoji, it.Name, it.Tier, it.Timestamp))
	}

	ref := drop.PageRef{Game: s.variant.Game, View: BagView, Owner: viewer.ID, Target: target.ID, Index: p.Index}
	return drop.Message{
		Embed: &drop.Embed{
			Title:       fmt.Sprintf(BagTitleFmt, target.DisplayName, s.variant.Plural),
			Description: strings.Join(lines, "\n"),
			Color:       BagColor,
			Footer:      fmt.Sprintf(BagFooterFmt, p.Start, p.End, p.Total),
		},
		Buttons: drop.PagerButtons(ref, p.HasPrev(), p.HasNext()),
	}, nil
}

// TurnPage answers a pager button press. Anyone but the page's owner is
// turned away privately.
func (s *Service) TurnPage(ctx context.Context, guildID string, presser drop.Member, ref drop.PageRef, target drop.Member) (drop.Message, error) {
	if presser.ID != ref.Owner {
		return drop.Private(MsgNotPageOwner), nil
	}
	return s.Bag(ctx, guildID, presser, target, ref.Index)
}

// Stats renders target's per-rarity reveal counts.
func (s *Service) Stats(ctx context.Context, guildID string, target drop.Member) (drop.Message, error) {
	stats, err := s.ledger.Stats(ctx, store.Member(s.variant.Game, guildID, target.ID))
	if err != nil {
		return drop.Message{}, err
	}
	if stats.TotalClaims == 0 {
		return drop.Text(fmt.Sprintf(StatsEmptyFmt, target.Mention(), strings.ToLower(s.variant.Plural))), nil
	}

	fields := []drop.Field{{Name: StatsTotalField, Value: drop.Count(stats.TotalClaims)}}
	for _, t := range domain.Tiers {
		fields = append(fields, drop.Field{
			Name:   fmt.Sprintf("%s %s", t.Emoji(), t),
			Value:  drop.Count(stats.ByTier[t]),
			Inline: true,
		})
	}
	return drop.Message{Embed: &drop.Embed{
		Title:  fmt.Sprintf(StatsTitleFmt, target.DisplayName, s.variant.Title),
		Color:  BagColor,
		Fields: fields,
	}}, nil
}

// Help explains the game.
func (s *Service) Help() drop.Message {
	names := make([]string, 0, len(domain.Tiers))
	for _, t := range domain.Tiers {
		names = append(names, t.Emoji()+" "+t.String())
	}
	return drop.Message{Embed: &drop.Embed{
		Title:       fmt.Sprintf(HelpTitleFmt, s.variant.Title),
		Description: fmt.Sprintf(HelpDescriptionFmt, s.variant.Noun, s.variant.Noun, s.variant.Command, strings.Join(names, ", ")),
		Color:       HelpColor,
		Footer:      fmt.Sprintf(HelpFooterFmt, s.variant.Command),
	}}
}
