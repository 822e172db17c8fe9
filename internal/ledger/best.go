package ledger

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/store"
)

// VoteBestReason adds a vote for text to the guild's top list. The list stays
// sorted by votes, earlier entries first among equals, and is cut to the cap.
func (l *Ledger) VoteBestReason(ctx context.Context, guild store.Scope, text string) ([]domain.BestReason, error) {
	guild = guild.GuildScope()
	var out []domain.BestReason
	err := l.locks.Do(guild.String()+"/best", func() error {
		list, err := store.GetOr(ctx, l.st, guild, domain.KeyBestReasons, []domain.BestReason(nil))
		if err != nil {
			return fmt.Errorf(ErrMsgLoadBestReasons, guild, err)
		}

		idx := slices.IndexFunc(list, func(b domain.BestReason) bool { return b.Text == text })
		if idx >= 0 {
			list[idx].Votes++
		} else {
			list = append(list, domain.BestReason{Text: text, Votes: 1, FirstSeen: l.clock.Now().Unix()})
		}

		slices.SortStableFunc(list, func(a, b domain.BestReason) int {
			return cmp.Compare(b.Votes, a.Votes)
		})
		if len(list) > domain.BestReasonsCap {
			list = list[:domain.BestReasonsCap]
		}

		if err := l.st.Set(ctx, guild, domain.KeyBestReasons, list); err != nil {
			return fmt.Errorf(ErrMsgSaveBestReasons, guild, err)
		}
		out = list
		return nil
	})
	return out, err
}

// BestReasons returns up to limit entries of the guild's top list.
func (l *Ledger) BestReasons(ctx context.Context, guild store.Scope, limit int) ([]domain.BestReason, error) {
	guild = guild.GuildScope()
	list, err := store.GetOr(ctx, l.st, guild, domain.KeyBestReasons, []domain.BestReason(nil))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadBestReasons, guild, err)
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Standing is one row of the points leaderboard.
type Standing struct {
	UserID string
	Points int
	Streak int
}

// Richest ranks the guild's members by points, highest first, ties by user id.
func (l *Ledger) Richest(ctx context.Context, game domain.Game, guildID string, limit int) ([]Standing, error) {
	raw, err := l.st.Members(ctx, game, guildID, domain.KeyProfile)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListProfiles, guildID, err)
	}

	out := make([]Standing, 0, len(raw))
	for userID, data := range raw {
		var p domain.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			logger.FromContext(ctx).Warn(LogMsgBadProfileEntry, "guild_id", guildID, "user_id", userID, "error", err)
			continue
		}
		if p.Points <= 0 {
			continue
		}
		out = append(out, Standing{UserID: userID, Points: p.Points, Streak: p.Streak})
	}

	slices.SortFunc(out, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
