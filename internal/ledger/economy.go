package ledger

import (
	"context"
	"fmt"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/logger"
	"github.com/osse101/dropgame/internal/metrics"
	"github.com/osse101/dropgame/internal/store"
)

// ClaimAward is what a claim earned.
type ClaimAward struct {
	Points  int
	Daily   bool
	Profile domain.Profile
}

// Profile returns the member's economy profile.
func (l *Ledger) Profile(ctx context.Context, scope store.Scope) (domain.Profile, error) {
	p, err := store.GetOr(ctx, l.st, scope, domain.KeyProfile, domain.Profile{})
	if err != nil {
		return p, fmt.Errorf(ErrMsgLoadProfile, scope, err)
	}
	return p, nil
}

// updateProfile applies fn to the stored profile under the member's lock.
func (l *Ledger) updateProfile(ctx context.Context, scope store.Scope, fn func(*domain.Profile)) (domain.Profile, error) {
	var out domain.Profile
	err := l.locks.Do(scope.String(), func() error {
		p, err := l.Profile(ctx, scope)
		if err != nil {
			return err
		}
		fn(&p)
		if err := l.st.Set(ctx, scope, domain.KeyProfile, p); err != nil {
			return fmt.Errorf(ErrMsgSaveProfile, scope, err)
		}
		out = p
		return nil
	})
	return out, err
}

// AwardClaim pays out a claim, adding the daily bonus when the last one is at
// least a day old.
func (l *Ledger) AwardClaim(ctx context.Context, scope store.Scope) (ClaimAward, error) {
	now := l.clock.Now()
	award := ClaimAward{Points: domain.ClaimPoints}

	p, err := l.updateProfile(ctx, scope, func(p *domain.Profile) {
		award.Points = domain.ClaimPoints
		award.Daily = false
		if p.LastDailyClaim == 0 || now.Unix()-p.LastDailyClaim >= int64(domain.DailyBonusWindow.Seconds()) {
			award.Points += domain.DailyBonusPoints
			award.Daily = true
			p.LastDailyClaim = now.Unix()
		}
		p.Points += award.Points
		p.TotalClaims++
	})
	if err != nil {
		return ClaimAward{}, err
	}
	award.Profile = p

	metrics.PointsAwarded.Add(float64(award.Points))
	logger.FromContext(ctx).Info(LogMsgClaimAwarded,
		"guild_id", scope.GuildID, "user_id", scope.UserID, "points", award.Points, "daily", award.Daily)
	return award, nil
}

// AwardRating pays out a win or loss verdict. A win extends the streak, a
// loss resets it.
func (l *Ledger) AwardRating(ctx context.Context, scope store.Scope, rating domain.Rating) (domain.Profile, int, error) {
	var points int
	switch rating {
	case domain.RatingWin:
		points = domain.WinPoints
	case domain.RatingLoss:
		points = domain.LossPoints
	default:
		return domain.Profile{}, 0, fmt.Errorf("%w: "+ErrMsgInvalidRating, domain.ErrInvalidInput, rating)
	}

	p, err := l.updateProfile(ctx, scope, func(p *domain.Profile) {
		p.Points += points
		if rating == domain.RatingWin {
			p.Streak++
			p.TotalWins++
		} else {
			p.Streak = 0
			p.TotalLosses++
		}
	})
	if err != nil {
		return domain.Profile{}, 0, err
	}

	metrics.PointsAwarded.Add(float64(points))
	logger.FromContext(ctx).Info(LogMsgRatingAwarded,
		"guild_id", scope.GuildID, "user_id", scope.UserID, "rating", string(rating), "points", points)
	return p, points, nil
}

// Transfer moves up to amount points from victim to thief, never taking more
// than the victim has. It moves nothing when the victim's balance is not
// positive.
func (l *Ledger) Transfer(ctx context.Context, thief, victim store.Scope, amount int) (int, error) {
	var moved int
	err := l.locks.DoAll([]string{thief.String(), victim.String()}, func() error {
		vp, err := l.Profile(ctx, victim)
		if err != nil {
			return err
		}
		if vp.Points <= 0 || amount <= 0 {
			return nil
		}
		tp, err := l.Profile(ctx, thief)
		if err != nil {
			return err
		}

		moved = min(amount, vp.Points)
		vp.Points -= moved
		tp.Points += moved
		tp.SuccessfulSteals++

		if err := l.st.Set(ctx, victim, domain.KeyProfile, vp); err != nil {
			return fmt.Errorf(ErrMsgSaveProfile, victim, err)
		}
		if err := l.st.Set(ctx, thief, domain.KeyProfile, tp); err != nil {
			return fmt.Errorf(ErrMsgSaveProfile, thief, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if moved > 0 {
		logger.FromContext(ctx).Info(LogMsgPointsTransfer,
			"guild_id", thief.GuildID, "from", victim.UserID, "to", thief.UserID, "points", moved)
	}
	return moved, nil
}

// AddToWallet keeps a claimed reason, dropping the oldest beyond the cap.
func (l *Ledger) AddToWallet(ctx context.Context, scope store.Scope, text string) error {
	return l.locks.Do(scope.String()+"/wallet", func() error {
		wallet, err := store.GetOr(ctx, l.st, scope, domain.KeyWallet, []domain.WalletEntry(nil))
		if err != nil {
			return fmt.Errorf(ErrMsgLoadWallet, scope, err)
		}
		wallet = appendCapped(wallet, domain.WalletEntry{Text: text, Timestamp: l.clock.Now().Unix()}, domain.WalletCap)
		if err := l.st.Set(ctx, scope, domain.KeyWallet, wallet); err != nil {
			return fmt.Errorf(ErrMsgSaveWallet, scope, err)
		}
		return nil
	})
}

// Wallet returns the member's claimed reasons, newest first.
func (l *Ledger) Wallet(ctx context.Context, scope store.Scope) ([]domain.WalletEntry, error) {
	wallet, err := store.GetOr(ctx, l.st, scope, domain.KeyWallet, []domain.WalletEntry(nil))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadWallet, scope, err)
	}
	return newestFirst(wallet), nil
}
