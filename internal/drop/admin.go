package drop

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/dropgame/internal/domain"
)

// SetChannel points the guild's drops at channelID and starts its schedule.
// Setting the same channel again changes nothing.
func (g *Game) SetChannel(ctx context.Context, guildID, channelID string) error {
	if !g.sink.ChannelExists(ctx, guildID, channelID) {
		return domain.ErrChannelMissing
	}
	if _, err := g.settings.Update(ctx, guildID, func(s *domain.GuildDropSchedule) {
		s.ChannelID = channelID
	}); err != nil {
		return err
	}
	return g.Activate(ctx, guildID)
}

// ClearChannel turns the guild's drops off, abandoning any outstanding drop.
func (g *Game) ClearChannel(ctx context.Context, guildID string) error {
	if _, err := g.settings.Update(ctx, guildID, func(s *domain.GuildDropSchedule) {
		s.ChannelID = ""
		s.TestMode = false
		s.TestChannelID = ""
	}); err != nil {
		return err
	}
	g.Deactivate(ctx, guildID)
	return nil
}

// SetTestMode switches the one-minute cadence. channelID, when set, receives
// drops while test mode is on.
func (g *Game) SetTestMode(ctx context.Context, guildID string, enabled bool, channelID string) (domain.GuildDropSchedule, error) {
	if enabled && channelID != "" && !g.sink.ChannelExists(ctx, guildID, channelID) {
		return domain.GuildDropSchedule{}, domain.ErrChannelMissing
	}
	sched, err := g.settings.Update(ctx, guildID, func(s *domain.GuildDropSchedule) {
		s.TestMode = enabled
		s.TestChannelID = ""
		if enabled {
			s.TestChannelID = channelID
		}
	})
	if err != nil {
		return sched, err
	}
	return sched, g.Reschedule(ctx, guildID)
}

// ChannelSetReply answers a channel change for the game titled title.
func ChannelSetReply(title, channelID string, err error) (string, error) {
	switch {
	case err == nil:
		return fmt.Sprintf(MsgFmtChannelSet, title, channelID), nil
	case errors.Is(err, domain.ErrChannelMissing):
		return MsgChannelUnavailable, nil
	default:
		return "", err
	}
}

// ChannelClearedReply answers a channel clear.
func ChannelClearedReply(title string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgFmtChannelCleared, title), nil
}

// TestModeReply answers a test mode change.
func TestModeReply(sched domain.GuildDropSchedule, err error) (string, error) {
	switch {
	case errors.Is(err, domain.ErrChannelMissing):
		return MsgChannelUnavailable, nil
	case err != nil:
		return "", err
	case !sched.TestMode:
		return MsgTestModeOff, nil
	case !sched.Configured():
		return MsgTestModeNoChannel, nil
	default:
		return fmt.Sprintf(MsgFmtTestModeOn, sched.EffectiveChannel()), nil
	}
}

// DropNowReply answers a forced drop.
func DropNowReply(err error) (string, error) {
	switch {
	case err == nil:
		return MsgDebugSent, nil
	case errors.Is(err, domain.ErrNotConfigured):
		return MsgDebugNoChannel, nil
	case errors.Is(err, domain.ErrChannelMissing):
		return MsgDebugMissing, nil
	case errors.Is(err, domain.ErrDropActive):
		return MsgDebugActive, nil
	case errors.Is(err, domain.ErrNoMembers):
		return MsgDebugNoMembers, nil
	default:
		return "", err
	}
}
