package reason

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/store"
)

func (s *Service) optedOut(ctx context.Context, guildID string) ([]string, error) {
	list, err := store.GetOr(ctx, s.st, store.Guild(s.kind, guildID), domain.KeyOptOut, []string(nil))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadOptOut, guildID, err)
	}
	return list, nil
}

// OptOut keeps userID from being picked by scheduled drops. It reports false
// when the member had already opted out.
func (s *Service) OptOut(ctx context.Context, guildID, userID string) (bool, error) {
	var added bool
	err := s.locks.Do(guildID+"/optout", func() error {
		list, err := s.optedOut(ctx, guildID)
		if err != nil {
			return err
		}
		if slices.Contains(list, userID) {
			return nil
		}
		if err := s.st.Set(ctx, store.Guild(s.kind, guildID), domain.KeyOptOut, append(list, userID)); err != nil {
			return fmt.Errorf(ErrMsgSaveOptOut, guildID, err)
		}
		added = true
		return nil
	})
	return added, err
}
