package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/osse101/dropgame/internal/domain"
)

type memKey struct {
	scope Scope
	key   string
}

// Memory is an in-process Store. Values round-trip through JSON so callers
// see the same semantics as the database backend.
type Memory struct {
	mu   sync.RWMutex
	data map[memKey][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[memKey][]byte)}
}

func (m *Memory) Get(ctx context.Context, scope Scope, key string, dst any) (bool, error) {
	m.mu.RLock()
	b, ok := m.data[memKey{scope, key}]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf(ErrMsgDecodeValue, scope, key, err)
	}
	return true, nil
}

func (m *Memory) Set(ctx context.Context, scope Scope, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeValue, scope, key, err)
	}
	m.mu.Lock()
	m.data[memKey{scope, key}] = b
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, scope Scope, key string) error {
	m.mu.Lock()
	delete(m.data, memKey{scope, key})
	m.mu.Unlock()
	return nil
}

func (m *Memory) Members(ctx context.Context, game domain.Game, guildID, key string) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]json.RawMessage)
	for k, v := range m.data {
		if k.key != key || k.scope.Game != game || k.scope.GuildID != guildID || k.scope.IsGuild() {
			continue
		}
		out[k.scope.UserID] = append(json.RawMessage(nil), v...)
	}
	return out, nil
}
