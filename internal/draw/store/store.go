// Package store keeps one draw machine per browser session in a bounded LRU.
package store

import (
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/louisbranch/luckydraw/internal/draw/flow"
)

// DefaultSize bounds the number of live sessions when none is configured.
const DefaultSize = 10000

// Store maps session ids to draw machines. Evicted sessions lose their
// result; a draw pending on an evicted machine is discarded.
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache
	opts  []flow.Option
}

// New builds a store holding at most size sessions. Machines are created
// with opts.
func New(size int, opts ...flow.Option) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.NewWithEvict(size, func(_ interface{}, value interface{}) {
		if machine, ok := value.(*flow.Machine); ok {
			machine.Reset()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &Store{cache: cache, opts: opts}, nil
}

// Machine returns the machine for sessionID, creating it on first use.
func (s *Store) Machine(sessionID string) (*flow.Machine, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if value, ok := s.cache.Get(sessionID); ok {
		return value.(*flow.Machine), nil
	}
	machine := flow.New(s.opts...)
	s.cache.Add(sessionID, machine)
	return machine, nil
}

// Peek returns the machine for sessionID without creating or promoting it.
func (s *Store) Peek(sessionID string) (*flow.Machine, bool) {
	value, ok := s.cache.Peek(strings.TrimSpace(sessionID))
	if !ok {
		return nil, false
	}
	return value.(*flow.Machine), true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
