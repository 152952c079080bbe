package pool

import (
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"swapCore/internal/model"
)

// Store is the addressable table of pool records keyed by derived identity.
type Store interface {
	GetPool(id common.Hash) (model.Pool, bool, error)
	PutPool(p model.Pool) error
	ListPools() ([]model.Pool, error)
}

// MemoryStore keeps pool records in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	pools map[common.Hash]model.Pool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pools: make(map[common.Hash]model.Pool)}
}

func (s *MemoryStore) GetPool(id common.Hash) (model.Pool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pools[id]
	return p, ok, nil
}

func (s *MemoryStore) PutPool(p model.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[p.ID] = p
	return nil
}

func (s *MemoryStore) ListPools() ([]model.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Pool, 0, len(s.pools))
	for _, p := range s.pools {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}
