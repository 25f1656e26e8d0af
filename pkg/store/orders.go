package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"dex-swap/pkg/types"
)

const DefaultOrderFileName = ".dex-swap-orders.json"

// OrderRecord is the persisted outcome of an off-chain order submission.
type OrderRecord struct {
	Offerer      common.Address  `json:"offerer"`
	OrderHash    common.Hash     `json:"order_hash"`
	ChainID      uint64          `json:"chain_id"`
	Expiry       uint64          `json:"expiry"`
	EncodedOrder string          `json:"encoded_order"`
	OrderType    types.OrderType `json:"order_type"`
	AddedAt      time.Time       `json:"added_at"`
}

// OrderStore persists off-chain order records. An empty file path keeps the
// store in memory only.
type OrderStore struct {
	filePath string
	mu       sync.RWMutex
	orders   map[common.Hash]*OrderRecord
}

type orderFile struct {
	Orders map[common.Hash]*OrderRecord `json:"orders"`
}

// NewOrderStore opens (or creates) the order store at filePath.
func NewOrderStore(filePath string) (*OrderStore, error) {
	s := &OrderStore{
		filePath: filePath,
		orders:   make(map[common.Hash]*OrderRecord),
	}

	if filePath != "" {
		var f orderFile
		if err := loadJSON(filePath, &f); err != nil {
			return nil, fmt.Errorf("failed to load orders: %w", err)
		}
		if f.Orders != nil {
			s.orders = f.Orders
		}
	}

	return s, nil
}

// Add appends an order record. The order hash must be new.
func (s *OrderStore) Add(rec OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[rec.OrderHash]; exists {
		return fmt.Errorf("order %s already recorded", rec.OrderHash.Hex())
	}
	if rec.AddedAt.IsZero() {
		rec.AddedAt = time.Now()
	}
	s.orders[rec.OrderHash] = &rec

	return s.saveLocked()
}

// Get retrieves an order record by hash.
func (s *OrderStore) Get(hash common.Hash) (OrderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.orders[hash]
	if !ok {
		return OrderRecord{}, false
	}
	return *rec, true
}

// List returns all order records.
func (s *OrderStore) List() []OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]OrderRecord, 0, len(s.orders))
	for _, rec := range s.orders {
		out = append(out, *rec)
	}
	return out
}

// Count returns the number of recorded orders.
func (s *OrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *OrderStore) saveLocked() error {
	if s.filePath == "" {
		return nil
	}
	return saveJSON(s.filePath, orderFile{Orders: s.orders})
}
