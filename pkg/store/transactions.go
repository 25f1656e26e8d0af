package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"dex-swap/pkg/types"
)

const DefaultTransactionFileName = ".dex-swap-transactions.json"

// TxStatus is the lifecycle state of a recorded transaction. The store's
// own update path moves records forward; readers never mutate.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// TransactionRecord is the persisted outcome of an on-chain swap.
type TransactionRecord struct {
	Hash     common.Hash           `json:"hash"`
	Info     types.TransactionInfo `json:"info"`
	Deadline *uint64               `json:"deadline,omitempty"`
	Status   TxStatus              `json:"status"`
	AddedAt  time.Time             `json:"added_at"`
}

// TransactionStore persists on-chain swap records. An empty file path keeps
// the store in memory only.
type TransactionStore struct {
	filePath string
	mu       sync.RWMutex
	txs      map[common.Hash]*TransactionRecord
}

type transactionFile struct {
	Transactions map[common.Hash]*TransactionRecord `json:"transactions"`
}

// NewTransactionStore opens (or creates) the transaction store at filePath.
func NewTransactionStore(filePath string) (*TransactionStore, error) {
	s := &TransactionStore{
		filePath: filePath,
		txs:      make(map[common.Hash]*TransactionRecord),
	}

	if filePath != "" {
		var f transactionFile
		if err := loadJSON(filePath, &f); err != nil {
			return nil, fmt.Errorf("failed to load transactions: %w", err)
		}
		if f.Transactions != nil {
			s.txs = f.Transactions
		}
	}

	return s, nil
}

// Add appends a transaction record. New records start pending unless the
// caller set a status.
func (s *TransactionStore) Add(rec TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.txs[rec.Hash]; exists {
		return fmt.Errorf("transaction %s already recorded", rec.Hash.Hex())
	}
	if rec.Status == "" {
		rec.Status = TxPending
	}
	if rec.AddedAt.IsZero() {
		rec.AddedAt = time.Now()
	}
	s.txs[rec.Hash] = &rec

	return s.saveLocked()
}

// Get retrieves a transaction record by hash.
func (s *TransactionStore) Get(hash common.Hash) (TransactionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.txs[hash]
	if !ok {
		return TransactionRecord{}, false
	}
	return *rec, true
}

// UpdateStatus moves a recorded transaction to a new lifecycle state.
func (s *TransactionStore) UpdateStatus(hash common.Hash, status TxStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.txs[hash]
	if !ok {
		return fmt.Errorf("transaction %s not found", hash.Hex())
	}
	rec.Status = status

	return s.saveLocked()
}

// List returns all transaction records.
func (s *TransactionStore) List() []TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TransactionRecord, 0, len(s.txs))
	for _, rec := range s.txs {
		out = append(out, *rec)
	}
	return out
}

// Count returns the number of recorded transactions.
func (s *TransactionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txs)
}

func (s *TransactionStore) saveLocked() error {
	if s.filePath == "" {
		return nil
	}
	return saveJSON(s.filePath, transactionFile{Transactions: s.txs})
}
