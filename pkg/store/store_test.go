package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dex-swap/pkg/types"
)

func TestOrderStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOrderFileName)

	s, err := NewOrderStore(path)
	require.NoError(t, err)

	rec := OrderRecord{
		Offerer:      common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		OrderHash:    common.HexToHash("0xaaaa"),
		ChainID:      1,
		Expiry:       1700001234,
		EncodedOrder: "0xdeadbeef",
		OrderType:    types.OrderTypeDutchAuction,
	}
	require.NoError(t, s.Add(rec))

	reopened, err := NewOrderStore(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Count())

	got, ok := reopened.Get(rec.OrderHash)
	require.True(t, ok)
	assert.Equal(t, rec.Offerer, got.Offerer)
	assert.Equal(t, rec.EncodedOrder, got.EncodedOrder)
	assert.Equal(t, types.OrderTypeDutchAuction, got.OrderType)
	assert.False(t, got.AddedAt.IsZero())
}

func TestOrderStoreRejectsDuplicateHash(t *testing.T) {
	s, err := NewOrderStore("")
	require.NoError(t, err)

	rec := OrderRecord{OrderHash: common.HexToHash("0xbbbb")}
	require.NoError(t, s.Add(rec))
	assert.Error(t, s.Add(rec))
	assert.Equal(t, 1, s.Count())
}

func TestOrderStoreMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.json")
	s, err := NewOrderStore(path)
	require.NoError(t, err)
	assert.Zero(t, s.Count())
}

func TestOrderStoreMemoryOnly(t *testing.T) {
	s, err := NewOrderStore("")
	require.NoError(t, err)
	require.NoError(t, s.Add(OrderRecord{OrderHash: common.HexToHash("0xcccc")}))
	assert.Len(t, s.List(), 1)
}

func TestTransactionStoreDefaultsToPending(t *testing.T) {
	s, err := NewTransactionStore("")
	require.NoError(t, err)

	hash := common.HexToHash("0x01")
	require.NoError(t, s.Add(TransactionRecord{Hash: hash}))

	rec, ok := s.Get(hash)
	require.True(t, ok)
	assert.Equal(t, TxPending, rec.Status)
}

func TestTransactionStoreUpdateStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultTransactionFileName)
	s, err := NewTransactionStore(path)
	require.NoError(t, err)

	hash := common.HexToHash("0x02")
	deadline := uint64(1700009999)
	info := types.TransactionInfo{
		InputCurrencyID:  "1:native",
		OutputCurrencyID: "1:0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Direction:        types.ExactInput,
		ExactInput: &types.ExactInputInfo{
			AmountIn:          decimal.RequireFromString("1000000000000000000"),
			ExpectedAmountOut: decimal.RequireFromString("3800000000"),
			MinimumAmountOut:  decimal.RequireFromString("3781094527"),
		},
	}
	require.NoError(t, s.Add(TransactionRecord{Hash: hash, Info: info, Deadline: &deadline}))
	require.NoError(t, s.UpdateStatus(hash, TxConfirmed))

	reopened, err := NewTransactionStore(path)
	require.NoError(t, err)

	rec, ok := reopened.Get(hash)
	require.True(t, ok)
	assert.Equal(t, TxConfirmed, rec.Status)
	assert.Equal(t, "1:native", rec.Info.InputCurrencyID)
	require.NotNil(t, rec.Info.ExactInput)
	assert.True(t, rec.Info.ExactInput.MinimumAmountOut.Equal(decimal.RequireFromString("3781094527")))
	require.NotNil(t, rec.Deadline)
	assert.Equal(t, deadline, *rec.Deadline)
}

func TestTransactionStoreUpdateUnknownHash(t *testing.T) {
	s, err := NewTransactionStore("")
	require.NoError(t, err)
	assert.Error(t, s.UpdateStatus(common.HexToHash("0x03"), TxConfirmed))
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", DefaultOrderFileName)
	s, err := NewOrderStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(OrderRecord{OrderHash: common.HexToHash("0xdddd")}))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
