package types

import (
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// OrderProtocolVersion distinguishes the two off-chain order protocol
// revisions a filler can settle against.
type OrderProtocolVersion int

const (
	OrderProtocolV1 OrderProtocolVersion = 1
	OrderProtocolV2 OrderProtocolVersion = 2
)

// SwapResult is the outcome of an execution strategy. The concrete type is
// the tag: *OrderResult for off-chain order outcomes, *TxResult for on-chain
// outcomes. Code consuming a SwapResult must type-switch over both.
type SwapResult interface {
	swapResult()
}

// OrderResult is the response payload of a submitted off-chain order.
type OrderResult struct {
	Version      OrderProtocolVersion
	OrderHash    common.Hash
	EncodedOrder string
	Expiry       uint64
}

func (*OrderResult) swapResult() {}

// TxResult is the response payload of a directly submitted transaction.
// Deadline, when set, is the unix time after which the router rejects the
// swap.
type TxResult struct {
	Tx       *ethtypes.Transaction
	Hash     common.Hash
	Deadline *uint64
}

func (*TxResult) swapResult() {}
