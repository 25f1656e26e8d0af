package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TradeKind tags how a trade is fulfilled: directly against the on-chain
// router, or as a signed order matched off-chain by a filler.
type TradeKind string

const (
	TradeOnChain       TradeKind = "on_chain"
	TradeOffChainOrder TradeKind = "off_chain_order"
)

// Direction fixes which side of the trade is exact. The other side floats
// within the slippage bound.
type Direction string

const (
	ExactInput  Direction = "exact_input"
	ExactOutput Direction = "exact_output"
)

// OrderType classifies an off-chain order for record keeping.
type OrderType string

const (
	OrderTypeDutchAuction OrderType = "dutch_auction"
	OrderTypeLimit        OrderType = "limit"
	OrderTypePriority     OrderType = "priority"
)

// Currency identifies a token on a specific chain. The zero Address with
// Native set means the chain's gas token.
type Currency struct {
	ChainID  uint64         `json:"chain_id"`
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals int32          `json:"decimals"`
	Native   bool           `json:"native,omitempty"`
}

// ID returns a stable identifier for the currency, usable as a store key.
func (c Currency) ID() string {
	if c.Native {
		return fmt.Sprintf("%d:native", c.ChainID)
	}
	return fmt.Sprintf("%d:%s", c.ChainID, c.Address.Hex())
}

// FeeKind selects the shape of a trade's fee descriptor.
type FeeKind string

const (
	FeePercent FeeKind = "percent"
	FeeFlat    FeeKind = "flat"
)

// Fee describes the fee attached to a trade. Percent is a fraction of the
// output (0.0025 = 25 bps); Amount is a flat charge in output raw units.
// Exactly one of the two is meaningful, selected by Kind.
type Fee struct {
	Kind      FeeKind         `json:"kind"`
	Percent   decimal.Decimal `json:"percent,omitempty"`
	Amount    decimal.Decimal `json:"amount,omitempty"`
	Recipient common.Address  `json:"recipient,omitempty"`
}

// Trade describes a quoted swap as handed over by the routing collaborator.
// A Trade is immutable once constructed.
//
// InputAmount and OutputAmount are raw smallest-unit amounts. For an
// exact-input trade InputAmount is exact and OutputAmount is the quoted
// expectation; for exact-output the roles are reversed.
type Trade struct {
	Kind         TradeKind
	Direction    Direction
	Input        Currency
	Output       Currency
	InputAmount  decimal.Decimal
	OutputAmount decimal.Decimal
	Fee          *Fee

	// OrderType is only meaningful for off-chain order trades. Empty means
	// the quote did not classify the order.
	OrderType OrderType
}

// MinimumAmountOut bounds the floating output of an exact-input trade for a
// given slippage tolerance (0.005 = 0.5%). Rounds down to a whole raw unit.
func (t *Trade) MinimumAmountOut(slippage decimal.Decimal) decimal.Decimal {
	one := decimal.New(1, 0)
	return t.OutputAmount.Div(one.Add(slippage)).RoundDown(0)
}

// MaximumAmountIn bounds the floating input of an exact-output trade for a
// given slippage tolerance. Rounds up to a whole raw unit.
func (t *Trade) MaximumAmountIn(slippage decimal.Decimal) decimal.Decimal {
	one := decimal.New(1, 0)
	return t.InputAmount.Mul(one.Add(slippage)).RoundUp(0)
}
