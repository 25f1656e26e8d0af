package types

import "github.com/shopspring/decimal"

// ExactInputInfo carries the derived amounts recorded for an exact-input
// swap: the exact amount spent, the quoted output, and the slippage-bounded
// floor the router enforces.
type ExactInputInfo struct {
	AmountIn          decimal.Decimal `json:"amount_in"`
	ExpectedAmountOut decimal.Decimal `json:"expected_amount_out"`
	MinimumAmountOut  decimal.Decimal `json:"minimum_amount_out"`
}

// ExactOutputInfo is the exact-output counterpart: the exact amount
// received, the quoted input, and the slippage-bounded ceiling.
type ExactOutputInfo struct {
	AmountOut        decimal.Decimal `json:"amount_out"`
	ExpectedAmountIn decimal.Decimal `json:"expected_amount_in"`
	MaximumAmountIn  decimal.Decimal `json:"maximum_amount_in"`
}

// TransactionInfo summarizes a swap for persistence. Exactly one of
// ExactInput / ExactOutput is set, matching Direction. Constructed fresh per
// swap and never mutated afterwards.
type TransactionInfo struct {
	InputCurrencyID  string           `json:"input_currency_id"`
	OutputCurrencyID string           `json:"output_currency_id"`
	IsOrderFill      bool             `json:"is_order_fill"`
	Direction        Direction        `json:"direction"`
	ExactInput       *ExactInputInfo  `json:"exact_input,omitempty"`
	ExactOutput      *ExactOutputInfo `json:"exact_output,omitempty"`
}

// NewTransactionInfo derives the persistence record for a trade at the given
// slippage tolerance, branching on trade direction.
func NewTransactionInfo(t *Trade, slippage decimal.Decimal) TransactionInfo {
	info := TransactionInfo{
		InputCurrencyID:  t.Input.ID(),
		OutputCurrencyID: t.Output.ID(),
		IsOrderFill:      t.Kind == TradeOffChainOrder,
		Direction:        t.Direction,
	}

	if t.Direction == ExactInput {
		info.ExactInput = &ExactInputInfo{
			AmountIn:          t.InputAmount,
			ExpectedAmountOut: t.OutputAmount,
			MinimumAmountOut:  t.MinimumAmountOut(slippage),
		}
	} else {
		info.ExactOutput = &ExactOutputInfo{
			AmountOut:        t.OutputAmount,
			ExpectedAmountIn: t.InputAmount,
			MaximumAmountIn:  t.MaximumAmountIn(slippage),
		}
	}

	return info
}
