package swap

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dex-swap/pkg/chains"
	"dex-swap/pkg/log"
	"dex-swap/pkg/store"
	"dex-swap/pkg/types"
)

// AccountProvider exposes the wallet-session state the dispatcher validates
// against.
type AccountProvider interface {
	Address() (common.Address, bool)
	ChainID() (uint64, bool)
	Connected() bool
}

// ChainSwitcher resolves the target chain for a swap and switches the
// wallet to it. Switch makes a single attempt and returns the chain the
// wallet ended up on; the dispatcher does not retry.
type ChainSwitcher interface {
	Resolve() (uint64, bool)
	Switch(ctx context.Context, chainID uint64) (uint64, error)
}

// Strategy executes a trade and returns the tagged outcome. The two
// strategies (order protocol, on-chain router) are injected; the dispatcher
// only selects between them.
type Strategy func(ctx context.Context, p Params) (types.SwapResult, error)

// FiatValues annotate a swap with fiat-denominated amounts for telemetry.
// They never influence execution.
type FiatValues struct {
	InputUSD  decimal.Decimal
	OutputUSD decimal.Decimal
	FeeUSD    decimal.Decimal
}

// Params is the argument set for one swap execution.
type Params struct {
	Trade    *types.Trade
	Slippage decimal.Decimal
	Fiat     FiatValues

	// PermitSignature is an optional pre-authorization for the input token,
	// passed through to the strategy untouched.
	PermitSignature []byte
}

// OrderRecorder receives one record per successful off-chain order swap.
type OrderRecorder interface {
	Add(store.OrderRecord) error
}

// TransactionRecorder receives one record per successful on-chain swap and
// serves status lookups. The recorder's own update mechanism moves records
// through their lifecycle; the dispatcher only appends and reads.
type TransactionRecorder interface {
	Add(store.TransactionRecord) error
	Get(common.Hash) (store.TransactionRecord, bool)
}

// Dispatcher validates swap preconditions, hands execution to the strategy
// matching the trade kind, and records the outcome into exactly one of the
// two stores.
type Dispatcher struct {
	accounts AccountProvider
	switcher ChainSwitcher
	registry *chains.Registry

	orderStrategy Strategy
	routeStrategy Strategy

	orders OrderRecorder
	txs    TransactionRecorder
}

// NewDispatcher wires a dispatcher from its collaborators. All arguments
// are required.
func NewDispatcher(
	accounts AccountProvider,
	switcher ChainSwitcher,
	registry *chains.Registry,
	orderStrategy Strategy,
	routeStrategy Strategy,
	orders OrderRecorder,
	txs TransactionRecorder,
) *Dispatcher {
	return &Dispatcher{
		accounts:      accounts,
		switcher:      switcher,
		registry:      registry,
		orderStrategy: orderStrategy,
		routeStrategy: routeStrategy,
		orders:        orders,
		txs:           txs,
	}
}

// Execute runs one swap end to end: fail-fast validation, strategy
// execution, then result recording. No store write happens on any failure
// path; exactly one happens on success.
func (d *Dispatcher) Execute(ctx context.Context, p Params) (types.SwapResult, error) {
	if p.Trade == nil {
		return nil, ErrMissingTrade
	}

	addr, haveAddr := d.accounts.Address()
	if !d.accounts.Connected() || !haveAddr {
		return nil, ErrWalletNotConnected
	}

	target, ok := d.switcher.Resolve()
	if !ok {
		return nil, ErrMissingChain
	}

	family, known := d.registry.Family(target)
	if !known || family != chains.FamilyEVM {
		return nil, ErrUnsupportedChainFamily
	}

	if connected, ok := d.accounts.ChainID(); !ok || connected != target {
		switched, err := d.switcher.Switch(ctx, target)
		if err != nil || switched != target {
			return nil, ErrChainMismatch
		}
	}

	var strategy Strategy
	switch p.Trade.Kind {
	case types.TradeOffChainOrder:
		strategy = d.orderStrategy
	case types.TradeOnChain:
		strategy = d.routeStrategy
	default:
		return nil, fmt.Errorf("unknown trade kind %q", p.Trade.Kind)
	}

	// Strategy errors (signature rejection, submission failure) pass
	// through unmodified.
	result, err := strategy(ctx, p)
	if err != nil {
		return nil, err
	}

	info := types.NewTransactionInfo(p.Trade, p.Slippage)

	log.Debug("swap executed",
		zap.String("kind", string(p.Trade.Kind)),
		zap.String("input", info.InputCurrencyID),
		zap.String("output", info.OutputCurrencyID),
		zap.String("input_usd", p.Fiat.InputUSD.String()),
		zap.String("output_usd", p.Fiat.OutputUSD.String()),
		zap.String("fee_usd", p.Fiat.FeeUSD.String()),
	)

	switch r := result.(type) {
	case *types.OrderResult:
		orderType := p.Trade.OrderType
		if orderType == "" {
			// Quotes that predate order classification arrive untyped;
			// treated as the standard auction type.
			orderType = types.OrderTypeDutchAuction
		}
		rec := store.OrderRecord{
			Offerer:      addr,
			OrderHash:    r.OrderHash,
			ChainID:      target,
			Expiry:       r.Expiry,
			EncodedOrder: r.EncodedOrder,
			OrderType:    orderType,
		}
		if err := d.orders.Add(rec); err != nil {
			return nil, fmt.Errorf("failed to record order: %w", err)
		}
	case *types.TxResult:
		rec := store.TransactionRecord{
			Hash:     r.Hash,
			Info:     info,
			Deadline: r.Deadline,
		}
		if err := d.txs.Add(rec); err != nil {
			return nil, fmt.Errorf("failed to record transaction: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown swap result type %T", result)
	}

	return result, nil
}

// Status returns the lifecycle status of the transaction behind a swap
// result. Off-chain order results, nil results, and unknown hashes have no
// status. Pure read; refresh is the transaction recorder's concern.
func (d *Dispatcher) Status(result types.SwapResult) (store.TxStatus, bool) {
	tx, ok := result.(*types.TxResult)
	if !ok || tx == nil {
		return "", false
	}
	rec, ok := d.txs.Get(tx.Hash)
	if !ok {
		return "", false
	}
	return rec.Status, true
}
