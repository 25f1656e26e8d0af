package strategy

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"dex-swap/pkg/swap"
	"dex-swap/pkg/types"
)

// Swap router ABI, exact-input and exact-output entry points
const routerABI = `[
{"inputs":[{"name":"tokenIn","type":"address"},{"name":"tokenOut","type":"address"},{"name":"amountIn","type":"uint256"},{"name":"amountOutMinimum","type":"uint256"},{"name":"recipient","type":"address"},{"name":"deadline","type":"uint256"}],"name":"swapExactInput","outputs":[{"name":"amountOut","type":"uint256"}],"stateMutability":"payable","type":"function"},
{"inputs":[{"name":"tokenIn","type":"address"},{"name":"tokenOut","type":"address"},{"name":"amountOut","type":"uint256"},{"name":"amountInMaximum","type":"uint256"},{"name":"recipient","type":"address"},{"name":"deadline","type":"uint256"}],"name":"swapExactOutput","outputs":[{"name":"amountIn","type":"uint256"}],"stateMutability":"payable","type":"function"}
]`

const defaultDeadlineOffset = 30 * time.Minute

// Router executes trades directly against the on-chain swap router. It
// builds, signs and submits the router transaction and reports the outcome
// as a TxResult.
type Router struct {
	client         *ethclient.Client
	privateKey     *ecdsa.PrivateKey
	router         common.Address
	chainID        *big.Int
	deadlineOffset time.Duration
}

// NewRouter creates a router strategy bound to one chain.
func NewRouter(client *ethclient.Client, privateKeyHex string, routerAddr common.Address, chainID uint64) (*Router, error) {
	if privateKeyHex == "" {
		return nil, fmt.Errorf("private key not configured")
	}
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &Router{
		client:         client,
		privateKey:     privateKey,
		router:         routerAddr,
		chainID:        new(big.Int).SetUint64(chainID),
		deadlineOffset: defaultDeadlineOffset,
	}, nil
}

// Execute satisfies swap.Strategy for on-chain trades.
func (r *Router) Execute(ctx context.Context, p swap.Params) (types.SwapResult, error) {
	trade := p.Trade

	publicKey, ok := r.privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("failed to get public key")
	}
	from := crypto.PubkeyToAddress(*publicKey)

	nonce, err := r.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := r.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	deadline := uint64(time.Now().Add(r.deadlineOffset).Unix())

	data, value, err := r.packSwap(trade, p, from, deadline)
	if err != nil {
		return nil, err
	}

	gasLimit := uint64(250000)
	msg := ethereum.CallMsg{
		From:  from,
		To:    &r.router,
		Value: value,
		Data:  data,
	}
	if estimated, err := r.client.EstimateGas(ctx, msg); err == nil {
		gasLimit = estimated * 120 / 100 // 20% buffer
	}

	tx := ethtypes.NewTransaction(nonce, r.router, value, gasLimit, gasPrice, data)

	signedTx, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(r.chainID), r.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := r.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	return &types.TxResult{
		Tx:       signedTx,
		Hash:     signedTx.Hash(),
		Deadline: &deadline,
	}, nil
}

// packSwap encodes the router calldata for the trade, branching on
// direction for the slippage-bounded amount. Native-input trades carry the
// input as transaction value as well.
func (r *Router) packSwap(trade *types.Trade, p swap.Params, recipient common.Address, deadline uint64) ([]byte, *big.Int, error) {
	parsedABI, err := abi.JSON(strings.NewReader(routerABI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse router ABI: %w", err)
	}

	deadlineBig := new(big.Int).SetUint64(deadline)

	var data []byte
	var spend *big.Int
	if trade.Direction == types.ExactInput {
		amountIn := trade.InputAmount.BigInt()
		minOut := trade.MinimumAmountOut(p.Slippage).BigInt()
		spend = amountIn
		data, err = parsedABI.Pack("swapExactInput",
			trade.Input.Address, trade.Output.Address, amountIn, minOut, recipient, deadlineBig)
	} else {
		amountOut := trade.OutputAmount.BigInt()
		maxIn := trade.MaximumAmountIn(p.Slippage).BigInt()
		spend = maxIn
		data, err = parsedABI.Pack("swapExactOutput",
			trade.Input.Address, trade.Output.Address, amountOut, maxIn, recipient, deadlineBig)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to pack swap data: %w", err)
	}

	value := big.NewInt(0)
	if trade.Input.Native {
		value = spend
	}
	return data, value, nil
}
