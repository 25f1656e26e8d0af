package strategy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"dex-swap/pkg/swap"
	"dex-swap/pkg/types"
)

// OrderClient submits signed orders to the off-chain order protocol API and
// reports the outcome as an OrderResult.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
	chainID    uint64
	offerer    common.Address
}

// NewOrderClient creates an order strategy for one chain. httpClient may be
// nil; submissions then use a client with a 30s timeout.
func NewOrderClient(baseURL string, chainID uint64, offerer common.Address, httpClient *http.Client) *OrderClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &OrderClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		chainID:    chainID,
		offerer:    offerer,
	}
}

// orderEnvelope is the canonical order body the API hashes and fillers
// settle against.
type orderEnvelope struct {
	ChainID      uint64          `json:"chainId"`
	Offerer      common.Address  `json:"offerer"`
	InputToken   common.Address  `json:"inputToken"`
	OutputToken  common.Address  `json:"outputToken"`
	InputAmount  string          `json:"inputAmount"`
	OutputAmount string          `json:"outputAmount"`
	OrderType    types.OrderType `json:"orderType,omitempty"`
	Deadline     uint64          `json:"deadline"`
}

type submitOrderRequest struct {
	EncodedOrder string `json:"encodedOrder"`
	Signature    string `json:"signature"`
	ChainID      uint64 `json:"chainId"`
}

type submitOrderResponse struct {
	OrderHash string `json:"orderHash"`
	Expiry    uint64 `json:"expiry"`
	Version   int    `json:"version"`
}

// Execute satisfies swap.Strategy for off-chain order trades. The
// pre-authorization signature from the params signs the order; this client
// signs nothing itself.
func (c *OrderClient) Execute(ctx context.Context, p swap.Params) (types.SwapResult, error) {
	trade := p.Trade

	deadline := uint64(time.Now().Add(defaultDeadlineOffset).Unix())
	envelope := orderEnvelope{
		ChainID:      c.chainID,
		Offerer:      c.offerer,
		InputToken:   trade.Input.Address,
		OutputToken:  trade.Output.Address,
		InputAmount:  trade.InputAmount.String(),
		OutputAmount: trade.OutputAmount.String(),
		OrderType:    trade.OrderType,
		Deadline:     deadline,
	}

	orderBytes, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}
	encodedOrder := hexutil.Encode(orderBytes)

	reqBody, err := json.Marshal(submitOrderRequest{
		EncodedOrder: encodedOrder,
		Signature:    hexutil.Encode(p.PermitSignature),
		ChainID:      c.chainID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var submitResp submitOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	orderHash := common.HexToHash(submitResp.OrderHash)
	if orderHash == (common.Hash{}) {
		// Older API revisions omit the hash; it is deterministic over the
		// encoded order.
		orderHash = crypto.Keccak256Hash(orderBytes)
	}

	version := types.OrderProtocolV2
	if submitResp.Version == 1 {
		version = types.OrderProtocolV1
	}

	expiry := submitResp.Expiry
	if expiry == 0 {
		expiry = deadline
	}

	return &types.OrderResult{
		Version:      version,
		OrderHash:    orderHash,
		EncodedOrder: encodedOrder,
		Expiry:       expiry,
	}, nil
}

// apiError extracts the API's error message from a non-2xx response body.
func apiError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil || len(bodyBytes) == 0 {
		return fmt.Errorf("API returned status code %d", resp.StatusCode)
	}

	var errorResp map[string]interface{}
	if jsonErr := json.Unmarshal(bodyBytes, &errorResp); jsonErr == nil {
		if message, ok := errorResp["message"].(string); ok {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, message)
		}
		if errs, ok := errorResp["errors"]; ok {
			return fmt.Errorf("API error (status %d): %v", resp.StatusCode, errs)
		}
	}
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
}
