package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"dex-swap/pkg/chains"
	"dex-swap/pkg/parser"
	"dex-swap/pkg/provider"
	"dex-swap/pkg/strategy"
	"dex-swap/pkg/swap"
	"dex-swap/pkg/types"
)

var (
	swapChain      string
	expectedAmount string
	slippagePct    float64
	useOrder       bool
	exactOut       bool
	noConfirm      bool
	inputAddress   string
	outputAddress  string
	inputDecimals  int32
	outputDecimals int32
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <input-token> to <output-token>",
	Short: "Execute a token swap",
	Long: `Execute a token swap on an EVM chain, either directly through the
on-chain router or as a signed off-chain order.

The quoted counter-amount comes from your quote source and is passed with
--expect; the slippage tolerance bounds how far execution may deviate from
it.

Examples:
  # Router swap, exact input
  dex-swap swap 1 ETH to USDC --expect 3800 --chain mainnet

  # Off-chain order
  dex-swap swap 100 USDC to WETH --expect 0.026 --chain base --order

  # Exact output: receive exactly 500 USDC, spend at most ~expect + slippage
  dex-swap swap 500 USDC to ETH --expect 0.131 --exact-out

  # Skip confirmation
  dex-swap swap 1 ETH to USDC --expect 3800 --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVar(&swapChain, "chain", "mainnet", "Chain to execute on")
	swapCmd.Flags().StringVar(&expectedAmount, "expect", "", "Quoted counter-amount (REQUIRED)")
	swapCmd.Flags().Float64Var(&slippagePct, "slippage", 0.5, "Slippage tolerance in percent")
	swapCmd.Flags().BoolVar(&useOrder, "order", false, "Submit as an off-chain order instead of a router transaction")
	swapCmd.Flags().BoolVar(&exactOut, "exact-out", false, "Treat <amount> as the exact output amount")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
	swapCmd.Flags().StringVar(&inputAddress, "input-address", "", "Input token address (overrides the known-token table)")
	swapCmd.Flags().StringVar(&outputAddress, "output-address", "", "Output token address (overrides the known-token table)")
	swapCmd.Flags().Int32Var(&inputDecimals, "input-decimals", 18, "Input token decimals (with --input-address)")
	swapCmd.Flags().Int32Var(&outputDecimals, "output-decimals", 18, "Output token decimals (with --output-address)")
}

// localWallet is the CLI's account provider: a key-derived address that is
// always connected and follows chain switches immediately, since a local
// signer serves any chain its RPC client reaches.
type localWallet struct {
	addr    common.Address
	chainID uint64
	target  uint64
}

func (w *localWallet) Address() (common.Address, bool) { return w.addr, true }
func (w *localWallet) ChainID() (uint64, bool)         { return w.chainID, true }
func (w *localWallet) Connected() bool                 { return true }
func (w *localWallet) Resolve() (uint64, bool)         { return w.target, w.target != 0 }

func (w *localWallet) Switch(_ context.Context, chainID uint64) (uint64, error) {
	w.chainID = chainID
	return chainID, nil
}

func runSwap(cmd *cobra.Command, args []string) {
	commandStr := strings.Join(args, " ")
	swapReq, err := parser.ParseSwapCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if expectedAmount == "" {
		printError(fmt.Errorf("--expect is required: pass the quoted counter-amount"))
		os.Exit(1)
	}

	cfg, registry, conf, err := bootstrap()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if cfg.PrivateKey == "" {
		printError(fmt.Errorf("private key not configured. Set DEX_SWAP_PRIVATE_KEY or add private_key to your config file"))
		os.Exit(1)
	}
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		printError(fmt.Errorf("invalid private key: %w", err))
		os.Exit(1)
	}

	chain, err := chainByName(registry, swapChain)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	trade, err := buildTrade(chain, swapReq)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Dial the chain through the failover transport and adapt a provider
	chainClient, ok := conf.Client(chain.ID)
	if !ok {
		printError(fmt.Errorf("no client configured for chain %s", chain.Name))
		os.Exit(1)
	}
	rpcClient, err := chainClient.Dial(cmd.Context())
	if err != nil {
		printError(fmt.Errorf("failed to connect to chain %s: %w", chain.Name, err))
		os.Exit(1)
	}
	handle := &provider.Client{Chain: &chain, RPC: rpcClient}
	defer handle.Close()
	prov := provider.Adapt(handle, nil)

	orders, txs, err := openStores(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	wallet := &localWallet{
		addr:    crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID: chain.ID,
		target:  chain.ID,
	}

	router, err := strategy.NewRouter(prov.Eth(), cfg.PrivateKey, common.HexToAddress(cfg.RouterAddress), chain.ID)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	orderClient := strategy.NewOrderClient(cfg.OrderAPIURL, chain.ID, wallet.addr, nil)

	dispatcher := swap.NewDispatcher(wallet, wallet, registry, orderClient.Execute, router.Execute, orders, txs)

	slippage := decimal.NewFromFloat(slippagePct).Div(decimal.New(100, 0))

	if !jsonOutput {
		displayTrade(trade, slippage, chain.Name)
	}
	if !noConfirm && !jsonOutput {
		if !confirmSwap() {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Executing swap..."
		s.Start()
	}

	result, err := dispatcher.Execute(cmd.Context(), swap.Params{
		Trade:    trade,
		Slippage: slippage,
	})
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	displayResult(result, jsonOutput)
}

// buildTrade assembles a Trade from the parsed command and flags. Amounts
// scale to raw smallest units here; everything downstream works in raw
// units.
func buildTrade(chain chains.Chain, swapReq *parser.SwapCommand) (*types.Trade, error) {
	input, err := resolveToken(chain, swapReq.InputToken, inputAddress, inputDecimals)
	if err != nil {
		return nil, err
	}
	output, err := resolveToken(chain, swapReq.OutputToken, outputAddress, outputDecimals)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(swapReq.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	expected, err := decimal.NewFromString(expectedAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid --expect amount: %w", err)
	}

	kind := types.TradeOnChain
	if useOrder {
		kind = types.TradeOffChainOrder
	}

	trade := &types.Trade{
		Kind:   kind,
		Input:  input,
		Output: output,
	}

	if exactOut {
		// <amount> is the exact output; --expect quotes the input
		trade.Direction = types.ExactOutput
		trade.OutputAmount = toRawUnits(amount, output.Decimals)
		trade.InputAmount = toRawUnits(expected, input.Decimals)
	} else {
		trade.Direction = types.ExactInput
		trade.InputAmount = toRawUnits(amount, input.Decimals)
		trade.OutputAmount = toRawUnits(expected, output.Decimals)
	}

	return trade, nil
}

func toRawUnits(amount decimal.Decimal, decimals int32) decimal.Decimal {
	return amount.Shift(decimals).RoundDown(0)
}

func displayTrade(trade *types.Trade, slippage decimal.Decimal, chainName string) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP")
	fmt.Println(strings.Repeat("=", 60))

	path := "on-chain router"
	if trade.Kind == types.TradeOffChainOrder {
		path = "off-chain order"
	}

	fmt.Printf("\n  Chain:       %s\n", chainName)
	fmt.Printf("  Path:        %s\n", color.YellowString(path))
	fmt.Printf("  Input:       %s %s (raw)\n", trade.InputAmount, trade.Input.Symbol)
	fmt.Printf("  Output:      %s %s (raw)\n", trade.OutputAmount, trade.Output.Symbol)
	if trade.Direction == types.ExactInput {
		fmt.Printf("  Min out:     %s (slippage %s)\n", trade.MinimumAmountOut(slippage), slippage)
	} else {
		fmt.Printf("  Max in:      %s (slippage %s)\n", trade.MaximumAmountIn(slippage), slippage)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
}

func displayResult(result types.SwapResult, jsonOutput bool) {
	switch r := result.(type) {
	case *types.OrderResult:
		if jsonOutput {
			out := map[string]interface{}{
				"type":       "order",
				"version":    int(r.Version),
				"order_hash": r.OrderHash.Hex(),
				"expiry":     r.Expiry,
			}
			jsonData, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(jsonData))
			return
		}
		printSuccess("Order submitted!")
		fmt.Printf("  Order Hash: %s\n", color.CyanString(r.OrderHash.Hex()))
		fmt.Printf("  Expires:    %s\n", time.Unix(int64(r.Expiry), 0).Format("2006-01-02 15:04:05"))
	case *types.TxResult:
		if jsonOutput {
			out := map[string]interface{}{
				"type":    "transaction",
				"tx_hash": r.Hash.Hex(),
			}
			if r.Deadline != nil {
				out["deadline"] = *r.Deadline
			}
			jsonData, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(jsonData))
			return
		}
		printSuccess("Transaction submitted!")
		fmt.Printf("  Tx Hash: %s\n", color.CyanString(r.Hash.Hex()))
		fmt.Println("\nYou can track the swap using:")
		color.Cyan("  dex-swap status %s\n", r.Hash.Hex())
	}
}

func confirmSwap() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nProceed with swap? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
