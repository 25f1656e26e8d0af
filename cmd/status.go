package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/pkg/provider"
	"dex-swap/pkg/store"
)

var (
	watchStatus   bool
	watchInterval int
	statusChain   string
)

var statusCmd = &cobra.Command{
	Use:   "status <tx-hash>",
	Short: "Check the status of a recorded swap transaction",
	Long: `Check the lifecycle status of a swap transaction recorded by a previous
swap invocation. The chain is queried for the receipt and the local record
updated when the transaction has landed.

Off-chain orders have no transaction status; track them with your order
protocol explorer instead.

Examples:
  dex-swap status 0x1234...abcd
  dex-swap status 0x1234...abcd --watch
  dex-swap status 0x1234...abcd --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates continuously")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
	statusCmd.Flags().StringVar(&statusChain, "chain", "mainnet", "Chain the transaction was sent on")
}

func runStatus(cmd *cobra.Command, args []string) {
	if !strings.HasPrefix(args[0], "0x") || len(args[0]) != 66 {
		printError(fmt.Errorf("invalid transaction hash: %s", args[0]))
		os.Exit(1)
	}
	txHash := common.HexToHash(args[0])
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, registry, conf, err := bootstrap()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	_, txs, err := openStores(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	rec, ok := txs.Get(txHash)
	if !ok {
		printError(fmt.Errorf("no recorded swap with hash %s", txHash.Hex()))
		os.Exit(1)
	}

	chain, err := chainByName(registry, statusChain)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	chainClient, _ := conf.Client(chain.ID)
	rpcClient, err := chainClient.Dial(cmd.Context())
	if err != nil {
		printError(fmt.Errorf("failed to connect to chain %s: %w", chain.Name, err))
		os.Exit(1)
	}
	handle := &provider.Client{Chain: &chain, RPC: rpcClient}
	defer handle.Close()
	prov := provider.Adapt(handle, nil)

	if watchStatus {
		if jsonOutput {
			fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
			os.Exit(1)
		}
		fmt.Printf("\nWatching transaction %s\n", color.CyanString(txHash.Hex()))
		fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n\n", watchInterval)

		ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
		defer ticker.Stop()

		// Check immediately first
		rec = refreshStatus(cmd.Context(), prov, txs, rec)
		displayTxRecord(rec, false)

		for range ticker.C {
			rec = refreshStatus(cmd.Context(), prov, txs, rec)
			displayTxRecord(rec, false)
			if rec.Status != store.TxPending {
				return
			}
		}
		return
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking transaction status..."
		s.Start()
	}
	rec = refreshStatus(cmd.Context(), prov, txs, rec)
	if !jsonOutput {
		s.Stop()
	}

	displayTxRecord(rec, jsonOutput)
}

// refreshStatus moves a pending record forward from the chain's receipt.
// Receipt lookup failures leave the record untouched; the next check tries
// again.
func refreshStatus(ctx context.Context, prov *provider.Provider, txs *store.TransactionStore, rec store.TransactionRecord) store.TransactionRecord {
	if rec.Status != store.TxPending || prov == nil || prov.Eth() == nil {
		return rec
	}

	receipt, err := prov.Eth().TransactionReceipt(ctx, rec.Hash)
	if err != nil || receipt == nil {
		return rec
	}

	status := store.TxConfirmed
	if receipt.Status == ethtypes.ReceiptStatusFailed {
		status = store.TxFailed
	}
	if err := txs.UpdateStatus(rec.Hash, status); err == nil {
		rec.Status = status
	}
	return rec
}

func displayTxRecord(rec store.TransactionRecord, jsonOutput bool) {
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(rec, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        SWAP STATUS")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Tx Hash:    %s\n", color.CyanString(rec.Hash.Hex()))
	fmt.Printf("  Status:     %s\n", coloredTxStatus(rec.Status))
	fmt.Printf("  Input:      %s\n", rec.Info.InputCurrencyID)
	fmt.Printf("  Output:     %s\n", rec.Info.OutputCurrencyID)
	fmt.Printf("  Recorded:   %s\n", rec.AddedAt.Format("2006-01-02 15:04:05"))

	if info := rec.Info.ExactInput; info != nil {
		fmt.Printf("  Amount In:  %s (expected out %s, min %s)\n",
			info.AmountIn, info.ExpectedAmountOut, info.MinimumAmountOut)
	}
	if info := rec.Info.ExactOutput; info != nil {
		fmt.Printf("  Amount Out: %s (expected in %s, max %s)\n",
			info.AmountOut, info.ExpectedAmountIn, info.MaximumAmountIn)
	}
	if rec.Deadline != nil {
		fmt.Printf("  Deadline:   %s\n", time.Unix(int64(*rec.Deadline), 0).Format("2006-01-02 15:04:05"))
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func coloredTxStatus(status store.TxStatus) string {
	switch status {
	case store.TxConfirmed:
		return color.GreenString(strings.ToUpper(string(status)))
	case store.TxPending:
		return color.YellowString(strings.ToUpper(string(status)))
	case store.TxFailed:
		return color.RedString(strings.ToUpper(string(status)))
	default:
		return string(status)
	}
}
