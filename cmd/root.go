package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dex-swap",
	Short: "A CLI for executing DEX swaps via on-chain router or off-chain orders",
	Long: `dex-swap executes token swaps on EVM chains, routing each trade either
directly through the on-chain swap router or through the off-chain order
protocol, and tracks the outcome locally.

Examples:
  dex-swap swap 1 ETH to USDC --expect 3800 --chain mainnet
  dex-swap swap 100 USDC to WETH --expect 0.026 --chain base --order
  dex-swap status 0x1234...abcd
  dex-swap chains`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
