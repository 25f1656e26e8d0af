package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/pkg/connector"
)

var showConnectors bool

var chainsCmd = &cobra.Command{
	Use:     "chains",
	Aliases: []string{"list-chains", "ls"},
	Short:   "List supported chains and their RPC endpoint order",
	Long: `List the chains this build supports, with the resolved RPC endpoint
order each chain's client fails over across.

Examples:
  dex-swap chains
  dex-swap chains --connectors
  dex-swap chains --json`,
	Run: runChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)

	chainsCmd.Flags().BoolVar(&showConnectors, "connectors", false, "Also list the wallet connector set")
}

func runChains(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	_, registry, conf, err := bootstrap()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		out := make(map[string]interface{})
		for _, id := range registry.Supported() {
			chain, _ := registry.Get(id)
			out[chain.Name] = map[string]interface{}{
				"chain_id":  chain.ID,
				"testnet":   chain.Testnet,
				"endpoints": connector.OrderedURLs(chain.RPC),
			}
		}
		if showConnectors {
			names := make([]string, 0, len(conf.Connectors))
			for _, c := range conf.Connectors {
				names = append(names, c.Name)
			}
			out["connectors"] = names
		}
		jsonData, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                     SUPPORTED CHAINS")
	fmt.Println(strings.Repeat("=", 70))

	for _, id := range registry.Supported() {
		chain, _ := registry.Get(id)
		label := color.YellowString(chain.Name)
		if chain.Testnet {
			label += color.MagentaString(" (testnet)")
		}
		fmt.Printf("\n  %s (chain id %d)\n", label, chain.ID)
		for i, url := range connector.OrderedURLs(chain.RPC) {
			fmt.Printf("    %d. %s\n", i+1, url)
		}
	}

	if showConnectors {
		fmt.Println("\n" + strings.Repeat("-", 70))
		color.Green("  WALLET CONNECTORS")
		for i, c := range conf.Connectors {
			fmt.Printf("    %d. %s (%s)\n", i+1, c.Name, c.Kind)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}
