package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// SwapCommand is the parsed form of a CLI swap invocation.
type SwapCommand struct {
	Amount      string
	InputToken  string
	OutputToken string
}

// ParseSwapCommand parses a natural language swap command
// Examples:
//   - "swap 1 ETH to USDC"
//   - "1.5 WETH to DAI"
//   - "100 USDC to WBTC"
func ParseSwapCommand(command string) (*SwapCommand, error) {
	// Normalize the command
	command = strings.TrimSpace(strings.ToUpper(command))

	// Remove the word "SWAP" if present at the beginning
	command = strings.TrimPrefix(command, "SWAP ")

	// Pattern: <amount> <input_token> TO <output_token>
	pattern := regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z0-9]+)\s+TO\s+([A-Z0-9]+)$`)

	matches := pattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: 'swap <amount> <token> to <token>' (e.g., 'swap 1 ETH to USDC')")
	}

	return &SwapCommand{
		Amount:      matches[1],
		InputToken:  matches[2],
		OutputToken: matches[3],
	}, nil
}

// ValidateSwapCommand validates that a swap command has all required fields
func ValidateSwapCommand(cmd *SwapCommand) error {
	if cmd.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if cmd.InputToken == "" {
		return fmt.Errorf("input token is required")
	}
	if cmd.OutputToken == "" {
		return fmt.Errorf("output token is required")
	}
	return nil
}

// NormalizeTokenSymbol normalizes token symbols to standard format
func NormalizeTokenSymbol(symbol string) string {
	// Convert to uppercase for consistency
	symbol = strings.TrimSpace(strings.ToUpper(symbol))

	// Wrapped aliases collapse to the canonical symbol
	aliases := map[string]string{
		"WETH":   "ETH",
		"WBTC":   "BTC",
		"WMATIC": "MATIC",
	}

	if normalized, exists := aliases[symbol]; exists {
		return normalized
	}

	return symbol
}
