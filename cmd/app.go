package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"dex-swap/config"
	"dex-swap/pkg/chains"
	"dex-swap/pkg/connector"
	"dex-swap/pkg/log"
	"dex-swap/pkg/store"
	"dex-swap/pkg/types"
)

// bootstrap loads config, initializes logging, and builds the process-wide
// registry and connector configuration. Safe to call from every command;
// the connector config is built once.
func bootstrap() (*config.Config, *chains.Registry, *connector.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := log.Bootstrap(cfg.LogLevel, cfg.Debug); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	registry := chains.NewRegistry(cfg.RPCOverrides)

	conf := connector.Init(registry, connector.ConnectorOptions{
		IncludeMock:            cfg.IsTest(),
		NonInteractive:         os.Getenv("CI") != "",
		WalletConnectProjectID: cfg.WalletConnectProjectID,
		AppName:                cfg.AppName,
		AppLogoURL:             cfg.AppLogoURL,
	})

	return cfg, registry, conf, nil
}

// openStores opens the order and transaction record files under the
// configured store path, defaulting to the home directory.
func openStores(cfg *config.Config) (*store.OrderStore, *store.TransactionStore, error) {
	dir := cfg.StorePath
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = home
	}

	orders, err := store.NewOrderStore(filepath.Join(dir, store.DefaultOrderFileName))
	if err != nil {
		return nil, nil, err
	}
	txs, err := store.NewTransactionStore(filepath.Join(dir, store.DefaultTransactionFileName))
	if err != nil {
		return nil, nil, err
	}
	return orders, txs, nil
}

// chainByName resolves a chain by its registry name.
func chainByName(registry *chains.Registry, name string) (chains.Chain, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, id := range registry.Supported() {
		c, _ := registry.Get(id)
		if c.Name == name {
			return c, nil
		}
	}
	return chains.Chain{}, fmt.Errorf("unknown chain %q (see: dex-swap chains)", name)
}

// Well-known token addresses per chain. The swap command falls back to
// these when no explicit token address flags are given.
var knownTokens = map[uint64]map[string]types.Currency{
	1: {
		"ETH":  {ChainID: 1, Symbol: "ETH", Decimals: 18, Native: true},
		"WETH": {ChainID: 1, Symbol: "WETH", Decimals: 18, Address: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")},
		"USDC": {ChainID: 1, Symbol: "USDC", Decimals: 6, Address: common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")},
		"DAI":  {ChainID: 1, Symbol: "DAI", Decimals: 18, Address: common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")},
		"WBTC": {ChainID: 1, Symbol: "WBTC", Decimals: 8, Address: common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599")},
	},
	8453: {
		"ETH":  {ChainID: 8453, Symbol: "ETH", Decimals: 18, Native: true},
		"WETH": {ChainID: 8453, Symbol: "WETH", Decimals: 18, Address: common.HexToAddress("0x4200000000000000000000000000000000000006")},
		"USDC": {ChainID: 8453, Symbol: "USDC", Decimals: 6, Address: common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")},
	},
}

// resolveToken finds a token by symbol on a chain, honoring an explicit
// address override.
func resolveToken(chain chains.Chain, symbol, addressOverride string, decimals int32) (types.Currency, error) {
	if addressOverride != "" {
		if !common.IsHexAddress(addressOverride) {
			return types.Currency{}, fmt.Errorf("invalid token address: %s", addressOverride)
		}
		return types.Currency{
			ChainID:  chain.ID,
			Address:  common.HexToAddress(addressOverride),
			Symbol:   strings.ToUpper(symbol),
			Decimals: decimals,
		}, nil
	}

	tokens, ok := knownTokens[chain.ID]
	if !ok {
		return types.Currency{}, fmt.Errorf("no known tokens for chain %s; pass the token address explicitly", chain.Name)
	}
	token, ok := tokens[strings.ToUpper(symbol)]
	if !ok {
		return types.Currency{}, fmt.Errorf("token %q not known on chain %s; pass the token address explicitly", symbol, chain.Name)
	}
	return token, nil
}
