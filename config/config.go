package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Environment string // "production" or "test"
	LogLevel    string
	Debug       bool

	// Wallet signing key (hex, optional 0x prefix). Read-only commands work
	// without it.
	PrivateKey string

	// Off-chain order protocol API
	OrderAPIURL string

	// On-chain router contract address
	RouterAddress string

	// Connector parameters
	WalletConnectProjectID string
	AppName                string
	AppLogoURL             string

	// Per-chain RPC URL overrides, keyed by chain name. Prepended to the
	// chain's interface endpoint category.
	RPCOverrides map[string][]string

	// Directory for the order/transaction record files
	StorePath string
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".dex-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("environment", "production")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("order_api_url", "https://api.dex-swap.example/v2")
	viper.SetDefault("app_name", "dex-swap")

	// Read from environment variables
	viper.SetEnvPrefix("DEX_SWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Environment:            viper.GetString("environment"),
		LogLevel:               viper.GetString("log_level"),
		Debug:                  viper.GetBool("debug"),
		PrivateKey:             viper.GetString("private_key"),
		OrderAPIURL:            viper.GetString("order_api_url"),
		RouterAddress:          viper.GetString("router_address"),
		WalletConnectProjectID: viper.GetString("walletconnect_project_id"),
		AppName:                viper.GetString("app_name"),
		AppLogoURL:             viper.GetString("app_logo_url"),
		RPCOverrides:           viper.GetStringMapStringSlice("rpc_overrides"),
		StorePath:              viper.GetString("store_path"),
	}

	if cfg.Environment != "production" && cfg.Environment != "test" {
		return nil, fmt.Errorf("invalid environment %q: must be 'production' or 'test'", cfg.Environment)
	}

	globalConfig = cfg
	return cfg, nil
}

// IsTest reports whether the process runs against test networks and should
// include the mock connector.
func (c *Config) IsTest() bool {
	return c.Environment == "test"
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
