package connector

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	"dex-swap/pkg/chains"
)

// PollInterval is the fixed block-polling interval every chain client uses.
const PollInterval = 12 * time.Second

// ChainClient is the per-chain runtime client configuration: the resolved
// endpoint order, batching policy, polling interval, and an HTTP client
// whose transport fails over across the endpoint list.
type ChainClient struct {
	Chain          chains.Chain
	URLs           []string
	BatchMulticall bool
	PollInterval   time.Duration
	HTTPClient     *http.Client
}

// Dial opens a JSON-RPC connection through the failover transport.
func (cc *ChainClient) Dial(ctx context.Context) (*rpc.Client, error) {
	if len(cc.URLs) == 0 {
		return nil, fmt.Errorf("no rpc endpoints for chain %s", cc.Chain.Name)
	}
	// The dial URL only seeds the scheme/host; the transport rewrites every
	// request to the endpoint list in order.
	return rpc.DialOptions(ctx, cc.URLs[0], rpc.WithHTTPClient(cc.HTTPClient))
}

// Config is the assembled wallet-connection configuration: the connector
// list plus a runtime client per supported chain.
type Config struct {
	Connectors []Connector
	Clients    map[uint64]*ChainClient
}

// Client returns the runtime client for a chain id.
func (c *Config) Client(chainID uint64) (*ChainClient, bool) {
	cc, ok := c.Clients[chainID]
	return cc, ok
}

// Build assembles the configuration for every chain in the registry. A nil
// hook falls back to DefaultResponseHook.
func Build(reg *chains.Registry, connectors []Connector, hook ResponseHook) *Config {
	if hook == nil {
		hook = DefaultResponseHook
	}

	clients := make(map[uint64]*ChainClient)
	for _, id := range reg.Supported() {
		chain, _ := reg.Get(id)
		urls := OrderedURLs(chain.RPC)
		clients[id] = &ChainClient{
			Chain:          chain,
			URLs:           urls,
			BatchMulticall: true,
			PollInterval:   PollInterval,
			HTTPClient: &http.Client{
				Transport: NewFailoverTransport(chain, urls, hook),
			},
		}
	}

	return &Config{
		Connectors: connectors,
		Clients:    clients,
	}
}

var (
	defaultConfig *Config
	initOnce      sync.Once
)

// Init builds the process-wide configuration exactly once and returns it.
// The environment decisions (mock connector, walletconnect omission) are
// made here, from arguments, not re-read later: there is no runtime
// reconfiguration path. Subsequent calls return the first result.
func Init(reg *chains.Registry, opts ConnectorOptions) *Config {
	initOnce.Do(func() {
		defaultConfig = Build(reg, BuildConnectors(opts), DefaultResponseHook)
	})
	return defaultConfig
}

// Default returns the configuration built by Init, or nil before bootstrap.
func Default() *Config {
	return defaultConfig
}
