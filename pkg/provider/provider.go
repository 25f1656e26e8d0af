package provider

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"dex-swap/pkg/chains"
)

// Client is the handle handed to the adapter: the network the client is
// bound to (nil when undeterminable) and its JSON-RPC transport.
type Client struct {
	Chain *chains.Chain
	RPC   *rpc.Client
}

// Close releases the underlying transport and drops the client's cached
// provider. The cache holds no clients of its own; entry lifetime follows
// the handle's.
func (c *Client) Close() {
	Evict(c)
	if c.RPC != nil {
		c.RPC.Close()
	}
}

// Network is the parameter set the adapted provider is constructed with.
type Network struct {
	ChainID     uint64
	Name        string
	ENSRegistry *common.Address
}

// Provider adapts a Client into the interface the query layer expects: the
// resolved network parameters plus an eth API bound to the client's
// transport.
type Provider struct {
	Network Network
	client  *Client
	eth     *ethclient.Client
}

// Eth returns the eth API client, or nil for a provider adapted from a
// transport-less handle.
func (p *Provider) Eth() *ethclient.Client {
	return p.eth
}

// Client returns the handle this provider was adapted from.
func (p *Provider) Client() *Client {
	return p.client
}

var (
	cacheMu sync.Mutex
	cache   = make(map[*Client]*Provider)
)

// Adapt returns the provider for a client handle, constructing it on first
// use and returning the same instance for the same handle afterwards.
//
// Network parameters come from the client's own chain when known; otherwise
// fallbackChainID selects a generic unsupported-network descriptor. With
// neither, no provider can be built and Adapt returns nil.
func Adapt(c *Client, fallbackChainID *uint64) *Provider {
	if c == nil {
		return nil
	}
	if c.Chain == nil && fallbackChainID == nil {
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if p, ok := cache[c]; ok {
		return p
	}

	var network Network
	if c.Chain != nil {
		network = Network{
			ChainID:     c.Chain.ID,
			Name:        c.Chain.Name,
			ENSRegistry: c.Chain.ENSRegistry,
		}
	} else {
		network = Network{
			ChainID: *fallbackChainID,
			Name:    fmt.Sprintf("unsupported-%d", *fallbackChainID),
		}
	}

	p := &Provider{Network: network, client: c}
	if c.RPC != nil {
		p.eth = ethclient.NewClient(c.RPC)
	}

	cache[c] = p
	return p
}

// Evict drops the cached provider for a client handle. Called when the
// handle is closed; a later Adapt of the same handle builds a fresh
// provider.
func Evict(c *Client) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	delete(cache, c)
}
