package chains

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Family is the execution/addressing model a chain belongs to. Swap
// execution is only supported on the EVM family; other families exist so
// foreign chain ids can be classified and rejected.
type Family string

const (
	FamilyEVM  Family = "evm"
	FamilySVM  Family = "svm"
	FamilyUTXO Family = "utxo"
)

// Endpoints groups a chain's RPC URLs by category. Categories are tried in
// declaration order when building the transport list: Interface first, then
// Default, Public, Fallback.
type Endpoints struct {
	Interface []string
	Default   []string
	Public    []string
	Fallback  []string
}

// Chain is the static metadata for one supported chain.
type Chain struct {
	ID          uint64
	Name        string
	Family      Family
	Testnet     bool
	ENSRegistry *common.Address
	RPC         Endpoints
}

// Registry holds the supported chain set. Built once at bootstrap; read-only
// afterwards.
type Registry struct {
	chains map[uint64]Chain
}

var ensRegistryAddr = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// NewRegistry returns the default supported chain set, with per-chain RPC
// overrides (keyed by chain name) prepended to the interface category.
func NewRegistry(overrides map[string][]string) *Registry {
	defaults := []Chain{
		{
			ID:          1,
			Name:        "mainnet",
			Family:      FamilyEVM,
			ENSRegistry: &ensRegistryAddr,
			RPC: Endpoints{
				Default:  []string{"https://eth.llamarpc.com"},
				Public:   []string{"https://cloudflare-eth.com", "https://rpc.ankr.com/eth"},
				Fallback: []string{"https://ethereum-rpc.publicnode.com"},
			},
		},
		{
			ID:     10,
			Name:   "optimism",
			Family: FamilyEVM,
			RPC: Endpoints{
				Default:  []string{"https://mainnet.optimism.io"},
				Public:   []string{"https://rpc.ankr.com/optimism"},
				Fallback: []string{"https://optimism-rpc.publicnode.com"},
			},
		},
		{
			ID:     137,
			Name:   "polygon",
			Family: FamilyEVM,
			RPC: Endpoints{
				Default:  []string{"https://polygon-rpc.com"},
				Public:   []string{"https://rpc.ankr.com/polygon"},
				Fallback: []string{"https://polygon-bor-rpc.publicnode.com"},
			},
		},
		{
			ID:     8453,
			Name:   "base",
			Family: FamilyEVM,
			RPC: Endpoints{
				Default:  []string{"https://mainnet.base.org"},
				Public:   []string{"https://base.llamarpc.com"},
				Fallback: []string{"https://base-rpc.publicnode.com"},
			},
		},
		{
			ID:     42161,
			Name:   "arbitrum",
			Family: FamilyEVM,
			RPC: Endpoints{
				Default:  []string{"https://arb1.arbitrum.io/rpc"},
				Public:   []string{"https://rpc.ankr.com/arbitrum"},
				Fallback: []string{"https://arbitrum-one-rpc.publicnode.com"},
			},
		},
		{
			ID:      11155111,
			Name:    "sepolia",
			Family:  FamilyEVM,
			Testnet: true,
			RPC: Endpoints{
				Default:  []string{"https://rpc.sepolia.org"},
				Public:   []string{"https://ethereum-sepolia-rpc.publicnode.com"},
				Fallback: []string{"https://rpc.ankr.com/eth_sepolia"},
			},
		},
		{
			ID:      84532,
			Name:    "base-sepolia",
			Family:  FamilyEVM,
			Testnet: true,
			RPC: Endpoints{
				Default:  []string{"https://sepolia.base.org"},
				Fallback: []string{"https://base-sepolia-rpc.publicnode.com"},
			},
		},
	}

	chains := make(map[uint64]Chain, len(defaults))
	for _, c := range defaults {
		if urls, ok := overrides[c.Name]; ok {
			c.RPC.Interface = append(urls, c.RPC.Interface...)
		}
		chains[c.ID] = c
	}

	return &Registry{chains: chains}
}

// Get returns the chain metadata for id.
func (r *Registry) Get(id uint64) (Chain, bool) {
	c, ok := r.chains[id]
	return c, ok
}

// IsSupported reports whether id is in the supported set.
func (r *Registry) IsSupported(id uint64) bool {
	_, ok := r.chains[id]
	return ok
}

// Family returns the chain family for id. Unknown chains have no family.
func (r *Registry) Family(id uint64) (Family, bool) {
	c, ok := r.chains[id]
	if !ok {
		return "", false
	}
	return c.Family, true
}

// IsTestnet reports whether id is a test network. Unknown ids are not
// testnets.
func (r *Registry) IsTestnet(id uint64) bool {
	c, ok := r.chains[id]
	return ok && c.Testnet
}

// Supported returns the supported chain ids in ascending order.
func (r *Registry) Supported() []uint64 {
	ids := make([]uint64, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
