package provider

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dex-swap/pkg/chains"
)

func mainnetChain(t *testing.T) *chains.Chain {
	t.Helper()
	reg := chains.NewRegistry(nil)
	chain, ok := reg.Get(1)
	require.True(t, ok)
	return &chain
}

func TestAdaptCachesPerHandle(t *testing.T) {
	c := &Client{Chain: mainnetChain(t)}
	defer Evict(c)

	first := Adapt(c, nil)
	second := Adapt(c, nil)

	require.NotNil(t, first)
	assert.Same(t, first, second, "one provider instance per handle")
	assert.Same(t, c, first.Client())
}

func TestAdaptDistinctHandlesDistinctProviders(t *testing.T) {
	chain := mainnetChain(t)
	a := &Client{Chain: chain}
	b := &Client{Chain: chain}
	defer Evict(a)
	defer Evict(b)

	assert.NotSame(t, Adapt(a, nil), Adapt(b, nil))
}

func TestAdaptNetworkFromChain(t *testing.T) {
	c := &Client{Chain: mainnetChain(t)}
	defer Evict(c)

	p := Adapt(c, nil)
	require.NotNil(t, p)
	assert.Equal(t, uint64(1), p.Network.ChainID)
	assert.Equal(t, "mainnet", p.Network.Name)
	require.NotNil(t, p.Network.ENSRegistry)
	assert.Equal(t, common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"), *p.Network.ENSRegistry)
	assert.Nil(t, p.Eth(), "no transport, no eth client")
}

func TestAdaptFallbackNetwork(t *testing.T) {
	id := uint64(999)
	c := &Client{}
	defer Evict(c)

	p := Adapt(c, &id)
	require.NotNil(t, p)
	assert.Equal(t, uint64(999), p.Network.ChainID)
	assert.Equal(t, "unsupported-999", p.Network.Name)
	assert.Nil(t, p.Network.ENSRegistry)
}

func TestAdaptNilCases(t *testing.T) {
	id := uint64(1)
	assert.Nil(t, Adapt(nil, nil))
	assert.Nil(t, Adapt(nil, &id))
	assert.Nil(t, Adapt(&Client{}, nil), "no chain and no fallback is unadaptable")
}

func TestEvictGivesFreshProvider(t *testing.T) {
	c := &Client{Chain: mainnetChain(t)}

	first := Adapt(c, nil)
	Evict(c)
	second := Adapt(c, nil)
	defer Evict(c)

	assert.NotSame(t, first, second)
}

type fakeAccountState struct {
	address   common.Address
	haveAddr  bool
	chainID   uint64
	haveChain bool
	connected bool
}

func (f *fakeAccountState) Address() (common.Address, bool) { return f.address, f.haveAddr }
func (f *fakeAccountState) ChainID() (uint64, bool)         { return f.chainID, f.haveChain }
func (f *fakeAccountState) Connected() bool                 { return f.connected }

func TestSourceReadOnly(t *testing.T) {
	reg := chains.NewRegistry(nil)
	mainnet, _ := reg.Get(1)
	base, _ := reg.Get(8453)

	walletClient := &Client{Chain: &mainnet}
	baseClient := &Client{Chain: &base}
	t.Cleanup(func() {
		Evict(walletClient)
		Evict(baseClient)
	})

	accounts := &fakeAccountState{
		address:   common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		haveAddr:  true,
		chainID:   1,
		haveChain: true,
		connected: true,
	}
	readonly := func(chainID uint64) *Client {
		if chainID == base.ID {
			return baseClient
		}
		return nil
	}
	src := NewSource(accounts, func() *Client { return walletClient }, readonly)

	t.Run("connected wallet serves its own chain", func(t *testing.T) {
		id := uint64(1)
		p := src.ReadOnly(&id)
		require.NotNil(t, p)
		assert.Same(t, walletClient, p.Client())
	})

	t.Run("nil chain follows the wallet", func(t *testing.T) {
		p := src.ReadOnly(nil)
		require.NotNil(t, p)
		assert.Same(t, walletClient, p.Client())
	})

	t.Run("other chain uses readonly client", func(t *testing.T) {
		id := base.ID
		p := src.ReadOnly(&id)
		require.NotNil(t, p)
		assert.Same(t, baseClient, p.Client())
	})

	t.Run("unservable chain yields nil", func(t *testing.T) {
		id := uint64(999)
		p := src.ReadOnly(&id)
		assert.Nil(t, p, "nil readonly client and nil handle cannot be adapted")
	})

	t.Run("disconnected wallet still serves readonly chains", func(t *testing.T) {
		accounts.connected = false
		defer func() { accounts.connected = true }()

		id := base.ID
		p := src.ReadOnly(&id)
		require.NotNil(t, p)
		assert.Same(t, baseClient, p.Client())
	})
}

func TestSourceSigner(t *testing.T) {
	reg := chains.NewRegistry(nil)
	mainnet, _ := reg.Get(1)
	walletClient := &Client{Chain: &mainnet}
	t.Cleanup(func() { Evict(walletClient) })

	accounts := &fakeAccountState{
		address:   common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		haveAddr:  true,
		chainID:   1,
		haveChain: true,
		connected: true,
	}
	src := NewSource(accounts, func() *Client { return walletClient }, func(uint64) *Client { return nil })

	t.Run("connected on matching chain", func(t *testing.T) {
		id := uint64(1)
		p := src.Signer(&id)
		require.NotNil(t, p)
		assert.Same(t, walletClient, p.Client())
	})

	t.Run("nil chain accepts current session", func(t *testing.T) {
		require.NotNil(t, src.Signer(nil))
	})

	t.Run("chain mismatch", func(t *testing.T) {
		id := uint64(8453)
		assert.Nil(t, src.Signer(&id))
	})

	t.Run("disconnected", func(t *testing.T) {
		accounts.connected = false
		defer func() { accounts.connected = true }()
		id := uint64(1)
		assert.Nil(t, src.Signer(&id))
	})

	t.Run("unknown session chain", func(t *testing.T) {
		accounts.haveChain = false
		defer func() { accounts.haveChain = true }()
		assert.Nil(t, src.Signer(nil))
	})
}
