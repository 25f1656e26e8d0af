package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryDefaults(t *testing.T) {
	reg := NewRegistry(nil)

	assert.Equal(t, []uint64{1, 10, 137, 8453, 42161, 84532, 11155111}, reg.Supported())

	mainnet, ok := reg.Get(1)
	require.True(t, ok)
	assert.Equal(t, "mainnet", mainnet.Name)
	assert.Equal(t, FamilyEVM, mainnet.Family)
	assert.False(t, mainnet.Testnet)
	require.NotNil(t, mainnet.ENSRegistry)

	base, ok := reg.Get(8453)
	require.True(t, ok)
	assert.Nil(t, base.ENSRegistry)
}

func TestRegistryOverridesPrependToInterface(t *testing.T) {
	reg := NewRegistry(map[string][]string{
		"mainnet": {"https://rpc.internal.example"},
	})

	mainnet, _ := reg.Get(1)
	require.NotEmpty(t, mainnet.RPC.Interface)
	assert.Equal(t, "https://rpc.internal.example", mainnet.RPC.Interface[0])

	// Other chains are untouched.
	base, _ := reg.Get(8453)
	assert.Empty(t, base.RPC.Interface)
}

func TestRegistryLookups(t *testing.T) {
	reg := NewRegistry(nil)

	assert.True(t, reg.IsSupported(137))
	assert.False(t, reg.IsSupported(999))

	family, ok := reg.Family(42161)
	require.True(t, ok)
	assert.Equal(t, FamilyEVM, family)

	_, ok = reg.Family(999)
	assert.False(t, ok)

	assert.True(t, reg.IsTestnet(11155111))
	assert.True(t, reg.IsTestnet(84532))
	assert.False(t, reg.IsTestnet(1))
	assert.False(t, reg.IsTestnet(999))
}
