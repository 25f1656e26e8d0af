package provider

import "github.com/ethereum/go-ethereum/common"

// AccountState is the slice of wallet-session state the provider source
// needs: who is connected, and on which chain.
type AccountState interface {
	Address() (common.Address, bool)
	ChainID() (uint64, bool)
	Connected() bool
}

// Source layers connection-state policy over Adapt. It owns nothing: the
// wallet client and the per-chain read-only clients are supplied by the
// caller, and the caller re-queries the source whenever account, chain, or
// client change.
type Source struct {
	accounts AccountState
	wallet   func() *Client
	readonly func(chainID uint64) *Client
}

// NewSource builds a provider source. wallet returns the client of the
// active wallet session (nil when disconnected); readonly returns a
// disconnected client for a chain (nil when the chain cannot be served).
func NewSource(accounts AccountState, wallet func() *Client, readonly func(chainID uint64) *Client) *Source {
	return &Source{accounts: accounts, wallet: wallet, readonly: readonly}
}

// ReadOnly returns a provider usable for queries regardless of connection
// state. The wallet's own client is preferred when it is connected on the
// requested chain; otherwise a disconnected read-only client serves the
// chain. Nil only when no network is determinable at all.
func (s *Source) ReadOnly(chainID *uint64) *Provider {
	if s.accounts.Connected() {
		if id, ok := s.accounts.ChainID(); ok && (chainID == nil || *chainID == id) {
			if c := s.wallet(); c != nil {
				return Adapt(c, chainID)
			}
		}
	}

	if chainID != nil {
		if c := s.readonly(*chainID); c != nil {
			return Adapt(c, chainID)
		}
		return Adapt(nil, chainID)
	}

	// No requested chain and no usable session: fall back to whatever the
	// wallet handle can tell us.
	return Adapt(s.wallet(), nil)
}

// Signer returns a provider only when a wallet is actively connected for
// the requested chain; operations needing signing capability use this and
// treat nil as "cannot sign right now".
func (s *Source) Signer(chainID *uint64) *Provider {
	if !s.accounts.Connected() {
		return nil
	}
	id, ok := s.accounts.ChainID()
	if !ok {
		return nil
	}
	if chainID != nil && *chainID != id {
		return nil
	}
	return Adapt(s.wallet(), chainID)
}
