package swap

import "errors"

// Validation failures of Execute. Each precondition has its own sentinel so
// callers can branch on the failure kind; strategy errors are never wrapped
// into these.
var (
	ErrMissingTrade           = errors.New("no trade to execute")
	ErrWalletNotConnected     = errors.New("wallet not connected")
	ErrMissingChain           = errors.New("no target chain for swap")
	ErrUnsupportedChainFamily = errors.New("target chain outside supported chain family")
	ErrChainMismatch          = errors.New("wallet connected to wrong chain")
)
