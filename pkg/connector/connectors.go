package connector

// ConnectorKind identifies how a connector reaches the user's wallet.
type ConnectorKind string

const (
	ConnectorEmbedded      ConnectorKind = "embedded"
	ConnectorInjected      ConnectorKind = "injected"
	ConnectorWalletConnect ConnectorKind = "walletconnect"
	ConnectorSafe          ConnectorKind = "safe"
	ConnectorCoinbase      ConnectorKind = "coinbase"
	ConnectorMock          ConnectorKind = "mock"
)

// MockConnectorAddress is the account the mock connector reports as
// connected. It matches the first well-known local-node dev account so test
// fixtures line up with a default hardhat/anvil deployment.
const MockConnectorAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

const walletConnectRelayURL = "wss://relay.walletconnect.com"

// Connector is an opaque wallet connector instance. The wallet-connection
// layer consumes these by kind; params carry the per-kind fixed
// configuration.
type Connector struct {
	Kind   ConnectorKind
	Name   string
	Params map[string]string
}

// ConnectorOptions control which connectors are assembled and with what
// branding.
type ConnectorOptions struct {
	// IncludeMock appends the mock connector used by the test harness.
	IncludeMock bool

	// NonInteractive marks an environment with no user to answer wallet
	// prompts (CI). The walletconnect connector is omitted there.
	NonInteractive bool

	WalletConnectProjectID string
	AppName                string
	AppLogoURL             string
}

// BuildConnectors assembles the ordered connector list. Order is meaningful:
// the wallet-connection layer offers connectors to the user in this order.
func BuildConnectors(opts ConnectorOptions) []Connector {
	connectors := []Connector{
		{Kind: ConnectorEmbedded, Name: "embedded"},
		{Kind: ConnectorInjected, Name: "metamask", Params: map[string]string{"rdns": "io.metamask"}},
		{Kind: ConnectorInjected, Name: "rabby", Params: map[string]string{"rdns": "io.rabby"}},
	}

	if !opts.NonInteractive {
		connectors = append(connectors, Connector{
			Kind: ConnectorWalletConnect,
			Name: "walletconnect",
			Params: map[string]string{
				"project_id": opts.WalletConnectProjectID,
				"relay_url":  walletConnectRelayURL,
				"qr_modal":   "true",
			},
		})
	}

	connectors = append(connectors,
		Connector{Kind: ConnectorSafe, Name: "safe"},
		Connector{
			Kind: ConnectorCoinbase,
			Name: "coinbase",
			Params: map[string]string{
				"app_name": opts.AppName,
				"app_logo": opts.AppLogoURL,
			},
		},
	)

	if opts.IncludeMock {
		connectors = append(connectors, Connector{
			Kind:   ConnectorMock,
			Name:   "mock",
			Params: map[string]string{"address": MockConnectorAddress},
		})
	}

	return connectors
}
