package connector

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"dex-swap/pkg/chains"
	"dex-swap/pkg/log"
)

func TestFailoverTransportTriesEndpointsInOrder(t *testing.T) {
	// First endpoint is dead; the transport must fall through to the second.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	var gotBody string
	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer alive.Close()

	var hookURLs []string
	chain := chains.Chain{ID: 1, Name: "mainnet"}
	transport := NewFailoverTransport(chain, []string{dead.URL, alive.URL},
		func(resp *http.Response, c chains.Chain, endpoint string) {
			hookURLs = append(hookURLs, endpoint)
		})
	client := &http.Client{Transport: transport}

	resp, err := client.Post("http://placeholder", "application/json", strings.NewReader(`{"id":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"id":1}`, gotBody, "body must be replayed on the failover attempt")
	assert.Equal(t, []string{alive.URL}, hookURLs, "hook fires only for completed fetches")
}

func TestFailoverTransportRestartsFromTopEveryCall(t *testing.T) {
	var firstHits, secondHits int
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstHits++
		w.WriteHeader(http.StatusOK)
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondHits++
		w.WriteHeader(http.StatusOK)
	}))
	defer second.Close()

	chain := chains.Chain{ID: 1, Name: "mainnet"}
	client := &http.Client{Transport: NewFailoverTransport(chain, []string{first.URL, second.URL}, nil)}

	for i := 0; i < 3; i++ {
		resp, err := client.Get("http://placeholder")
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 3, firstHits, "every call starts at the top of the list")
	assert.Zero(t, secondHits)
}

func TestFailoverTransportNon200IsNotFailure(t *testing.T) {
	erroring := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer erroring.Close()
	var fallbackHits int
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackHits++
	}))
	defer fallback.Close()

	chain := chains.Chain{ID: 1, Name: "mainnet"}
	client := &http.Client{Transport: NewFailoverTransport(chain, []string{erroring.URL, fallback.URL}, nil)}

	resp, err := client.Get("http://placeholder")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Zero(t, fallbackHits, "a completed exchange must not fail over")
}

func TestFailoverTransportAllEndpointsDown(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	chain := chains.Chain{ID: 1, Name: "mainnet"}
	client := &http.Client{Transport: NewFailoverTransport(chain, []string{dead.URL}, nil)}

	_, err := client.Get("http://placeholder") //nolint:bodyclose
	assert.Error(t, err)
}

func TestFailoverTransportNoEndpoints(t *testing.T) {
	chain := chains.Chain{ID: 1, Name: "mainnet"}
	client := &http.Client{Transport: NewFailoverTransport(chain, nil, nil)}

	_, err := client.Get("http://placeholder") //nolint:bodyclose
	assert.Error(t, err)
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	prev := log.Replace(zap.New(core))
	t.Cleanup(func() { log.Replace(prev) })
	return logs
}

func TestDefaultResponseHookSeverity(t *testing.T) {
	testnet := chains.Chain{ID: 11155111, Name: "sepolia", Testnet: true}
	mainnet := chains.Chain{ID: 1, Name: "mainnet"}

	t.Run("500 on testnet logs warning", func(t *testing.T) {
		logs := observeLogs(t)
		DefaultResponseHook(&http.Response{StatusCode: http.StatusInternalServerError}, testnet, "https://rpc.test")

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, "sepolia", entries[0].ContextMap()["chain"])
		assert.Equal(t, "https://rpc.test", entries[0].ContextMap()["endpoint"])
	})

	t.Run("500 on production chain logs error", func(t *testing.T) {
		logs := observeLogs(t)
		DefaultResponseHook(&http.Response{StatusCode: http.StatusInternalServerError}, mainnet, "https://rpc.main")

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	})

	t.Run("200 logs nothing", func(t *testing.T) {
		logs := observeLogs(t)
		DefaultResponseHook(&http.Response{StatusCode: http.StatusOK}, mainnet, "https://rpc.main")
		DefaultResponseHook(&http.Response{StatusCode: http.StatusOK}, testnet, "https://rpc.test")

		assert.Zero(t, logs.Len())
	})
}

func TestBuildConfigCoversEverySupportedChain(t *testing.T) {
	registry := chains.NewRegistry(nil)
	conf := Build(registry, BuildConnectors(ConnectorOptions{}), nil)

	for _, id := range registry.Supported() {
		cc, ok := conf.Client(id)
		require.True(t, ok, "chain %d must have a client", id)
		assert.True(t, cc.BatchMulticall)
		assert.Equal(t, PollInterval, cc.PollInterval)
		assert.NotEmpty(t, cc.URLs)
		require.NotNil(t, cc.HTTPClient)
	}
}
