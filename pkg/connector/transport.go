package connector

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"dex-swap/pkg/chains"
	"dex-swap/pkg/log"
)

// ResponseHook is invoked after every completed transport fetch with the
// response, the chain the request targeted, and the endpoint URL that served
// it. Hooks observe; they cannot fail the request.
type ResponseHook func(resp *http.Response, chain chains.Chain, endpoint string)

// DefaultResponseHook logs any non-200 response, graded by network class:
// warnings on test networks, errors on production ones. 200s log nothing.
func DefaultResponseHook(resp *http.Response, chain chains.Chain, endpoint string) {
	if resp.StatusCode == http.StatusOK {
		return
	}

	fields := []zap.Field{
		zap.String("chain", chain.Name),
		zap.Uint64("chain_id", chain.ID),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
	}
	if chain.Testnet {
		log.Warn("rpc endpoint returned non-200", fields...)
	} else {
		log.Error("rpc endpoint returned non-200", fields...)
	}
}

// failoverTransport tries a chain's ordered endpoint list in sequence until
// one completes the HTTP exchange. A non-200 status is a completed exchange,
// not a failure; only transport-level errors advance to the next endpoint.
// Every call restarts from the top of the list.
type failoverTransport struct {
	chain chains.Chain
	urls  []string
	base  http.RoundTripper
	hook  ResponseHook
}

// NewFailoverTransport builds an http.RoundTripper that fails over across
// urls in order. The request's own URL is ignored; each attempt is rewritten
// to the next endpoint.
func NewFailoverTransport(chain chains.Chain, urls []string, hook ResponseHook) http.RoundTripper {
	return &failoverTransport{
		chain: chain,
		urls:  urls,
		base:  http.DefaultTransport,
		hook:  hook,
	}
}

func (t *failoverTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.urls) == 0 {
		return nil, fmt.Errorf("no rpc endpoints configured for chain %s", t.chain.Name)
	}

	// Buffer the body once so it can be replayed on each attempt.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}

	var lastErr error
	for _, endpoint := range t.urls {
		target, err := url.Parse(endpoint)
		if err != nil {
			lastErr = fmt.Errorf("invalid rpc endpoint %q: %w", endpoint, err)
			continue
		}

		attempt := req.Clone(req.Context())
		attempt.URL = target
		attempt.Host = target.Host
		if body != nil {
			attempt.Body = io.NopCloser(bytes.NewReader(body))
			attempt.ContentLength = int64(len(body))
			attempt.GetBody = func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(body)), nil
			}
		}

		resp, err := t.base.RoundTrip(attempt)
		if err != nil {
			lastErr = err
			continue
		}

		if t.hook != nil {
			t.hook(resp, t.chain, endpoint)
		}
		return resp, nil
	}

	return nil, fmt.Errorf("all rpc endpoints failed for chain %s: %w", t.chain.Name, lastErr)
}
