package aptos

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedResponse is one queued reply for scriptedHTTPDoer.
type scriptedResponse struct {
	status int
	body   string
	err    error
}

// scriptedHTTPDoer implements HTTPDoer by replaying a fixed sequence of
// responses, recording the path of every call it receives in order.
type scriptedHTTPDoer struct {
	mu        sync.Mutex
	responses []scriptedResponse
	calls     []string
}

func (d *scriptedHTTPDoer) Do(_ context.Context, req *http.Request) (*http.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, req.URL.Path)

	if len(d.responses) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	next := d.responses[0]
	d.responses = d.responses[1:]

	if next.err != nil {
		return nil, next.err
	}
	return &http.Response{
		StatusCode: next.status,
		Body:       io.NopCloser(strings.NewReader(next.body)),
		Header:     make(http.Header),
	}, nil
}

func (d *scriptedHTTPDoer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

func newTestRetryClient(t *testing.T, doer *scriptedHTTPDoer) Client {
	t.Helper()
	client, err := NewClient(Localnet,
		WithHTTPClient(doer),
		WithRetryConfig(&RetryConfig{
			MaxRetries:           2,
			InitialBackoff:       10 * time.Millisecond,
			MaxBackoff:           50 * time.Millisecond,
			BackoffMultiplier:    2.0,
			RetryableStatusCodes: []int{429, 500, 502, 503, 504},
		}),
	)
	require.NoError(t, err)
	return client
}

func TestDoRequest_RetriesOnServerErrorThenFails(t *testing.T) {
	t.Parallel()

	doer := &scriptedHTTPDoer{responses: []scriptedResponse{
		{status: http.StatusInternalServerError, body: `{"message":"boom 1"}`},
		{status: http.StatusInternalServerError, body: `{"message":"boom 2"}`},
		{status: http.StatusInternalServerError, body: `{"message":"boom 3"}`},
	}}
	client := newTestRetryClient(t, doer)

	_, err := client.Info(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 3, doer.callCount())
}

func TestDoRequest_RetriesOnRateLimitThenSucceeds(t *testing.T) {
	t.Parallel()

	doer := &scriptedHTTPDoer{responses: []scriptedResponse{
		{status: http.StatusTooManyRequests, body: `{"message":"slow down"}`},
		{status: http.StatusOK, body: `{"chain_id":4,"epoch":"1","ledger_version":"1","oldest_ledger_version":"1","ledger_timestamp":"1","node_role":"full_node","oldest_block_height":"1","block_height":"1","git_hash":"abc"}`},
	}}
	client := newTestRetryClient(t, doer)

	info, err := client.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint8(4), info.ChainID)
	assert.Equal(t, 2, doer.callCount())
}

func TestFund_FallsBackToLegacyMintEndpoint(t *testing.T) {
	t.Parallel()

	doer := &scriptedHTTPDoer{responses: []scriptedResponse{
		{status: http.StatusNotFound, body: `not found`},
		{status: http.StatusOK, body: `{}`},
	}}
	client, err := NewClient(Localnet, WithHTTPClient(doer))
	require.NoError(t, err)

	err = client.Fund(context.Background(), AccountOne, 1000)
	require.NoError(t, err)

	require.Equal(t, 2, doer.callCount())
	assert.Equal(t, "/fund", doer.calls[0])
	assert.Equal(t, "/mint", doer.calls[1])
}

func TestFund_NoFaucetConfigured(t *testing.T) {
	t.Parallel()

	doer := &scriptedHTTPDoer{}
	client, err := NewClient(Mainnet, WithHTTPClient(doer))
	require.NoError(t, err)

	err = client.Fund(context.Background(), AccountOne, 1000)
	require.Error(t, err)
	assert.Equal(t, 0, doer.callCount())
}
