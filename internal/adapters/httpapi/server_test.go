package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/staking-cli/internal/application"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var account = common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")

type fakeController struct {
	mu       sync.Mutex
	view     application.View
	stakeErr error
	amounts  []string
	ctxErrs  []error
}

// mustAmount builds a fixture amount that does not fit in a uint64.
func mustAmount(raw string) domain.Amount {
	a, err := domain.ParseAmount(raw, domain.DefaultDecimals)
	if err != nil {
		panic(err)
	}
	return a
}

func newFakeController() *fakeController {
	return &fakeController{view: application.View{
		Session: domain.Session{Status: domain.StatusConnected, Account: account, ChainID: 1},
		Position: domain.StakePosition{
			TotalStaked: mustAmount("105"),
			UserStaked:  domain.AmountFromUint64(15_000_000_000_000_000_000),
		},
		StakeInput:   application.DefaultInput,
		UnstakeInput: application.DefaultInput,
		Decimals:     domain.DefaultDecimals,
	}}
}

func (c *fakeController) View() application.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *fakeController) Connect(context.Context) error { return nil }

func (c *fakeController) Disconnect(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Session = domain.Session{
		Status:    domain.StatusDisconnected,
		LastError: &domain.Fault{Kind: domain.ErrorKindReconnectRequired, Op: domain.OpDisconnect},
	}
	c.view.Position = domain.StakePosition{}
	return nil
}

func (c *fakeController) Resync(context.Context) error { return nil }

func (c *fakeController) SubmitStake(ctx context.Context, amount string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.amounts = append(c.amounts, amount)
	c.ctxErrs = append(c.ctxErrs, ctx.Err())
	if c.stakeErr != nil {
		if failure, ok := c.stakeErr.(*domain.Failure); ok {
			c.view.Session.LastError = &domain.Fault{Kind: failure.Kind, Op: domain.OpStake}
		}
		c.view.StakeInput = amount
		return c.stakeErr
	}
	return nil
}

func (c *fakeController) SubmitUnstake(context.Context, string) error {
	return domain.ErrActionInFlight
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(data) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(data, &decoded), string(data))
	}
	return resp.StatusCode, decoded
}

func TestGetSessionReturnsView(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewHandler(newFakeController(), Options{}))
	t.Cleanup(srv.Close)

	status, body := doRequest(t, srv, http.MethodGet, "/v1/session", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "connected", body["status"])
	assert.Equal(t, account.Hex(), body["account"])
	assert.Equal(t, "105.0", body["total_staked"])
	assert.Equal(t, "15.0", body["user_staked"])
	assert.Equal(t, "15000000000000000000", body["user_staked_base"])
	assert.Equal(t, map[string]any{"stake": "0", "unstake": "0"}, body["inputs"])
	assert.Equal(t, []any{}, body["pending"])
	assert.NotContains(t, body, "fault")
}

func TestStakeMapsFailureToStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantError  string
	}{
		{
			name:       "invalid amount",
			err:        domain.NewFailure(domain.ErrorKindInvalidAmount, "stake", domain.ErrInvalidAmount),
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "invalid_amount",
			wantError:  "Enter an amount greater than zero.",
		},
		{
			name:       "user rejected",
			err:        domain.NewFailure(domain.ErrorKindUserRejected, "stake", fmt.Errorf("user denied")),
			wantStatus: http.StatusConflict,
			wantKind:   "user_rejected",
			wantError:  "Transaction was cancelled.",
		},
		{
			name:       "call failed",
			err:        domain.NewFailure(domain.ErrorKindCallFailed, "stake", domain.ErrReverted),
			wantStatus: http.StatusBadGateway,
			wantKind:   "call_failed",
			wantError:  "Failed to stake. Please try again.",
		},
		{
			name:       "not connected",
			err:        fmt.Errorf("stake: %w", domain.ErrNotConnected),
			wantStatus: http.StatusConflict,
			wantKind:   "unknown",
			wantError:  "stake: wallet not connected",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := newFakeController()
			ctrl.stakeErr = tc.err
			srv := httptest.NewServer(NewHandler(ctrl, Options{WriteRate: 100, WriteBurst: 10}))
			t.Cleanup(srv.Close)

			status, body := doRequest(t, srv, http.MethodPost, "/v1/stake", `{"amount":" 5 "}`)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantKind, body["kind"])
			assert.Equal(t, tc.wantError, body["error"])
			assert.Equal(t, []string{"5"}, ctrl.amounts)

			session, ok := body["session"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "5", session["inputs"].(map[string]any)["stake"])
		})
	}
}

func TestStakeSucceedsDetachedFromRequest(t *testing.T) {
	t.Parallel()

	ctrl := newFakeController()
	srv := httptest.NewServer(NewHandler(ctrl, Options{}))
	t.Cleanup(srv.Close)

	status, body := doRequest(t, srv, http.MethodPost, "/v1/stake", `{"amount":"5"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "connected", body["status"])
	assert.Equal(t, []error{nil}, ctrl.ctxErrs)
}

func TestUnstakeInFlightReturnsConflict(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewHandler(newFakeController(), Options{}))
	t.Cleanup(srv.Close)

	status, body := doRequest(t, srv, http.MethodPost, "/v1/unstake", `{"amount":"1"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, domain.ErrActionInFlight.Error(), body["error"])
}

func TestStakeRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	ctrl := newFakeController()
	srv := httptest.NewServer(NewHandler(ctrl, Options{}))
	t.Cleanup(srv.Close)

	status, body := doRequest(t, srv, http.MethodPost, "/v1/stake", `{"amount": 5, "extra": true}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "invalid request body")
	assert.Empty(t, ctrl.amounts)
}

func TestDisconnectReturnsReconnectNotice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewHandler(newFakeController(), Options{}))
	t.Cleanup(srv.Close)

	status, body := doRequest(t, srv, http.MethodPost, "/v1/disconnect", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "disconnected", body["status"])
	assert.NotContains(t, body, "account")
	assert.Equal(t, "Please connect your wallet to continue.", body["notice"])
	assert.Equal(t, map[string]any{"kind": "reconnect_required", "op": "disconnect"}, body["fault"])
}

func TestWritesAreRateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewHandler(newFakeController(), Options{WriteRate: 0.001, WriteBurst: 1}))
	t.Cleanup(srv.Close)

	status, _ := doRequest(t, srv, http.MethodPost, "/v1/resync", "")
	require.Equal(t, http.StatusOK, status)

	status, body := doRequest(t, srv, http.MethodPost, "/v1/resync", "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "Too Many Requests", body["error"])

	status, _ = doRequest(t, srv, http.MethodGet, "/v1/session", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "stk_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	srv := httptest.NewServer(NewHandler(newFakeController(), Options{Gatherer: reg}))
	t.Cleanup(srv.Close)

	status, _ := doRequest(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "stk_test_total 1")
}
