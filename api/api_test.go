// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/registry"
	"github.com/sunrise-stake/router/router"
	"github.com/sunrise-stake/router/router/venuetest"
	"github.com/sunrise-stake/router/state"
	"github.com/sunrise-stake/router/sunrise"
)

func newTestServer(t *testing.T) (*httptest.Server, *router.Router, sunrise.Address) {
	t.Helper()

	marinade := venuetest.NewDelegationPool(1_000_000_000_000)
	blaze := venuetest.NewStakePool(1_000_000_000_000)
	gsol := venuetest.NewReceiptMint()

	ctx := accounts.NewContext(sunrise.BytesToAddress([]byte("deployment")), state.New(state.NewMem()))
	engine := router.New(ctx, marinade, blaze, gsol)

	staker := sunrise.BytesToAddress([]byte("staker"))
	require.NoError(t, engine.RegisterState(&router.Deployment{
		UpdateAuthority:      sunrise.BytesToAddress([]byte("authority")),
		Treasury:             sunrise.BytesToAddress([]byte("treasury")),
		LiqPoolProportion:    10,
		LiqPoolMinProportion: 5,
		MarinadeShareBps:     uint16(sunrise.MarinadeShareBps),
	}))
	_, err := engine.Deposit(staker, 1_000_000_000)
	require.NoError(t, err)
	_, err = engine.InitEpochReport(10, 0)
	require.NoError(t, err)

	srv := httptest.NewServer(New(engine))
	t.Cleanup(srv.Close)
	return srv, engine, staker
}

func httpGet(t *testing.T, url string) (int, []byte) {
	t.Helper()
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, body
}

func TestGetDeployment(t *testing.T) {
	srv, _, _ := newTestServer(t)

	status, body := httpGet(t, srv.URL+"/router/deployment")
	require.Equal(t, http.StatusOK, status)

	var dep Deployment
	require.NoError(t, json.Unmarshal(body, &dep))
	assert.Equal(t, uint8(10), dep.LiqPoolProportion)
	assert.Equal(t, uint64(900_000_000), dep.MarinadeMintedGsol)
	assert.NotEmpty(t, dep.Treasury)
}

func TestGetReport(t *testing.T) {
	srv, _, _ := newTestServer(t)

	status, body := httpGet(t, srv.URL+"/router/report")
	require.Equal(t, http.StatusOK, status)

	var report EpochReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, sunrise.Epoch(10), report.Epoch)
	assert.Equal(t, uint64(1_000_000_000), report.CurrentGsolSupply)
}

func TestGetLock(t *testing.T) {
	srv, engine, staker := newTestServer(t)

	status, _ := httpGet(t, srv.URL+"/router/locks/"+staker.String())
	assert.Equal(t, http.StatusNotFound, status)

	_, err := engine.LockGsol(staker, 100_000, 10)
	require.NoError(t, err)

	status, body := httpGet(t, srv.URL+"/router/locks/"+staker.String())
	require.Equal(t, http.StatusOK, status)

	var lock LockAccount
	require.NoError(t, json.Unmarshal(body, &lock))
	assert.True(t, lock.Locked)
	assert.Equal(t, staker.String(), lock.Owner)

	// not base58
	status, _ = httpGet(t, srv.URL+"/router/locks/0x00")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetPool(t *testing.T) {
	srv, engine, _ := newTestServer(t)

	status, _ := httpGet(t, srv.URL+"/router/pools/0")
	assert.Equal(t, http.StatusNotFound, status)

	pool := &registry.PoolEntry{
		Pool:         sunrise.BytesToAddress([]byte("blaze-pool")),
		TokenAccount: sunrise.BytesToAddress([]byte("bsol-account")),
	}
	_, err := engine.RegisterStakePool(sunrise.BytesToAddress([]byte("authority")), pool)
	require.NoError(t, err)

	status, body := httpGet(t, srv.URL+"/router/pools/0")
	require.Equal(t, http.StatusOK, status)

	var entry PoolEntry
	require.NoError(t, json.Unmarshal(body, &entry))
	assert.Equal(t, pool.Pool.String(), entry.Pool)
}
