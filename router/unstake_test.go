// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/router/allocation"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/router/venuetest"
	"github.com/sunrise-stake/router/state"
	"github.com/sunrise-stake/router/sunrise"
)

func TestLiquidUnstakeDrainsPoolFirst(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.router.Deposit(env.staker, 1_000_000_000)
	require.NoError(t, err)

	// post-burn supply 800m, pool floor 5% = 40m; the pool holds 100m so it
	// gives up 60m and the venues cover the rest
	split, err := env.router.LiquidUnstake(env.staker, 200_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(60_000_000), split.FromLiquidityPool)
	assert.Equal(t, uint64(140_000_000), split.FromMarinade)
	assert.Equal(t, uint64(0), split.FromBlaze)

	balance, err := env.gsol.BalanceOf(env.staker)
	require.NoError(t, err)
	assert.Equal(t, uint64(800_000_000), balance)

	marinadeMinted, _, err := env.router.MintedTotals()
	require.NoError(t, err)
	assert.Equal(t, uint64(760_000_000), marinadeMinted)
}

func TestLiquidUnstakeFallsBackToSecondVenue(t *testing.T) {
	dep := defaultDeployment(
		sunrise.BytesToAddress([]byte("authority")),
		sunrise.BytesToAddress([]byte("treasury")),
	)
	dep.LiqPoolProportion = 0
	dep.LiqPoolMinProportion = 0
	env := newTestEnv(t, dep)

	// split the stake across both venues
	_, err := env.router.Deposit(env.staker, 600_000_000)
	require.NoError(t, err)
	_, err = env.router.MoveStake(env.authority, allocation.VenueMarinade, allocation.VenueBlaze, 200_000_000)
	require.NoError(t, err)

	// 500m exceeds the richer venue's 400m, so 100m comes from the other
	split, err := env.router.LiquidUnstake(env.staker, 500_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(400_000_000), split.FromMarinade)
	assert.Equal(t, uint64(100_000_000), split.FromBlaze)
}

func TestLiquidUnstakeBeyondSupply(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.router.Deposit(env.staker, 1_000_000)
	require.NoError(t, err)

	_, err = env.router.LiquidUnstake(env.staker, 2_000_000)
	assert.ErrorIs(t, err, reverts.ErrArithmeticUnderflow)
}

type frozenLiquidityPool struct {
	*venuetest.DelegationPool
}

func (p *frozenLiquidityPool) RemoveLiquidity(uint64) (uint64, error) {
	return 0, errors.New("liquidity frozen")
}

func TestLiquidUnstakeBurnsBeforeVenues(t *testing.T) {
	marinade := &frozenLiquidityPool{venuetest.NewDelegationPool(1000 * sol)}
	blaze := venuetest.NewStakePool(1000 * sol)
	gsol := venuetest.NewReceiptMint()

	authority := sunrise.BytesToAddress([]byte("authority"))
	treasury := sunrise.BytesToAddress([]byte("treasury"))
	staker := sunrise.BytesToAddress([]byte("staker"))

	ctx := accounts.NewContext(sunrise.BytesToAddress([]byte("deployment")), state.New(state.NewMem()))
	r := New(ctx, marinade, blaze, gsol)
	require.NoError(t, r.RegisterState(defaultDeployment(authority, treasury)))

	_, err := r.Deposit(staker, 1_000_000_000)
	require.NoError(t, err)

	_, err = r.LiquidUnstake(staker, 200_000_000)
	require.Error(t, err)

	// the burn preceded the failing venue call; the host's transaction
	// atomicity is what restores it on-chain, not the engine
	balance, err := gsol.BalanceOf(staker)
	require.NoError(t, err)
	assert.Equal(t, uint64(800_000_000), balance)
	assert.Equal(t, uint64(900_000_000), marinade.Held)
}
