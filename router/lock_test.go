// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/sunrise"
)

func lockFixture(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, nil)
	_, err := env.router.Deposit(env.staker, 1_000_000)
	require.NoError(t, err)
	_, err = env.router.InitEpochReport(10, 0)
	require.NoError(t, err)
	return env
}

func TestLockGsol(t *testing.T) {
	env := lockFixture(t)

	account, err := env.router.LockGsol(env.staker, 100_000, 10)
	require.NoError(t, err)
	require.True(t, account.IsLocked())
	assert.Equal(t, sunrise.Epoch(10), *account.StartEpoch)
	assert.Equal(t, uint64(0), account.YieldAtLockStart)

	balance, err := env.gsol.BalanceOf(account.TokenAccount)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), balance)

	// one live lock per owner
	_, err = env.router.LockGsol(env.staker, 1, 10)
	assert.ErrorIs(t, err, reverts.ErrLockAccountAlreadyLocked)
}

func TestLockRequiresCurrentReport(t *testing.T) {
	env := lockFixture(t)

	_, err := env.router.LockGsol(env.staker, 100_000, 11)
	assert.ErrorIs(t, err, reverts.ErrInvalidEpochReportAccount)
}

func TestAddLockedGsol(t *testing.T) {
	env := lockFixture(t)
	_, err := env.router.LockGsol(env.staker, 100_000, 10)
	require.NoError(t, err)

	// freshly locked counts as updated for this epoch
	require.NoError(t, env.router.AddLockedGsol(env.staker, 50_000, 10))

	account, err := env.router.LockAccount(env.staker)
	require.NoError(t, err)
	balance, err := env.gsol.BalanceOf(account.TokenAccount)
	require.NoError(t, err)
	assert.Equal(t, uint64(150_000), balance)

	// a later epoch needs the position updated first, or the added balance
	// would claim yield accrued before it was locked
	err = env.router.AddLockedGsol(env.staker, 1, 11)
	assert.ErrorIs(t, err, reverts.ErrLockAccountNotUpdated)
}

func TestUpdateLockAccountAccruesYield(t *testing.T) {
	env := lockFixture(t)
	_, err := env.router.LockGsol(env.staker, 100_000, 10)
	require.NoError(t, err)
	require.NoError(t, env.router.AddLockedGsol(env.staker, 50_000, 10))

	// 5% backing growth: 45,000 lamports of system yield on a 1m supply
	env.marinade.AccrueYield(env.marinade.ActiveDelegated / 20)
	_, err = env.router.UpdateEpochReport(11)
	require.NoError(t, err)

	// floor(45,000 * 150,000/1,000,000 * 0.997) = 6729
	account, err := env.router.UpdateLockAccount(env.staker, 11)
	require.NoError(t, err)
	assert.Equal(t, uint64(6729), account.YieldAccrued)
	assert.Equal(t, uint64(45_000), account.YieldAtLockStart)
	assert.Equal(t, sunrise.Epoch(11), account.UpdatedToEpoch)

	// once per epoch, in sequence
	_, err = env.router.UpdateLockAccount(env.staker, 11)
	assert.ErrorIs(t, err, reverts.ErrLockAccountAlreadyUpdated)
}

func TestUnlockGsol(t *testing.T) {
	env := lockFixture(t)
	_, err := env.router.LockGsol(env.staker, 100_000, 10)
	require.NoError(t, err)

	// at least one full epoch must elapse
	err = env.router.UnlockGsol(env.staker, 10)
	assert.ErrorIs(t, err, reverts.ErrLockEpochNotElapsed)

	require.NoError(t, env.router.UnlockGsol(env.staker, 11))

	balance, err := env.gsol.BalanceOf(env.staker)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), balance)

	account, err := env.router.LockAccount(env.staker)
	require.NoError(t, err)
	assert.False(t, account.IsLocked())

	// updating an unlocked position is refused
	_, err = env.router.UpdateLockAccount(env.staker, 11)
	assert.ErrorIs(t, err, reverts.ErrLockAccountNotLocked)

	// the cleared position can be locked again
	_, err = env.router.UpdateEpochReport(11)
	require.NoError(t, err)
	_, err = env.router.LockGsol(env.staker, 10_000, 11)
	require.NoError(t, err)
}
