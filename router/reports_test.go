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

func TestInitEpochReport(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.router.Deposit(env.staker, 1_000_000_000)
	require.NoError(t, err)

	report, err := env.router.InitEpochReport(10, 0)
	require.NoError(t, err)
	assert.Equal(t, sunrise.Epoch(10), report.Epoch)
	assert.Equal(t, uint64(0), report.ExtractableYield)
	assert.Equal(t, uint64(1_000_000_000), report.CurrentGsolSupply)

	// the report is rolled forward from now on, never re-created
	_, err = env.router.InitEpochReport(11, 0)
	assert.ErrorIs(t, err, reverts.ErrInvalidEpochReportAccount)
}

func TestUpdateEpochReportBranches(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.router.Deposit(env.staker, 1_000_000_000)
	require.NoError(t, err)
	_, err = env.router.InitEpochReport(10, 0)
	require.NoError(t, err)

	// same epoch: allowed
	report, err := env.router.UpdateEpochReport(10)
	require.NoError(t, err)
	assert.Equal(t, sunrise.Epoch(10), report.Epoch)

	// one epoch ahead with zero tickets: allowed
	report, err = env.router.UpdateEpochReport(11)
	require.NoError(t, err)
	assert.Equal(t, sunrise.Epoch(11), report.Epoch)

	// two epochs ahead: refused
	_, err = env.router.UpdateEpochReport(13)
	assert.ErrorIs(t, err, reverts.ErrRemainingUnclaimableTicketAmount)

	// one epoch ahead but with open tickets: refused
	_, err = env.router.LiquidUnstake(env.staker, 200_000_000)
	require.NoError(t, err)
	require.NoError(t, env.router.TriggerRebalance(11, nil))
	_, err = env.router.UpdateEpochReport(12)
	assert.ErrorIs(t, err, reverts.ErrRemainingUnclaimableTicketAmount)
}

func TestUpdateEpochReportRefreshesYield(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.router.Deposit(env.staker, 1_000_000_000)
	require.NoError(t, err)
	_, err = env.router.InitEpochReport(10, 0)
	require.NoError(t, err)

	// validator rewards double the delegation pool's backing pot: the
	// deployment's 900m shares are now worth 5% more
	env.marinade.AccrueYield(env.marinade.ActiveDelegated / 20)

	report, err := env.router.UpdateEpochReport(11)
	require.NoError(t, err)
	assert.Equal(t, uint64(45_000_000), report.ExtractableYield)
	assert.Equal(t, uint64(1_000_000_000), report.CurrentGsolSupply)
}

func TestExtractYield(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.router.Deposit(env.staker, 1_000_000_000)
	require.NoError(t, err)
	_, err = env.router.InitEpochReport(10, 0)
	require.NoError(t, err)

	env.marinade.AccrueYield(env.marinade.ActiveDelegated / 20)

	extracted, err := env.router.ExtractYield(10)
	require.NoError(t, err)
	assert.Equal(t, uint64(45_000_000), extracted)

	// withdrawal and report mutation happen in the same instruction
	assert.Equal(t, extracted, env.marinade.Payouts[env.treasury])
	report, err := env.router.EpochReport()
	require.NoError(t, err)
	assert.Equal(t, extracted, report.ExtractedYield)
	assert.Equal(t, uint64(0), report.ExtractableYield)

	// a second sweep in the same epoch finds nothing
	extracted, err = env.router.ExtractYield(10)
	require.NoError(t, err)
	assert.Zero(t, extracted)

	// the report must sit at the clock epoch
	_, err = env.router.ExtractYield(11)
	assert.ErrorIs(t, err, reverts.ErrInvalidEpochReportAccount)
}
