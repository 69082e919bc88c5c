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

func TestRecoverTicketsRollsForward(t *testing.T) {
	env := newTestEnv(t, nil)
	drainPool(t, env)
	require.NoError(t, env.router.TriggerRebalance(10, nil))

	// venue-side rounding shaves a few lamports off the claim; the recovery
	// margin still treats it as fully covered
	env.marinade.ClaimRoundingLoss = 3
	env.marinade.AdvanceEpoch()

	report, err := env.router.RecoverTickets(11, env.marinade.OpenTickets())
	require.NoError(t, err)
	assert.Equal(t, sunrise.Epoch(11), report.Epoch)
	assert.Equal(t, uint64(0), report.Tickets)
	assert.Equal(t, uint64(0), report.TotalOrderedLamports)

	record, err := env.router.epochs.TicketRecord(10)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRecoverTicketsPartialProgress(t *testing.T) {
	env := newTestEnv(t, nil)
	drainPool(t, env)
	require.NoError(t, env.router.TriggerRebalance(10, nil))
	env.marinade.AdvanceEpoch()

	// no tickets supplied: the report stays open at its epoch
	report, err := env.router.RecoverTickets(11, nil)
	require.NoError(t, err)
	assert.Equal(t, sunrise.Epoch(10), report.Epoch)
	assert.Equal(t, uint64(1), report.Tickets)

	// the follow-up call with the remaining ticket completes the recovery
	report, err = env.router.RecoverTickets(11, env.marinade.OpenTickets())
	require.NoError(t, err)
	assert.Equal(t, sunrise.Epoch(11), report.Epoch)
	assert.Equal(t, uint64(0), report.Tickets)
}

func TestRecoverTicketsGuards(t *testing.T) {
	env := newTestEnv(t, nil)
	drainPool(t, env)
	require.NoError(t, env.router.TriggerRebalance(10, nil))

	// the clock must be past the report's epoch
	_, err := env.router.RecoverTickets(10, nil)
	assert.ErrorIs(t, err, reverts.ErrDelayedUnstakeTicketsNotYetClaimable)

	// more tickets than the report knows about
	env.marinade.AdvanceEpoch()
	stray := []sunrise.Address{
		sunrise.BytesToAddress([]byte("stray-1")),
		sunrise.BytesToAddress([]byte("stray-2")),
	}
	_, err = env.router.RecoverTickets(11, stray)
	assert.ErrorIs(t, err, reverts.ErrTooManyTicketsClaimed)
}

func TestRecoverMissedEpoch(t *testing.T) {
	env := newTestEnv(t, nil)
	drainPool(t, env)
	require.NoError(t, env.router.TriggerRebalance(10, nil))
	env.marinade.AdvanceEpoch()

	solLegBefore := env.marinade.SolLeg
	recovered, err := env.router.RecoverMissedEpoch(env.marinade.OpenTickets())
	require.NoError(t, err)
	assert.Equal(t, uint64(40_000_000), recovered)
	assert.Equal(t, solLegBefore+recovered, env.marinade.SolLeg)

	// the failsafe sweep leaves the report's bookkeeping untouched
	report, err := env.router.EpochReport()
	require.NoError(t, err)
	assert.Equal(t, sunrise.Epoch(10), report.Epoch)
	assert.Equal(t, uint64(1), report.Tickets)
}
