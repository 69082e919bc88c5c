// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/router"
	"github.com/sunrise-stake/router/router/venuetest"
	"github.com/sunrise-stake/router/state"
	"github.com/sunrise-stake/router/sunrise"
)

func newSolo(t *testing.T) *Solo {
	t.Helper()

	marinade := venuetest.NewDelegationPool(100_000 * sunrise.LamportsPerSol)
	blaze := venuetest.NewStakePool(100_000 * sunrise.LamportsPerSol)
	gsol := venuetest.NewReceiptMint()

	ctx := accounts.NewContext(sunrise.BytesToAddress([]byte("solo-deployment")), state.New(state.NewMem()))
	engine := router.New(ctx, marinade, blaze, gsol)
	require.NoError(t, engine.RegisterState(&router.Deployment{
		UpdateAuthority:      sunrise.BytesToAddress([]byte("solo-authority")),
		Treasury:             sunrise.BytesToAddress([]byte("solo-treasury")),
		LiqPoolProportion:    10,
		LiqPoolMinProportion: 5,
		MarinadeShareBps:     uint16(sunrise.MarinadeShareBps),
	}))
	_, err := engine.InitEpochReport(0, 0)
	require.NoError(t, err)

	return New(engine, marinade, blaze, gsol, Options{
		Clock:       clockwork.NewFakeClock(),
		EpochLength: time.Second,
		Stakers:     3,
		Seed:        1,
	})
}

func TestSoloEpochCycle(t *testing.T) {
	s := newSolo(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.onEpoch())
	}

	report, err := s.engine.EpochReport()
	require.NoError(t, err)
	assert.Equal(t, sunrise.Epoch(5), report.Epoch)
	// each cycle claims the previous epoch's ticket before ordering at most
	// one new one for the post-unstake pool deficit
	assert.LessOrEqual(t, report.Tickets, uint64(1))

	supply, err := s.gsol.Supply()
	require.NoError(t, err)
	assert.NotZero(t, supply)

	// claimed tickets and ordered deficits never pile up across epochs
	assert.LessOrEqual(t, len(s.marinade.OpenTickets()), 1)
}

func TestSoloRunStopsOnCancel(t *testing.T) {
	s := newSolo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Run(ctx))
}
