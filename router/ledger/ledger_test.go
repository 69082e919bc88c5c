// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/router/allocation"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/state"
	"github.com/sunrise-stake/router/sunrise"
)

func newService() *Service {
	ctx := accounts.NewContext(sunrise.BytesToAddress([]byte("deployment")), state.New(state.NewMem()))
	return New(ctx)
}

func TestCreditDebit(t *testing.T) {
	s := newService()

	require.NoError(t, s.Credit(allocation.VenueMarinade, 900))
	require.NoError(t, s.Credit(allocation.VenueBlaze, 100))

	marinade, blaze, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, uint64(900), marinade)
	assert.Equal(t, uint64(100), blaze)

	require.NoError(t, s.Debit(allocation.VenueMarinade, 400))
	balance, err := s.Balance(allocation.VenueMarinade)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), balance)
}

func TestDebitUnderflowFailsClosed(t *testing.T) {
	s := newService()

	require.NoError(t, s.Credit(allocation.VenueBlaze, 10))
	err := s.Debit(allocation.VenueBlaze, 11)
	assert.ErrorIs(t, err, reverts.ErrArithmeticUnderflow)

	// counter untouched after the failed debit
	balance, err := s.Balance(allocation.VenueBlaze)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), balance)
}

func TestUnknownVenue(t *testing.T) {
	s := newService()
	assert.ErrorIs(t, s.Credit(allocation.VenueNone, 1), reverts.ErrUnexpectedAccounts)
	assert.ErrorIs(t, s.Debit(allocation.VenueNone, 1), reverts.ErrUnexpectedAccounts)
}

func TestTransferCapped(t *testing.T) {
	s := newService()

	require.NoError(t, s.Credit(allocation.VenueMarinade, 300))

	// request exceeds the tracked counter: move what is tracked, no underflow
	moved, err := s.Transfer(allocation.VenueMarinade, allocation.VenueBlaze, 500)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), moved)

	marinade, blaze, err := s.Totals()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), marinade)
	assert.Equal(t, uint64(300), blaze)

	// empty source is a no-op
	moved, err = s.Transfer(allocation.VenueMarinade, allocation.VenueBlaze, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), moved)
}

// Randomized credit/debit sequences: counters never wrap and a debit beyond
// the available credit always fails without mutating state.
func TestCounterProperty(t *testing.T) {
	s := newService()
	rng := rand.New(rand.NewSource(3))

	var tracked uint64
	for range 10_000 {
		amount := rng.Uint64() % 1_000_000
		if rng.Intn(2) == 0 {
			require.NoError(t, s.Credit(allocation.VenueMarinade, amount))
			tracked += amount
		} else {
			err := s.Debit(allocation.VenueMarinade, amount)
			if amount > tracked {
				assert.ErrorIs(t, err, reverts.ErrArithmeticUnderflow)
			} else {
				require.NoError(t, err)
				tracked -= amount
			}
		}

		balance, err := s.Balance(allocation.VenueMarinade)
		require.NoError(t, err)
		require.Equal(t, tracked, balance)
	}
}
