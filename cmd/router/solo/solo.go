// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solo runs the engine against in-memory venue simulators, driving
// deposit and unstake traffic plus the epoch-boundary cranks on a ticker. It
// exists for development and demos; nothing here touches a real venue.
package solo

import (
	"context"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sunrise-stake/router/log"
	"github.com/sunrise-stake/router/router"
	"github.com/sunrise-stake/router/router/venuetest"
	"github.com/sunrise-stake/router/sunrise"
)

var logger = log.WithContext("pkg", "solo")

// Solo drives one simulated deployment.
type Solo struct {
	engine   *router.Router
	marinade *venuetest.DelegationPool
	blaze    *venuetest.StakePool
	gsol     *venuetest.ReceiptMint

	clock       clockwork.Clock
	epochLength time.Duration

	epoch   sunrise.Epoch
	stakers []sunrise.Address
	rng     *rand.Rand
}

// Options configures a solo run.
type Options struct {
	Clock       clockwork.Clock
	EpochLength time.Duration
	Stakers     int
	Seed        int64
}

// New wires a solo runner. The engine must already be registered and its
// epoch report initialised at epoch zero.
func New(
	engine *router.Router,
	marinade *venuetest.DelegationPool,
	blaze *venuetest.StakePool,
	gsol *venuetest.ReceiptMint,
	opts Options,
) *Solo {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.EpochLength <= 0 {
		opts.EpochLength = 10 * time.Second
	}
	if opts.Stakers <= 0 {
		opts.Stakers = 4
	}

	stakers := make([]sunrise.Address, opts.Stakers)
	for i := range stakers {
		stakers[i] = sunrise.BytesToAddress([]byte{'s', 'o', 'l', 'o', byte(i)})
	}
	return &Solo{
		engine:      engine,
		marinade:    marinade,
		blaze:       blaze,
		gsol:        gsol,
		clock:       opts.Clock,
		epochLength: opts.EpochLength,
		stakers:     stakers,
		rng:         rand.New(rand.NewSource(opts.Seed)), //#nosec G404
	}
}

// Run advances one simulated epoch per tick until the context is cancelled.
func (s *Solo) Run(ctx context.Context) error {
	logger.Info("solo started", "epochLength", s.epochLength, "stakers", len(s.stakers))
	ticker := s.clock.NewTicker(s.epochLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("solo stopped", "epoch", s.epoch)
			return nil
		case <-ticker.Chan():
			if err := s.onEpoch(); err != nil {
				return err
			}
		}
	}
}

// onEpoch is one epoch boundary: age the venue, accrue simulated rewards,
// move some user traffic, then run the cranks in their production order.
func (s *Solo) onEpoch() error {
	s.epoch++
	s.marinade.AdvanceEpoch()

	// ~2bps of the pot per epoch, in the ballpark of staking rewards
	s.marinade.AccrueYield(s.marinade.ActiveDelegated / 5000)
	s.blaze.AccrueYield(s.blaze.TotalLamports / 5000)

	if err := s.traffic(); err != nil {
		return err
	}

	// every open venue ticket was ordered before this boundary, so all are
	// matured and claimable
	if err := s.engine.TriggerRebalance(s.epoch, s.marinade.OpenTickets()); err != nil {
		return err
	}
	if _, err := s.engine.UpdateEpochReport(s.epoch); err != nil {
		return err
	}
	extracted, err := s.engine.ExtractYield(s.epoch)
	if err != nil {
		return err
	}

	supply, err := s.gsol.Supply()
	if err != nil {
		return err
	}
	logger.Info("epoch complete", "epoch", s.epoch, "gsolSupply", supply, "extracted", extracted)
	return nil
}

func (s *Solo) traffic() error {
	for _, staker := range s.stakers {
		amount := uint64(s.rng.Intn(10)+1) * sunrise.LamportsPerSol / 10
		if _, err := s.engine.Deposit(staker, amount); err != nil {
			return err
		}
	}

	// one staker cashes part of their holding back out
	staker := s.stakers[s.rng.Intn(len(s.stakers))]
	balance, err := s.gsol.BalanceOf(staker)
	if err != nil {
		return err
	}
	if balance > 1 {
		if _, err := s.engine.LiquidUnstake(staker, balance/2); err != nil {
			return err
		}
	}
	return nil
}
