// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package epochs holds the epoch report and delayed-unstake ticket records,
// and the state machine governing how they advance:
//
//	NoReport -> Active(tickets=N, ordered=M) -> Drained(tickets=0) -> RolledForward
//
// A report can only roll forward once every open ticket of its epoch has been
// claimed and the claimed value covers the ordered total within the recovery
// margin.
package epochs

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/sunrise"
)

// EpochReport is the per-deployment report record, rolled forward epoch to
// epoch.
type EpochReport struct {
	Epoch                sunrise.Epoch
	Tickets              uint64 // open delayed-unstake tickets for Epoch
	TotalOrderedLamports uint64 // lamports ordered for delayed unstake in Epoch
	ExtractableYield     uint64 // computed, not yet withdrawn
	ExtractedYield       uint64 // already swept to the treasury, cumulative
	CurrentGsolSupply    uint64 // receipt-token supply snapshot
}

// TotalYield is the epoch's extractable plus extracted yield, the baseline
// lock positions accrue against.
func (r *EpochReport) TotalYield() (uint64, error) {
	return fpmath.Add(r.ExtractableYield, r.ExtractedYield)
}

// CanUpdate reports whether the report may be refreshed at currentEpoch: it
// must already be at the current epoch, or exactly one epoch behind with all
// tickets drained.
func (r *EpochReport) CanUpdate(currentEpoch sunrise.Epoch) bool {
	if r.Epoch == currentEpoch {
		return true
	}
	return r.Epoch+1 == currentEpoch && r.Tickets == 0
}

// AddTickets registers newly ordered delayed-unstake value.
func (r *EpochReport) AddTickets(count, lamports uint64) error {
	tickets, err := fpmath.Add(r.Tickets, count)
	if err != nil {
		return err
	}
	ordered, err := fpmath.Add(r.TotalOrderedLamports, lamports)
	if err != nil {
		return err
	}
	r.Tickets, r.TotalOrderedLamports = tickets, ordered
	return nil
}

// ApplyRecovery folds a batch of ticket claims into the report.
//
// If the claimed value covers the ordered total within the recovery margin
// and every open ticket was supplied, the report rolls forward to
// currentEpoch with zeroed counters. Claimed value covering the total while
// tickets remain unsupplied is a consistency violation. Otherwise the claims
// are partial progress: counters decrement and the report stays open for a
// follow-up call.
func (r *EpochReport) ApplyRecovery(claimedTickets, claimedLamports uint64, currentEpoch sunrise.Epoch) error {
	if claimedTickets > r.Tickets {
		return errors.WithStack(reverts.ErrTooManyTicketsClaimed)
	}

	threshold := fpmath.SaturatingSub(r.TotalOrderedLamports, sunrise.RecoveryMarginLamports)
	if claimedLamports >= threshold {
		if claimedTickets != r.Tickets {
			return errors.WithStack(reverts.ErrRemainingUnclaimableTicketAmount)
		}
		r.Epoch = currentEpoch
		r.Tickets = 0
		r.TotalOrderedLamports = 0
		return nil
	}

	r.Tickets -= claimedTickets
	r.TotalOrderedLamports = fpmath.SaturatingSub(r.TotalOrderedLamports, claimedLamports)
	return nil
}

// TicketRecord tracks the delayed-unstake tickets opened in one epoch. It
// must be fully drained before the next epoch's record can close it out and
// reclaim its storage.
type TicketRecord struct {
	Epoch        sunrise.Epoch
	Tickets      uint64
	TotalOrdered uint64
}

func (t *TicketRecord) IsDrained() bool {
	return t.Tickets == 0
}
