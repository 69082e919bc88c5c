// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/epochs"
	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/sunrise"
)

// RecoverTickets claims the supplied matured tickets from the report's epoch,
// deposits the proceeds into the liquidity pool, and folds the claims into
// the report. If the claimed value covers the ordered total within the
// recovery margin and every open ticket was supplied, the report rolls
// forward to currentEpoch; otherwise the claims are recorded as partial
// progress and the call can be repeated with the remaining tickets.
//
// Callable only once the wall-clock epoch has advanced past the report's
// recorded epoch.
func (r *Router) RecoverTickets(currentEpoch sunrise.Epoch, tickets []sunrise.Address) (*epochs.EpochReport, error) {
	report, err := r.epochs.MustReport()
	if err != nil {
		return nil, err
	}
	if currentEpoch <= report.Epoch {
		return nil, errors.WithStack(reverts.ErrDelayedUnstakeTicketsNotYetClaimable)
	}
	if uint64(len(tickets)) > report.Tickets {
		return nil, errors.WithStack(reverts.ErrTooManyTicketsClaimed)
	}

	reportEpoch := report.Epoch
	record, err := r.epochs.TicketRecord(reportEpoch)
	if err != nil {
		return nil, err
	}

	var claimedTotal uint64
	for _, addr := range tickets {
		lamports, err := r.marinade.ClaimTicket(addr)
		if err != nil {
			return nil, err
		}
		if record != nil {
			if err := r.epochs.DrainTicket(reportEpoch, lamports); err != nil {
				return nil, err
			}
		}
		if claimedTotal, err = fpmath.Add(claimedTotal, lamports); err != nil {
			return nil, err
		}
	}
	if claimedTotal > 0 {
		if _, err := r.marinade.AddLiquidity(claimedTotal); err != nil {
			return nil, err
		}
	}

	if err := report.ApplyRecovery(uint64(len(tickets)), claimedTotal, currentEpoch); err != nil {
		return nil, err
	}
	if err := r.epochs.SaveReport(report); err != nil {
		return nil, err
	}
	if record != nil && report.Tickets == 0 {
		if err := r.epochs.CloseTicketRecord(reportEpoch); err != nil {
			return nil, err
		}
	}

	metricTicketsClaimed().Add(int64(len(tickets)))
	logger.Info("tickets recovered",
		"reportEpoch", reportEpoch,
		"epoch", report.Epoch,
		"claimedTickets", len(tickets),
		"claimedLamports", claimedTotal,
		"remainingTickets", report.Tickets)
	return report, nil
}

// RecoverMissedEpoch is the failsafe sweep for stray matured tickets after an
// upgrade or a missed crank cycle. It claims the supplied tickets and
// deposits the proceeds into the liquidity pool without touching the report's
// bookkeeping counters. Returns the lamports recovered.
func (r *Router) RecoverMissedEpoch(tickets []sunrise.Address) (uint64, error) {
	var claimedTotal uint64
	for _, addr := range tickets {
		lamports, err := r.marinade.ClaimTicket(addr)
		if err != nil {
			return 0, err
		}
		if claimedTotal, err = fpmath.Add(claimedTotal, lamports); err != nil {
			return 0, err
		}
	}
	if claimedTotal > 0 {
		if _, err := r.marinade.AddLiquidity(claimedTotal); err != nil {
			return 0, err
		}
	}

	metricTicketsClaimed().Add(int64(len(tickets)))
	logger.Warn("missed epoch swept", "tickets", len(tickets), "lamports", claimedTotal)
	return claimedTotal, nil
}
