// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/sunrise-stake/router/router/allocation"
	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/sunrise"
)

// TriggerRebalance is the epoch-boundary crank. It claims the supplied
// matured tickets from the previous epoch's management record and deposits
// the proceeds into the liquidity pool, then re-evaluates the pool's deficit
// against its target proportion and, if one remains, orders a delayed-unstake
// ticket from the delegation-pool venue for the deficit, registered under the
// current epoch's management record.
//
// The new ticket must be created before the previous epoch's record is
// closed: closing is a balance-affecting operation the host's conservation
// check rejects when ordered after.
func (r *Router) TriggerRebalance(currentEpoch sunrise.Epoch, tickets []sunrise.Address) error {
	dep, err := r.mustDeployment()
	if err != nil {
		return err
	}

	report, err := r.epochs.Report()
	if err != nil {
		return err
	}

	var claimedTotal, claimedCount uint64
	if currentEpoch > 0 && len(tickets) > 0 {
		prevEpoch := currentEpoch - 1
		record, err := r.epochs.TicketRecord(prevEpoch)
		if err != nil {
			return err
		}
		for _, addr := range tickets {
			lamports, err := r.marinade.ClaimTicket(addr)
			if err != nil {
				return err
			}
			if record != nil {
				if err := r.epochs.DrainTicket(prevEpoch, lamports); err != nil {
					return err
				}
			}
			claimedTotal, err = fpmath.Add(claimedTotal, lamports)
			if err != nil {
				return err
			}
			claimedCount++
		}
		if claimedTotal > 0 {
			if _, err := r.marinade.AddLiquidity(claimedTotal); err != nil {
				return err
			}
		}
		// keep the report's ticket counters in step with the record
		if report != nil && report.Epoch == prevEpoch && claimedCount > 0 {
			if err := report.ApplyRecovery(claimedCount, claimedTotal, currentEpoch); err != nil {
				return err
			}
			if err := r.epochs.SaveReport(report); err != nil {
				return err
			}
		}
		metricTicketsClaimed().Add(int64(claimedCount))
	}

	// a cleanly drained report rolls forward here so tickets ordered below
	// land in the current epoch's counters
	if report != nil && report.Tickets == 0 && report.Epoch+1 == currentEpoch {
		report.Epoch = currentEpoch
		if err := r.epochs.SaveReport(report); err != nil {
			return err
		}
	}

	ordered, err := r.orderDeficitUnstake(currentEpoch, dep)
	if err != nil {
		return err
	}
	if report != nil && report.Epoch == currentEpoch && ordered > 0 {
		if err := report.AddTickets(1, ordered); err != nil {
			return err
		}
		if err := r.epochs.SaveReport(report); err != nil {
			return err
		}
	}

	if currentEpoch > 0 {
		if err := r.epochs.CloseTicketRecord(currentEpoch - 1); err != nil {
			return err
		}
	}

	logger.Info("rebalance",
		"epoch", currentEpoch,
		"claimedTickets", claimedCount,
		"claimedLamports", claimedTotal,
		"orderedLamports", ordered)
	return nil
}

// orderDeficitUnstake orders a delayed-unstake ticket covering the liquidity
// pool's deficit, if any. Returns the lamports ordered, zero when the pool is
// at or above target or the venue holds nothing to unstake.
func (r *Router) orderDeficitUnstake(currentEpoch sunrise.Epoch, dep *Deployment) (uint64, error) {
	snap, err := r.snapshot()
	if err != nil {
		return 0, err
	}
	supply, err := r.gsol.Supply()
	if err != nil {
		return 0, err
	}
	deficit, err := allocation.LiquidityPoolDeficit(supply, snap.lpValue, dep.LiqPoolProportion)
	if err != nil {
		return 0, err
	}
	// in-flight tickets of this epoch already cover part of the deficit
	if record, err := r.epochs.TicketRecord(currentEpoch); err != nil {
		return 0, err
	} else if record != nil {
		deficit = fpmath.SaturatingSub(deficit, record.TotalOrdered)
	}
	if deficit == 0 {
		return 0, nil
	}

	shares, err := snap.dp.SharesForValue(deficit)
	if err != nil {
		return 0, err
	}
	held, err := r.marinade.HeldShares()
	if err != nil {
		return 0, err
	}
	if shares = fpmath.Min(shares, held); shares == 0 {
		return 0, nil
	}

	ticket, err := r.marinade.OrderDelayedUnstake(shares)
	if err != nil {
		return 0, err
	}
	if err := r.epochs.RegisterTicket(currentEpoch, ticket.Lamports); err != nil {
		return 0, err
	}
	return ticket.Lamports, nil
}
