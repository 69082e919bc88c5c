// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/sunrise-stake/router/router/allocation"
	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/sunrise"
)

// LiquidUnstake redeems lamports of receipt tokens instantly. The liquidity
// pool is drained first, down to its configured minimum proportion of the
// post-burn supply; the residual is liquidly unstaked from whichever primary
// venue holds more value, with any shortfall drawn from the other.
//
// The burn happens before any venue is touched: the receipt token is the
// fund-safety-critical leg, and the host's transaction atomicity restores it
// if a later venue call fails.
func (r *Router) LiquidUnstake(staker sunrise.Address, lamports uint64) (allocation.WithdrawSplit, error) {
	dep, err := r.mustDeployment()
	if err != nil {
		return allocation.WithdrawSplit{}, err
	}
	snap, err := r.snapshot()
	if err != nil {
		return allocation.WithdrawSplit{}, err
	}
	supply, err := r.gsol.Supply()
	if err != nil {
		return allocation.WithdrawSplit{}, err
	}
	supplyAfterBurn, err := fpmath.Sub(supply, lamports)
	if err != nil {
		return allocation.WithdrawSplit{}, err
	}

	split, err := allocation.SplitWithdrawal(
		lamports, snap.lpValue, supplyAfterBurn,
		dep.LiqPoolMinProportion,
		snap.marinadeValue, snap.blazeValue,
	)
	if err != nil {
		return allocation.WithdrawSplit{}, err
	}

	if err := r.gsol.Burn(staker, lamports); err != nil {
		return allocation.WithdrawSplit{}, err
	}

	if split.FromLiquidityPool > 0 {
		lpTokens, err := snap.lp.LpTokensForValue(snap.dp, split.FromLiquidityPool)
		if err != nil {
			return allocation.WithdrawSplit{}, err
		}
		if _, err := r.marinade.RemoveLiquidity(lpTokens); err != nil {
			return allocation.WithdrawSplit{}, err
		}
	}
	if split.FromMarinade > 0 {
		shares, err := snap.dp.SharesForValue(split.FromMarinade)
		if err != nil {
			return allocation.WithdrawSplit{}, err
		}
		if _, err := r.marinade.LiquidUnstake(shares); err != nil {
			return allocation.WithdrawSplit{}, err
		}
		if err := r.ledger.Debit(allocation.VenueMarinade, split.FromMarinade); err != nil {
			return allocation.WithdrawSplit{}, err
		}
	}
	if split.FromBlaze > 0 {
		shares, err := r.blaze.SharesForValue(split.FromBlaze)
		if err != nil {
			return allocation.WithdrawSplit{}, err
		}
		if _, err := r.blaze.WithdrawSol(shares); err != nil {
			return allocation.WithdrawSplit{}, err
		}
		if err := r.ledger.Debit(allocation.VenueBlaze, split.FromBlaze); err != nil {
			return allocation.WithdrawSplit{}, err
		}
	}

	metricUnstaked().Add(int64(lamports))
	metricGsolSupply().Gauge(int64(supplyAfterBurn))
	logger.Debug("liquid unstake",
		"staker", staker,
		"lamports", lamports,
		"fromLiquidityPool", split.FromLiquidityPool,
		"fromMarinade", split.FromMarinade,
		"fromBlaze", split.FromBlaze)
	return split, nil
}
