// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/sunrise-stake/router/router/allocation"
	"github.com/sunrise-stake/router/router/venue"
	"github.com/sunrise-stake/router/sunrise"
)

// Deposit accepts lamports from the staker, tops the liquidity pool up toward
// its target proportion, routes the remainder to the primary venue with the
// larger deficit, and mints receipt tokens for the full amount. The receipt
// token represents 1:1 base-asset value at mint time regardless of the split.
func (r *Router) Deposit(staker sunrise.Address, lamports uint64) (allocation.DepositSplit, error) {
	dep, err := r.mustDeployment()
	if err != nil {
		return allocation.DepositSplit{}, err
	}
	snap, err := r.snapshot()
	if err != nil {
		return allocation.DepositSplit{}, err
	}
	supply, err := r.gsol.Supply()
	if err != nil {
		return allocation.DepositSplit{}, err
	}

	split, err := allocation.SplitDeposit(lamports, supply, snap.lpValue, dep.LiqPoolProportion)
	if err != nil {
		return allocation.DepositSplit{}, err
	}

	if split.ToLiquidityPool > 0 {
		if _, err := r.marinade.AddLiquidity(split.ToLiquidityPool); err != nil {
			return allocation.DepositSplit{}, err
		}
	}

	chosen := allocation.VenueNone
	if split.ToStake > 0 {
		if chosen, err = allocation.ChooseStakeVenue(
			snap.marinadeValue, snap.blazeValue, split.ToStake, uint64(dep.MarinadeShareBps),
		); err != nil {
			return allocation.DepositSplit{}, err
		}
		switch chosen {
		case allocation.VenueMarinade:
			if _, err := r.marinade.Deposit(split.ToStake); err != nil {
				return allocation.DepositSplit{}, err
			}
		case allocation.VenueBlaze:
			if _, err := r.blaze.DepositSol(split.ToStake); err != nil {
				return allocation.DepositSplit{}, err
			}
		}
		if err := r.ledger.Credit(chosen, split.ToStake); err != nil {
			return allocation.DepositSplit{}, err
		}
		metricStakeRouted().AddWithLabel(int64(split.ToStake), map[string]string{"venue": chosen.String()})
	}

	if err := r.gsol.MintTo(staker, lamports); err != nil {
		return allocation.DepositSplit{}, err
	}

	metricDeposited().Add(int64(lamports))
	metricGsolSupply().Gauge(int64(supply + lamports))
	logger.Debug("deposit",
		"staker", staker,
		"lamports", lamports,
		"toLiquidityPool", split.ToLiquidityPool,
		"toStake", split.ToStake,
		"venue", chosen.String())
	return split, nil
}

// DepositStakeAccount moves an externally delegated stake position into the
// pooled-stake venue whole and mints receipt tokens for its lamport value.
// The position never passes through liquid lamports, so no split applies and
// the full amount is attributed to the pooled-stake venue.
func (r *Router) DepositStakeAccount(staker sunrise.Address, position venue.DelegatedPosition) (uint64, error) {
	if _, err := r.mustDeployment(); err != nil {
		return 0, err
	}

	shares, err := r.blaze.DepositStakeAccount(position)
	if err != nil {
		return 0, err
	}
	if err := r.ledger.Credit(allocation.VenueBlaze, position.Lamports); err != nil {
		return 0, err
	}
	if err := r.gsol.MintTo(staker, position.Lamports); err != nil {
		return 0, err
	}

	metricDeposited().Add(int64(position.Lamports))
	metricStakeRouted().AddWithLabel(int64(position.Lamports), map[string]string{"venue": allocation.VenueBlaze.String()})
	logger.Debug("stake account deposited",
		"staker", staker,
		"voteAccount", position.VoteAccount,
		"lamports", position.Lamports,
		"shares", shares)
	return shares, nil
}
