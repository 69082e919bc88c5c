// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package allocation decides how deposits and withdrawals are split across
// the liquidity pool and the two primary staking venues. All functions are
// pure; callers apply the resulting amounts to venues and the ledger.
package allocation

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/sunrise"
)

// Venue identifies a primary staking venue in a split result.
type Venue uint8

const (
	VenueNone Venue = iota
	VenueMarinade
	VenueBlaze
)

func (v Venue) String() string {
	switch v {
	case VenueMarinade:
		return "marinade"
	case VenueBlaze:
		return "blaze"
	default:
		return "none"
	}
}

// DepositSplit is the result of splitting an incoming deposit.
type DepositSplit struct {
	ToLiquidityPool uint64
	ToStake         uint64
}

// SplitDeposit tops the liquidity pool up toward its target share and routes
// the rest to staking. The pool is never over-funded and never receives more
// than the deposit itself; if accrued yield has already pushed it past target,
// nothing is added.
func SplitDeposit(deposit, receiptSupply, lpValue uint64, liqPoolProportion uint8) (DepositSplit, error) {
	supplyAfter, err := fpmath.Add(receiptSupply, deposit)
	if err != nil {
		return DepositSplit{}, err
	}
	preferred, err := fpmath.Proportional(supplyAfter, uint64(liqPoolProportion), sunrise.ProportionScale)
	if err != nil {
		return DepositSplit{}, err
	}

	toPool := fpmath.Min(deposit, fpmath.SaturatingSub(preferred, lpValue))
	return DepositSplit{
		ToLiquidityPool: toPool,
		ToStake:         deposit - toPool,
	}, nil
}

// ChooseStakeVenue routes a stake amount to whichever primary venue has the
// larger deficit relative to its target share of the post-deposit total.
func ChooseStakeVenue(marinadeValue, blazeValue, toStake uint64, marinadeShareBps uint64) (Venue, error) {
	total, err := fpmath.Add(marinadeValue, blazeValue)
	if err != nil {
		return VenueNone, err
	}
	if total, err = fpmath.Add(total, toStake); err != nil {
		return VenueNone, err
	}

	marinadeTarget, err := fpmath.Proportional(total, marinadeShareBps, sunrise.BpsScale)
	if err != nil {
		return VenueNone, err
	}
	blazeTarget := total - marinadeTarget

	marinadeDeficit := fpmath.SaturatingSub(marinadeTarget, marinadeValue)
	blazeDeficit := fpmath.SaturatingSub(blazeTarget, blazeValue)

	if blazeDeficit > marinadeDeficit {
		return VenueBlaze, nil
	}
	return VenueMarinade, nil
}

// WithdrawSplit is the result of splitting an instant withdrawal.
type WithdrawSplit struct {
	FromLiquidityPool uint64
	FromMarinade      uint64
	FromBlaze         uint64
}

// SplitWithdrawal drains the liquidity pool first, down to (but not below) its
// configured minimum proportion of the post-burn supply, then splits the
// residual greedily across the primary venues: whichever holds more value
// absorbs the unstake first, with any shortfall drawn from the other. No
// venue is ever asked to release more than it holds.
func SplitWithdrawal(
	amount, lpValue, receiptSupplyAfterBurn uint64,
	liqPoolMinProportion uint8,
	marinadeValue, blazeValue uint64,
) (WithdrawSplit, error) {
	minPreferred, err := fpmath.Proportional(receiptSupplyAfterBurn, uint64(liqPoolMinProportion), sunrise.ProportionScale)
	if err != nil {
		return WithdrawSplit{}, err
	}

	fromPool := fpmath.Min(amount, fpmath.SaturatingSub(lpValue, minPreferred))
	residual := amount - fromPool
	if residual == 0 {
		return WithdrawSplit{FromLiquidityPool: fromPool}, nil
	}

	// richer venue first, shortfall from the other
	first, second := marinadeValue, blazeValue
	swapped := blazeValue > marinadeValue
	if swapped {
		first, second = blazeValue, marinadeValue
	}

	fromFirst := fpmath.Min(residual, first)
	fromSecond := residual - fromFirst
	if fromSecond > second {
		return WithdrawSplit{}, errors.Wrap(reverts.ErrCalculationFailure, "insufficient liquid value across venues")
	}

	split := WithdrawSplit{FromLiquidityPool: fromPool}
	if swapped {
		split.FromBlaze, split.FromMarinade = fromFirst, fromSecond
	} else {
		split.FromMarinade, split.FromBlaze = fromFirst, fromSecond
	}
	return split, nil
}

// LiquidityPoolDeficit is the lamport amount needed to bring the pool back to
// its target proportion of the current receipt supply.
func LiquidityPoolDeficit(receiptSupply, lpValue uint64, liqPoolProportion uint8) (uint64, error) {
	preferred, err := fpmath.Proportional(receiptSupply, uint64(liqPoolProportion), sunrise.ProportionScale)
	if err != nil {
		return 0, err
	}
	return fpmath.SaturatingSub(preferred, lpValue), nil
}
