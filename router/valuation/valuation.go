// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package valuation converts venue-native share balances to base-asset value
// and back. All conversions route through fpmath.Proportional; an undefined
// ratio (zero total supply, zero backing) fails hard rather than reading as
// zero value.
package valuation

import (
	"github.com/sunrise-stake/router/router/fpmath"
)

// VenueKind tags the two primary venue families.
type VenueKind uint8

const (
	KindDelegationPool VenueKind = iota + 1
	KindPooledStake
)

// ShareConverter converts between a venue's native share token and lamports.
type ShareConverter interface {
	ValueOfShares(shares uint64) (uint64, error)
	SharesForValue(lamports uint64) (uint64, error)
}

// Handle is a venue polymorphic over {DelegationPool, PooledStake} with a
// uniform conversion capability.
type Handle interface {
	Kind() VenueKind
	ShareConverter
}

// DelegationPoolState is a snapshot of the delegation-pool venue's pricing
// inputs, taken at the start of the instruction.
type DelegationPoolState struct {
	ShareSupply                uint64 // total share-token (mSOL) supply
	ActiveDelegated            uint64 // lamports actively delegated to validators
	CoolingDown                uint64 // ordinary delayed-unstake cooldown lamports
	EmergencyCoolingDown       uint64 // emergency-unstake cooldown lamports
	AvailableReserve           uint64 // undelegated reserve lamports
	CirculatingTicketLiability uint64 // lamports owed to outstanding claim tickets
	RentExemptReserve          uint64 // lamports held back in the liquidity pool's SOL leg
}

// TotalBacking is the lamport value backing the venue's share supply:
// delegated plus cooling-down plus reserve, net of ticket liabilities.
func (s *DelegationPoolState) TotalBacking() (uint64, error) {
	total, err := fpmath.Add(s.ActiveDelegated, s.CoolingDown)
	if err != nil {
		return 0, err
	}
	if total, err = fpmath.Add(total, s.EmergencyCoolingDown); err != nil {
		return 0, err
	}
	if total, err = fpmath.Add(total, s.AvailableReserve); err != nil {
		return 0, err
	}
	return fpmath.Sub(total, s.CirculatingTicketLiability)
}

// ValueOfShares converts a share balance to lamports at the current ratio.
func (s *DelegationPoolState) ValueOfShares(shares uint64) (uint64, error) {
	backing, err := s.TotalBacking()
	if err != nil {
		return 0, err
	}
	return fpmath.Proportional(shares, backing, s.ShareSupply)
}

// SharesForValue converts lamports to shares using the inverse ratio.
func (s *DelegationPoolState) SharesForValue(lamports uint64) (uint64, error) {
	backing, err := s.TotalBacking()
	if err != nil {
		return 0, err
	}
	return fpmath.Proportional(lamports, s.ShareSupply, backing)
}

func (s *DelegationPoolState) Kind() VenueKind {
	return KindDelegationPool
}

// LiquidityPoolState is a snapshot of the venue's SOL/share liquidity pool,
// including the deployment's own LP token holding.
type LiquidityPoolState struct {
	SolLegBalance   uint64 // lamports in the SOL leg
	ShareLegBalance uint64 // share tokens in the share leg
	LpTokenSupply   uint64 // total LP token supply
	OwnedLpTokens   uint64 // LP tokens held by the deployment
	RentExemptGuard uint64 // lamports held back from the SOL leg
}

// PoolValue is the total lamport value of the pool: the SOL leg net of the
// rent-exempt guard, plus the share leg converted at the delegation ratio.
func (lp *LiquidityPoolState) PoolValue(dp *DelegationPoolState) (uint64, error) {
	shareLeg, err := dp.ValueOfShares(lp.ShareLegBalance)
	if err != nil {
		return 0, err
	}
	solLeg, err := fpmath.Sub(lp.SolLegBalance, lp.RentExemptGuard)
	if err != nil {
		return 0, err
	}
	return fpmath.Add(solLeg, shareLeg)
}

// OwnedValue is the lamport value of the deployment's LP token holding.
func (lp *LiquidityPoolState) OwnedValue(dp *DelegationPoolState) (uint64, error) {
	if lp.OwnedLpTokens == 0 {
		return 0, nil
	}
	poolValue, err := lp.PoolValue(dp)
	if err != nil {
		return 0, err
	}
	return fpmath.Proportional(poolValue, lp.OwnedLpTokens, lp.LpTokenSupply)
}

// LpTokensForValue converts a lamport amount into the LP tokens representing
// it at the current pool ratio.
func (lp *LiquidityPoolState) LpTokensForValue(dp *DelegationPoolState, lamports uint64) (uint64, error) {
	poolValue, err := lp.PoolValue(dp)
	if err != nil {
		return 0, err
	}
	return fpmath.Proportional(lamports, lp.LpTokenSupply, poolValue)
}

// PooledHandle wraps a pooled-stake venue's own conversion. The pool's
// withdrawal formula (fees, slashing) is the venue's to implement; the core
// only invokes it.
type PooledHandle struct {
	Converter ShareConverter
}

func (p *PooledHandle) Kind() VenueKind {
	return KindPooledStake
}

func (p *PooledHandle) ValueOfShares(shares uint64) (uint64, error) {
	return p.Converter.ValueOfShares(shares)
}

func (p *PooledHandle) SharesForValue(lamports uint64) (uint64, error) {
	return p.Converter.SharesForValue(lamports)
}
