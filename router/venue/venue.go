// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package venue declares the contracts of the external staking venues the
// router allocates capital to. The venues themselves are out of scope: the
// router invokes them synchronously and treats any error as fatal to the
// instruction, relying on the host's atomic-transaction semantics instead of
// its own rollback.
package venue

import (
	"github.com/sunrise-stake/router/router/valuation"
	"github.com/sunrise-stake/router/sunrise"
)

// Ticket is a venue-issued claim on base-asset value that matures after a
// cooldown epoch boundary.
type Ticket struct {
	Address      sunrise.Address
	Lamports     uint64
	CreatedEpoch sunrise.Epoch
}

// DelegationPool is the primary liquidity-pool/validator-delegation venue
// (the "Marinade"-style venue).
type DelegationPool interface {
	// Deposit stakes lamports and returns the share tokens received.
	Deposit(lamports uint64) (shares uint64, err error)
	// LiquidUnstake swaps shares back to lamports immediately, at the
	// venue's liquid-unstake rate.
	LiquidUnstake(shares uint64) (lamports uint64, err error)
	// Withdraw moves lamports out of the deployment's liquid holding to the
	// given account. Used for yield extraction to the treasury.
	Withdraw(lamports uint64, to sunrise.Address) error

	// AddLiquidity deposits lamports into the venue's SOL/share liquidity
	// pool, returning LP tokens.
	AddLiquidity(lamports uint64) (lpTokens uint64, err error)
	// RemoveLiquidity burns LP tokens and returns the lamport value released.
	RemoveLiquidity(lpTokens uint64) (lamports uint64, err error)

	// OrderDelayedUnstake opens a delayed-unstake ticket for the given
	// shares. The ticket matures at the next epoch boundary.
	OrderDelayedUnstake(shares uint64) (Ticket, error)
	// ClaimTicket redeems a matured ticket for lamports.
	ClaimTicket(ticket sunrise.Address) (lamports uint64, err error)

	// HeldShares is the deployment's share-token balance at the venue.
	HeldShares() (uint64, error)
	// State snapshots the venue's pricing inputs.
	State() (*valuation.DelegationPoolState, error)
	// LiquidityPoolState snapshots the venue's liquidity pool, including the
	// deployment's LP token holding.
	LiquidityPoolState() (*valuation.LiquidityPoolState, error)
}

// DelegatedPosition is an externally delegated stake position moved in or out
// of a pooled-stake venue whole, without passing through liquid lamports.
type DelegatedPosition struct {
	VoteAccount sunrise.Address
	Lamports    uint64
}

// StakePool is an auxiliary pooled-stake venue (the "Blaze"-style venue). Its
// share/value conversion embeds the pool's own fee and slashing math; the
// router never reimplements it.
type StakePool interface {
	DepositSol(lamports uint64) (shares uint64, err error)
	WithdrawSol(shares uint64) (lamports uint64, err error)
	DepositStakeAccount(position DelegatedPosition) (shares uint64, err error)
	WithdrawStakeAccount(shares uint64) (DelegatedPosition, error)

	// HeldShares is the deployment's pool-token balance at the venue.
	HeldShares() (uint64, error)

	valuation.ShareConverter
}

// ReceiptMint is the gSOL mint: the fungible receipt token issued 1:1 against
// deposited base-asset value.
type ReceiptMint interface {
	MintTo(owner sunrise.Address, lamports uint64) error
	Burn(owner sunrise.Address, lamports uint64) error
	Transfer(from, to sunrise.Address, lamports uint64) error
	BalanceOf(owner sunrise.Address) (uint64, error)
	Supply() (uint64, error)
}
