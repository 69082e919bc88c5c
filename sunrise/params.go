// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sunrise

// Epoch is the host network's coarse time unit. Most cooldowns and reporting
// cycles are epoch-scoped.
type Epoch = uint64

// Constants of the liquid-staking router.
const (
	LamportsPerSol uint64 = 1_000_000_000 // lamports in one unit of the base asset

	// ProportionScale is the denominator for the 0-100 target-proportion
	// parameters held in the deployment state.
	ProportionScale uint64 = 100

	// MarinadeShareBps is the default split of staked capital routed to the
	// delegation-pool venue, in basis points. The remainder goes to the
	// pooled-stake venue.
	MarinadeShareBps uint64 = 7500
	BpsScale         uint64 = 10_000

	// RecoveryMarginLamports is the tolerance applied when matching claimed
	// delayed-unstake ticket value against the nominal ordered total. Venue
	// share/value conversions round down, so claims can fall a few lamports
	// short of the ordered figure. Tunable; changing it changes when an epoch
	// report is considered fully recovered.
	RecoveryMarginLamports uint64 = 10

	// UnstakeFeeHaircut models the estimated unstake fee applied when a lock
	// position's yield share is realized. Advisory math on an already-computed
	// integer yield amount; the float here is a known residual imprecision.
	UnstakeFeeHaircut = 0.997

	// MaxRegisteredPools bounds the pooled-stake venue registry.
	MaxRegisteredPools = 8
)
