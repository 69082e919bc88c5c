// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package yield computes extractable yield per epoch and the proportional
// yield share accrued by locked positions.
package yield

import (
	"github.com/sunrise-stake/router/router/fpmath"
)

// Extractable is the yield available for sweeping to the treasury: the total
// lamport value held across venues, less the receipt supply it backs and the
// yield already extracted this epoch. A momentary dip below issued supply
// (slashing) reads as zero, never negative.
func Extractable(marinadeValue, blazeValue, lpValue, gsolSupply, extractedYield uint64) (uint64, error) {
	held, err := fpmath.Add(marinadeValue, blazeValue)
	if err != nil {
		return 0, err
	}
	if held, err = fpmath.Add(held, lpValue); err != nil {
		return 0, err
	}
	liabilities, err := fpmath.Add(gsolSupply, extractedYield)
	if err != nil {
		return 0, err
	}
	return fpmath.SaturatingSub(held, liabilities), nil
}
