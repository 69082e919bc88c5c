// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fpmath implements the proportional/ratio arithmetic every valuation
// calculation routes through. Intermediates are widened beyond 64 bits so the
// multiply can never overflow; only the final narrowing is checked.
package fpmath

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/reverts"
)

// Proportional computes floor(amount * numerator / denominator).
// A zero denominator is a hard stop, not a silent zero.
func Proportional(amount, numerator, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, errors.WithStack(reverts.ErrCalculationFailure)
	}
	product := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(numerator))
	product.Div(product, uint256.NewInt(denominator))
	if !product.IsUint64() {
		return 0, errors.WithStack(reverts.ErrArithmeticOverflow)
	}
	return product.Uint64(), nil
}

// Add returns a+b, failing closed on overflow.
func Add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.WithStack(reverts.ErrArithmeticOverflow)
	}
	return a + b, nil
}

// Sub returns a-b, failing closed on underflow.
func Sub(a, b uint64) (uint64, error) {
	if a < b {
		return 0, errors.WithStack(reverts.ErrArithmeticUnderflow)
	}
	return a - b, nil
}

// SaturatingSub returns a-b, or 0 when b exceeds a.
func SaturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// Min returns the smaller of a and b.
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
