// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package venuetest

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/venue"
)

// StakePool simulates a Blaze-style pooled-stake venue. Its conversion embeds
// a flat withdrawal fee, standing in for the pool's own fee schedule.
type StakePool struct {
	ShareSupply   uint64
	TotalLamports uint64
	Held          uint64 // deployment's pool-token balance

	WithdrawalFeeBps uint64
}

var _ venue.StakePool = (*StakePool)(nil)

// NewStakePool seeds a pool at a 1:1 share price with the given backing.
func NewStakePool(backing uint64) *StakePool {
	return &StakePool{
		ShareSupply:   backing,
		TotalLamports: backing,
	}
}

func (p *StakePool) ValueOfShares(shares uint64) (uint64, error) {
	gross, err := fpmath.Proportional(shares, p.TotalLamports, p.ShareSupply)
	if err != nil {
		return 0, err
	}
	fee, err := fpmath.Proportional(gross, p.WithdrawalFeeBps, 10_000)
	if err != nil {
		return 0, err
	}
	return gross - fee, nil
}

func (p *StakePool) SharesForValue(lamports uint64) (uint64, error) {
	return fpmath.Proportional(lamports, p.ShareSupply, p.TotalLamports)
}

func (p *StakePool) HeldShares() (uint64, error) {
	return p.Held, nil
}

func (p *StakePool) DepositSol(lamports uint64) (uint64, error) {
	shares, err := p.SharesForValue(lamports)
	if err != nil {
		return 0, err
	}
	p.ShareSupply += shares
	p.TotalLamports += lamports
	p.Held += shares
	return shares, nil
}

func (p *StakePool) WithdrawSol(shares uint64) (uint64, error) {
	if shares > p.Held {
		return 0, errors.New("insufficient held shares")
	}
	lamports, err := p.ValueOfShares(shares)
	if err != nil {
		return 0, err
	}
	p.Held -= shares
	p.ShareSupply -= shares
	p.TotalLamports -= lamports
	return lamports, nil
}

func (p *StakePool) DepositStakeAccount(position venue.DelegatedPosition) (uint64, error) {
	shares, err := p.SharesForValue(position.Lamports)
	if err != nil {
		return 0, err
	}
	p.ShareSupply += shares
	p.TotalLamports += position.Lamports
	p.Held += shares
	return shares, nil
}

func (p *StakePool) WithdrawStakeAccount(shares uint64) (venue.DelegatedPosition, error) {
	lamports, err := p.WithdrawSol(shares)
	if err != nil {
		return venue.DelegatedPosition{}, err
	}
	return venue.DelegatedPosition{Lamports: lamports}, nil
}

// AccrueYield grows the backing pot without minting shares.
func (p *StakePool) AccrueYield(lamports uint64) {
	p.TotalLamports += lamports
}
