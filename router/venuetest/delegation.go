// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package venuetest provides deterministic in-memory venue implementations
// for engine tests and the solo simulation mode.
package venuetest

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/valuation"
	"github.com/sunrise-stake/router/router/venue"
	"github.com/sunrise-stake/router/sunrise"
)

// DelegationPool simulates the Marinade-style venue: share pricing from a
// backing pot, a SOL/share liquidity pool, and delayed-unstake tickets that
// mature one epoch after creation.
type DelegationPool struct {
	ShareSupply     uint64
	ActiveDelegated uint64
	Reserve         uint64
	CoolingDown     uint64
	TicketLiability uint64

	Held uint64 // deployment's share balance

	SolLeg    uint64
	ShareLeg  uint64
	LpSupply  uint64
	OwnedLp   uint64
	RentGuard uint64

	// ClaimRoundingLoss is shaved off every ticket claim, reproducing the
	// venue's own share/value rounding.
	ClaimRoundingLoss uint64

	CurrentEpoch sunrise.Epoch

	Payouts map[sunrise.Address]uint64

	tickets      map[sunrise.Address]*venue.Ticket
	ticketSerial uint64
}

var _ venue.DelegationPool = (*DelegationPool)(nil)

// NewDelegationPool seeds a pool at a 1:1 share price with the given backing.
func NewDelegationPool(backing uint64) *DelegationPool {
	return &DelegationPool{
		ShareSupply:     backing,
		ActiveDelegated: backing,
		Payouts:         map[sunrise.Address]uint64{},
		tickets:         map[sunrise.Address]*venue.Ticket{},
	}
}

func (p *DelegationPool) State() (*valuation.DelegationPoolState, error) {
	return &valuation.DelegationPoolState{
		ShareSupply:                p.ShareSupply,
		ActiveDelegated:            p.ActiveDelegated,
		CoolingDown:                p.CoolingDown,
		AvailableReserve:           p.Reserve,
		CirculatingTicketLiability: p.TicketLiability,
	}, nil
}

func (p *DelegationPool) LiquidityPoolState() (*valuation.LiquidityPoolState, error) {
	return &valuation.LiquidityPoolState{
		SolLegBalance:   p.SolLeg,
		ShareLegBalance: p.ShareLeg,
		LpTokenSupply:   p.LpSupply,
		OwnedLpTokens:   p.OwnedLp,
		RentExemptGuard: p.RentGuard,
	}, nil
}

func (p *DelegationPool) HeldShares() (uint64, error) {
	return p.Held, nil
}

func (p *DelegationPool) Deposit(lamports uint64) (uint64, error) {
	st, _ := p.State()
	shares, err := st.SharesForValue(lamports)
	if err != nil {
		return 0, err
	}
	p.ShareSupply += shares
	p.ActiveDelegated += lamports
	p.Held += shares
	return shares, nil
}

func (p *DelegationPool) LiquidUnstake(shares uint64) (uint64, error) {
	if shares > p.Held {
		return 0, errors.New("insufficient held shares")
	}
	st, _ := p.State()
	lamports, err := st.ValueOfShares(shares)
	if err != nil {
		return 0, err
	}
	p.Held -= shares
	p.ShareSupply -= shares
	p.ActiveDelegated -= lamports
	return lamports, nil
}

func (p *DelegationPool) Withdraw(lamports uint64, to sunrise.Address) error {
	st, _ := p.State()
	shares, err := st.SharesForValue(lamports)
	if err != nil {
		return err
	}
	if shares > p.Held {
		return errors.New("insufficient held shares")
	}
	p.Held -= shares
	p.ShareSupply -= shares
	p.ActiveDelegated -= lamports
	p.Payouts[to] += lamports
	return nil
}

func (p *DelegationPool) AddLiquidity(lamports uint64) (uint64, error) {
	var lpTokens uint64
	if p.LpSupply == 0 {
		lpTokens = lamports
	} else {
		st, _ := p.State()
		lp, _ := p.LiquidityPoolState()
		poolValue, err := lp.PoolValue(st)
		if err != nil {
			return 0, err
		}
		if lpTokens, err = fpmath.Proportional(lamports, p.LpSupply, poolValue); err != nil {
			return 0, err
		}
	}
	p.SolLeg += lamports
	p.LpSupply += lpTokens
	p.OwnedLp += lpTokens
	return lpTokens, nil
}

func (p *DelegationPool) RemoveLiquidity(lpTokens uint64) (uint64, error) {
	if lpTokens > p.OwnedLp {
		return 0, errors.New("insufficient lp tokens")
	}
	st, _ := p.State()
	lp, _ := p.LiquidityPoolState()
	poolValue, err := lp.PoolValue(st)
	if err != nil {
		return 0, err
	}
	lamports, err := fpmath.Proportional(poolValue, lpTokens, p.LpSupply)
	if err != nil {
		return 0, err
	}
	if lamports > p.SolLeg {
		return 0, errors.New("sol leg exhausted")
	}
	p.SolLeg -= lamports
	p.LpSupply -= lpTokens
	p.OwnedLp -= lpTokens
	return lamports, nil
}

func (p *DelegationPool) OrderDelayedUnstake(shares uint64) (venue.Ticket, error) {
	if shares > p.Held {
		return venue.Ticket{}, errors.New("insufficient held shares")
	}
	st, _ := p.State()
	lamports, err := st.ValueOfShares(shares)
	if err != nil {
		return venue.Ticket{}, err
	}

	p.Held -= shares
	p.ShareSupply -= shares
	p.ActiveDelegated -= lamports
	p.CoolingDown += lamports
	p.TicketLiability += lamports

	p.ticketSerial++
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], p.ticketSerial)
	ticket := venue.Ticket{
		Address:      sunrise.BytesToAddress(append([]byte("ticket"), seed[:]...)),
		Lamports:     lamports,
		CreatedEpoch: p.CurrentEpoch,
	}
	p.tickets[ticket.Address] = &ticket
	return ticket, nil
}

func (p *DelegationPool) ClaimTicket(addr sunrise.Address) (uint64, error) {
	ticket, ok := p.tickets[addr]
	if !ok {
		return 0, errors.New("unknown ticket")
	}
	if p.CurrentEpoch <= ticket.CreatedEpoch {
		return 0, errors.New("ticket not yet matured")
	}
	delete(p.tickets, addr)

	p.CoolingDown -= ticket.Lamports
	p.TicketLiability -= ticket.Lamports

	return fpmath.SaturatingSub(ticket.Lamports, p.ClaimRoundingLoss), nil
}

// AccrueYield grows the backing pot without minting shares, raising the share
// price the way validator rewards do.
func (p *DelegationPool) AccrueYield(lamports uint64) {
	p.ActiveDelegated += lamports
}

// AdvanceEpoch matures all open tickets.
func (p *DelegationPool) AdvanceEpoch() {
	p.CurrentEpoch++
}

// OpenTickets lists the addresses of unclaimed tickets.
func (p *DelegationPool) OpenTickets() []sunrise.Address {
	out := make([]sunrise.Address, 0, len(p.tickets))
	for addr := range p.tickets {
		out = append(out, addr)
	}
	return out
}
