// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger maintains the per-venue minted-gsol counters: the single
// source of truth for how much of the receipt-token supply is attributable to
// each staking venue.
package ledger

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/router/allocation"
	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/reverts"
)

var (
	slotMarinadeMinted = accounts.NameToSlot("marinade-minted-gsol")
	slotBlazeMinted    = accounts.NameToSlot("blaze-minted-gsol")
)

// Service tracks the minted counters in the deployment's storage space.
type Service struct {
	marinadeMinted *accounts.Uint64
	blazeMinted    *accounts.Uint64
}

func New(ctx *accounts.Context) *Service {
	return &Service{
		marinadeMinted: accounts.NewUint64(ctx, slotMarinadeMinted),
		blazeMinted:    accounts.NewUint64(ctx, slotBlazeMinted),
	}
}

func (s *Service) cell(venue allocation.Venue) (*accounts.Uint64, error) {
	switch venue {
	case allocation.VenueMarinade:
		return s.marinadeMinted, nil
	case allocation.VenueBlaze:
		return s.blazeMinted, nil
	default:
		return nil, errors.Wrap(reverts.ErrUnexpectedAccounts, "unknown venue")
	}
}

// Balance returns the minted counter for the venue.
func (s *Service) Balance(venue allocation.Venue) (uint64, error) {
	cell, err := s.cell(venue)
	if err != nil {
		return 0, err
	}
	return cell.Get()
}

// Totals returns the marinade and blaze counters.
func (s *Service) Totals() (marinade, blaze uint64, err error) {
	if marinade, err = s.marinadeMinted.Get(); err != nil {
		return 0, 0, err
	}
	blaze, err = s.blazeMinted.Get()
	return marinade, blaze, err
}

// Credit increases the venue's counter, failing closed on overflow.
func (s *Service) Credit(venue allocation.Venue, amount uint64) error {
	cell, err := s.cell(venue)
	if err != nil {
		return err
	}
	return cell.Add(amount)
}

// Debit decreases the venue's counter, failing closed on underflow.
func (s *Service) Debit(venue allocation.Venue, amount uint64) error {
	cell, err := s.cell(venue)
	if err != nil {
		return err
	}
	return cell.Sub(amount)
}

// Transfer moves attribution between venues without changing receipt supply.
// The debit leg is capped at the source counter: organic yield can grow a
// venue's real backing past its tracked nominal value, and a rebalance of
// that surplus must not abort on spurious underflow. Returns the amount
// actually moved.
func (s *Service) Transfer(from, to allocation.Venue, amount uint64) (uint64, error) {
	fromCell, err := s.cell(from)
	if err != nil {
		return 0, err
	}
	toCell, err := s.cell(to)
	if err != nil {
		return 0, err
	}

	available, err := fromCell.Get()
	if err != nil {
		return 0, err
	}
	moved := fpmath.Min(amount, available)
	if moved == 0 {
		return 0, nil
	}

	if err := fromCell.Sub(moved); err != nil {
		return 0, err
	}
	return moved, toCell.Add(moved)
}
