// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package venuetest

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/venue"
	"github.com/sunrise-stake/router/sunrise"
)

// ReceiptMint is an in-memory gSOL mint.
type ReceiptMint struct {
	balances map[sunrise.Address]uint64
	supply   uint64
}

var _ venue.ReceiptMint = (*ReceiptMint)(nil)

func NewReceiptMint() *ReceiptMint {
	return &ReceiptMint{balances: map[sunrise.Address]uint64{}}
}

func (m *ReceiptMint) MintTo(owner sunrise.Address, lamports uint64) error {
	m.balances[owner] += lamports
	m.supply += lamports
	return nil
}

func (m *ReceiptMint) Burn(owner sunrise.Address, lamports uint64) error {
	if m.balances[owner] < lamports {
		return errors.New("burn exceeds balance")
	}
	m.balances[owner] -= lamports
	m.supply -= lamports
	return nil
}

func (m *ReceiptMint) Transfer(from, to sunrise.Address, lamports uint64) error {
	if m.balances[from] < lamports {
		return errors.New("transfer exceeds balance")
	}
	m.balances[from] -= lamports
	m.balances[to] += lamports
	return nil
}

func (m *ReceiptMint) BalanceOf(owner sunrise.Address) (uint64, error) {
	return m.balances[owner], nil
}

func (m *ReceiptMint) Supply() (uint64, error) {
	return m.supply, nil
}
