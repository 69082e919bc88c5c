// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/sunrise"
)

var slotDeployment = accounts.NameToSlot("deployment-state")

// Deployment is the per-deployment configuration record, created once at
// registration and mutated by admin instructions only. The per-venue minted
// counters live in their own cells (see the ledger service) so config updates
// never rewrite fund-accounting state.
type Deployment struct {
	UpdateAuthority sunrise.Address
	GsolMint        sunrise.Address
	Treasury        sunrise.Address
	MarinadeState   sunrise.Address // delegation-pool venue config account
	BlazeState      sunrise.Address // pooled-stake venue config account

	LiqPoolProportion    uint8  // target liquidity-pool share of supply, 0-100
	LiqPoolMinProportion uint8  // floor the pool may be drained down to, 0-100
	MarinadeShareBps     uint16 // staked-capital split routed to the delegation pool

	// LegacyGsolSupply is receipt supply predating per-venue accounting.
	// The minted counters track total supply minus this remainder.
	LegacyGsolSupply uint64
}

// Validate checks the configuration's internal consistency.
func (d *Deployment) Validate() error {
	if d.LiqPoolProportion > uint8(sunrise.ProportionScale) || d.LiqPoolMinProportion > uint8(sunrise.ProportionScale) {
		return errors.Wrap(reverts.ErrUnexpectedAccounts, "proportion out of range")
	}
	if d.LiqPoolMinProportion > d.LiqPoolProportion {
		return errors.Wrap(reverts.ErrUnexpectedAccounts, "min proportion above target")
	}
	if d.MarinadeShareBps > uint16(sunrise.BpsScale) {
		return errors.Wrap(reverts.ErrUnexpectedAccounts, "venue split out of range")
	}
	return nil
}
