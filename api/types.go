// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"github.com/sunrise-stake/router/registry"
	"github.com/sunrise-stake/router/router"
	"github.com/sunrise-stake/router/router/epochs"
	"github.com/sunrise-stake/router/router/yield"
	"github.com/sunrise-stake/router/sunrise"
)

// Deployment is the JSON view of the configuration record plus the minted
// counters.
type Deployment struct {
	UpdateAuthority      string `json:"updateAuthority"`
	GsolMint             string `json:"gsolMint"`
	Treasury             string `json:"treasury"`
	MarinadeState        string `json:"marinadeState"`
	BlazeState           string `json:"blazeState"`
	LiqPoolProportion    uint8  `json:"liqPoolProportion"`
	LiqPoolMinProportion uint8  `json:"liqPoolMinProportion"`
	MarinadeShareBps     uint16 `json:"marinadeShareBps"`
	LegacyGsolSupply     uint64 `json:"legacyGsolSupply"`
	MarinadeMintedGsol   uint64 `json:"marinadeMintedGsol"`
	BlazeMintedGsol      uint64 `json:"blazeMintedGsol"`
}

func convertDeployment(dep *router.Deployment, marinadeMinted, blazeMinted uint64) *Deployment {
	return &Deployment{
		UpdateAuthority:      dep.UpdateAuthority.String(),
		GsolMint:             dep.GsolMint.String(),
		Treasury:             dep.Treasury.String(),
		MarinadeState:        dep.MarinadeState.String(),
		BlazeState:           dep.BlazeState.String(),
		LiqPoolProportion:    dep.LiqPoolProportion,
		LiqPoolMinProportion: dep.LiqPoolMinProportion,
		MarinadeShareBps:     dep.MarinadeShareBps,
		LegacyGsolSupply:     dep.LegacyGsolSupply,
		MarinadeMintedGsol:   marinadeMinted,
		BlazeMintedGsol:      blazeMinted,
	}
}

// EpochReport is the JSON view of the epoch report.
type EpochReport struct {
	Epoch                sunrise.Epoch `json:"epoch"`
	Tickets              uint64        `json:"tickets"`
	TotalOrderedLamports uint64        `json:"totalOrderedLamports"`
	ExtractableYield     uint64        `json:"extractableYield"`
	ExtractedYield       uint64        `json:"extractedYield"`
	CurrentGsolSupply    uint64        `json:"currentGsolSupply"`
}

func convertEpochReport(report *epochs.EpochReport) *EpochReport {
	return &EpochReport{
		Epoch:                report.Epoch,
		Tickets:              report.Tickets,
		TotalOrderedLamports: report.TotalOrderedLamports,
		ExtractableYield:     report.ExtractableYield,
		ExtractedYield:       report.ExtractedYield,
		CurrentGsolSupply:    report.CurrentGsolSupply,
	}
}

// LockAccount is the JSON view of a lock position.
type LockAccount struct {
	Owner          string        `json:"owner"`
	TokenAccount   string        `json:"tokenAccount"`
	Locked         bool          `json:"locked"`
	StartEpoch     *uint64       `json:"startEpoch,omitempty"`
	UpdatedToEpoch sunrise.Epoch `json:"updatedToEpoch"`
	YieldAccrued   uint64        `json:"yieldAccrued"`
}

func convertLockAccount(account *yield.LockAccount) *LockAccount {
	return &LockAccount{
		Owner:          account.Owner.String(),
		TokenAccount:   account.TokenAccount.String(),
		Locked:         account.IsLocked(),
		StartEpoch:     account.StartEpoch,
		UpdatedToEpoch: account.UpdatedToEpoch,
		YieldAccrued:   account.YieldAccrued,
	}
}

// PoolEntry is the JSON view of a registered pooled-stake venue.
type PoolEntry struct {
	Index             uint64 `json:"index"`
	Pool              string `json:"pool"`
	TokenAccount      string `json:"tokenAccount"`
	LookupTableOffset uint8  `json:"lookupTableOffset"`
}

func convertPoolEntry(index uint64, entry *registry.PoolEntry) *PoolEntry {
	return &PoolEntry{
		Index:             index,
		Pool:              entry.Pool.String(),
		TokenAccount:      entry.TokenAccount.String(),
		LookupTableOffset: entry.LookupTableOffset,
	}
}
