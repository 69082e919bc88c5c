// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package router is the multi-venue capital allocation and accounting engine.
// It accepts base-asset deposits, mints the gSOL receipt token 1:1, spreads
// the underlying capital across a delegation-pool venue, a pooled-stake venue
// and the delegation venue's liquidity pool, and reconciles delayed-unstake
// cycles across epoch boundaries.
//
// Every operation is synchronous and relies on the host's atomic-transaction
// semantics: an error aborts the whole instruction and no partial accounting
// mutation survives.
package router

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/log"
	"github.com/sunrise-stake/router/registry"
	"github.com/sunrise-stake/router/router/epochs"
	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/ledger"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/router/valuation"
	"github.com/sunrise-stake/router/router/venue"
	"github.com/sunrise-stake/router/router/yield"
	"github.com/sunrise-stake/router/sunrise"
)

var logger = log.WithContext("pkg", "router")

func SetLogger(l log.Logger) {
	logger = l
}

var mintAuthoritySeed = []byte("gsol-mint-authority")

// Router drives a single liquid-staking deployment. All persistent state
// lives in the deployment's storage space; the venue collaborators are
// invoked synchronously and treated as external services.
type Router struct {
	ctx        *accounts.Context
	deployment *accounts.Struct[Deployment]

	ledger *ledger.Service
	epochs *epochs.Service
	locks  *yield.LockService
	pools  *registry.Service

	marinade venue.DelegationPool
	blaze    venue.StakePool
	gsol     venue.ReceiptMint

	mintAuthority *venue.Signer
}

// New creates a router over the deployment's storage context and its venue
// collaborators.
func New(ctx *accounts.Context, marinade venue.DelegationPool, blaze venue.StakePool, gsol venue.ReceiptMint) *Router {
	return &Router{
		ctx:        ctx,
		deployment: accounts.NewStruct[Deployment](ctx, slotDeployment),

		ledger: ledger.New(ctx),
		epochs: epochs.New(ctx),
		locks:  yield.NewLockService(ctx),
		pools:  registry.New(ctx),

		marinade: marinade,
		blaze:    blaze,
		gsol:     gsol,

		mintAuthority: venue.NewSigner(ctx.Address(), mintAuthoritySeed),
	}
}

// Deployment returns the configuration record, nil if never registered.
func (r *Router) Deployment() (*Deployment, error) {
	return r.deployment.Get()
}

func (r *Router) mustDeployment() (*Deployment, error) {
	dep, err := r.deployment.Get()
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, errors.Wrap(reverts.ErrUnexpectedAccounts, "deployment not registered")
	}
	return dep, nil
}

// checkMintSupply verifies the receipt supply covers the per-venue minted
// counters plus the configured legacy remainder, refusing a configuration
// that claims more pre-accounting supply than the mint ever issued. The
// liquidity-pool leg of deposits is untracked and rebalance flows let real
// backing drift past tracked nominal value, so this runs on admin
// configuration writes only, never in the deposit or unstake path.
func (r *Router) checkMintSupply(dep *Deployment) error {
	marinade, blaze, err := r.ledger.Totals()
	if err != nil {
		return err
	}
	supply, err := r.gsol.Supply()
	if err != nil {
		return err
	}
	tracked, err := fpmath.Add(marinade, blaze)
	if err != nil {
		return err
	}
	if tracked, err = fpmath.Add(tracked, dep.LegacyGsolSupply); err != nil {
		return err
	}
	if tracked > supply {
		return errors.Wrapf(reverts.ErrUnexpectedMintSupply,
			"tracked %d exceeds receipt supply %d", tracked, supply)
	}
	return nil
}

// EpochReport returns the deployment's epoch report, nil if never initialised.
func (r *Router) EpochReport() (*epochs.EpochReport, error) {
	return r.epochs.Report()
}

// LockAccount returns the owner's lock position, nil if none exists.
func (r *Router) LockAccount(owner sunrise.Address) (*yield.LockAccount, error) {
	return r.locks.Get(owner)
}

// MintedTotals returns the per-venue minted-gsol counters.
func (r *Router) MintedTotals() (marinade, blaze uint64, err error) {
	return r.ledger.Totals()
}

// MintAuthority is the derived authority the receipt mint is controlled by.
func (r *Router) MintAuthority() *venue.Signer {
	return r.mintAuthority
}

// snapshot captures every venue's pricing state and the deployment's value
// held at each, all taken at the top of an instruction.
type snapshot struct {
	dp *valuation.DelegationPoolState
	lp *valuation.LiquidityPoolState

	marinadeValue uint64 // value of held delegation-pool shares
	blazeValue    uint64 // value of held pooled-stake shares
	lpValue       uint64 // value of held liquidity-pool tokens
}

func (r *Router) snapshot() (*snapshot, error) {
	dp, err := r.marinade.State()
	if err != nil {
		return nil, err
	}
	lp, err := r.marinade.LiquidityPoolState()
	if err != nil {
		return nil, err
	}

	held, err := r.marinade.HeldShares()
	if err != nil {
		return nil, err
	}
	marinadeValue := uint64(0)
	if held > 0 {
		if marinadeValue, err = dp.ValueOfShares(held); err != nil {
			return nil, err
		}
	}

	blazeHeld, err := r.blaze.HeldShares()
	if err != nil {
		return nil, err
	}
	blazeValue := uint64(0)
	if blazeHeld > 0 {
		if blazeValue, err = r.blaze.ValueOfShares(blazeHeld); err != nil {
			return nil, err
		}
	}

	lpValue, err := lp.OwnedValue(dp)
	if err != nil {
		return nil, err
	}

	return &snapshot{
		dp:            dp,
		lp:            lp,
		marinadeValue: marinadeValue,
		blazeValue:    blazeValue,
		lpValue:       lpValue,
	}, nil
}
