// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/registry"
	"github.com/sunrise-stake/router/router/allocation"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/router/venue"
	"github.com/sunrise-stake/router/sunrise"
)

func (r *Router) requireAuthority(signer sunrise.Address) (*Deployment, error) {
	dep, err := r.mustDeployment()
	if err != nil {
		return nil, err
	}
	if signer != dep.UpdateAuthority {
		return nil, errors.WithStack(reverts.ErrInvalidUpdateAuthority)
	}
	return dep, nil
}

// RegisterState creates the deployment's configuration record. Registration
// is once-only; the record is mutated afterwards through UpdateState.
func (r *Router) RegisterState(dep *Deployment) error {
	if err := dep.Validate(); err != nil {
		return err
	}
	existing, err := r.deployment.Get()
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Wrap(reverts.ErrUnexpectedAccounts, "deployment already registered")
	}
	if err := r.checkMintSupply(dep); err != nil {
		return err
	}
	if err := r.deployment.Set(dep); err != nil {
		return err
	}
	logger.Info("deployment registered",
		"authority", dep.UpdateAuthority,
		"liqPoolProportion", dep.LiqPoolProportion,
		"marinadeShareBps", dep.MarinadeShareBps)
	return nil
}

// UpdateState replaces the configuration record. Requires the recorded update
// authority's signature.
func (r *Router) UpdateState(signer sunrise.Address, updated *Deployment) error {
	if _, err := r.requireAuthority(signer); err != nil {
		return err
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := r.checkMintSupply(updated); err != nil {
		return err
	}
	return r.deployment.Set(updated)
}

// RegisterStakePool adds a pooled-stake venue to the deployment's registry
// and returns its index. The registry is bounded; registration past the cap
// fails.
func (r *Router) RegisterStakePool(signer sunrise.Address, entry *registry.PoolEntry) (uint64, error) {
	if _, err := r.requireAuthority(signer); err != nil {
		return 0, err
	}
	index, err := r.pools.Register(entry)
	if err != nil {
		return 0, err
	}
	logger.Info("stake pool registered", "pool", entry.Pool, "index", index)
	return index, nil
}

// RegisteredPool returns the registry entry at index, nil if out of range.
func (r *Router) RegisteredPool(index uint64) (*registry.PoolEntry, error) {
	return r.pools.Get(index)
}

// PoolAuthority is the token-account authority shared by every registered
// pooled-stake venue.
func (r *Router) PoolAuthority() *venue.Signer {
	return r.pools.SharedAuthority()
}

// MoveStake liquidly moves lamports of backing from one primary venue to the
// other without changing receipt supply. The ledger transfer is capped at the
// source counter, so moving yield-grown surplus does not abort on a spurious
// underflow. Returns the lamports actually re-deposited.
func (r *Router) MoveStake(signer sunrise.Address, from, to allocation.Venue, lamports uint64) (uint64, error) {
	if _, err := r.requireAuthority(signer); err != nil {
		return 0, err
	}
	if from == to || from == allocation.VenueNone || to == allocation.VenueNone {
		return 0, errors.Wrap(reverts.ErrUnexpectedAccounts, "invalid venue pair")
	}

	snap, err := r.snapshot()
	if err != nil {
		return 0, err
	}

	var released uint64
	switch from {
	case allocation.VenueMarinade:
		shares, err := snap.dp.SharesForValue(lamports)
		if err != nil {
			return 0, err
		}
		if released, err = r.marinade.LiquidUnstake(shares); err != nil {
			return 0, err
		}
	case allocation.VenueBlaze:
		shares, err := r.blaze.SharesForValue(lamports)
		if err != nil {
			return 0, err
		}
		if released, err = r.blaze.WithdrawSol(shares); err != nil {
			return 0, err
		}
	}

	switch to {
	case allocation.VenueMarinade:
		if _, err := r.marinade.Deposit(released); err != nil {
			return 0, err
		}
	case allocation.VenueBlaze:
		if _, err := r.blaze.DepositSol(released); err != nil {
			return 0, err
		}
	}

	moved, err := r.ledger.Transfer(from, to, released)
	if err != nil {
		return 0, err
	}
	logger.Info("stake moved", "from", from, "to", to, "released", released, "attributed", moved)
	return released, nil
}
