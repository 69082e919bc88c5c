// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/router/venue"
	"github.com/sunrise-stake/router/router/yield"
	"github.com/sunrise-stake/router/sunrise"
)

var lockTokenSeed = []byte("lock-gsol-account")

// lockTokenAccount derives the deployment-owned holding account that keeps an
// owner's locked receipt tokens.
func (r *Router) lockTokenAccount(owner sunrise.Address) sunrise.Address {
	addr, _ := venue.DeriveAuthority(r.ctx.Address(), lockTokenSeed, owner.Bytes())
	return addr
}

// LockGsol moves lamports of the owner's receipt tokens into a locked holding
// that accrues a proportional share of system-wide yield. One live lock per
// owner; the yield baseline is taken from a report at the current epoch.
func (r *Router) LockGsol(owner sunrise.Address, lamports uint64, currentEpoch sunrise.Epoch) (*yield.LockAccount, error) {
	if _, err := r.mustDeployment(); err != nil {
		return nil, err
	}
	report, err := r.epochs.MustReport()
	if err != nil {
		return nil, err
	}
	if report.Epoch != currentEpoch {
		return nil, errors.WithStack(reverts.ErrInvalidEpochReportAccount)
	}

	account, err := r.locks.Get(owner)
	if err != nil {
		return nil, err
	}
	if account != nil && account.IsLocked() {
		return nil, errors.WithStack(reverts.ErrLockAccountAlreadyLocked)
	}

	tokenAccount := r.lockTokenAccount(owner)
	if err := r.gsol.Transfer(owner, tokenAccount, lamports); err != nil {
		return nil, err
	}

	baseline, err := report.TotalYield()
	if err != nil {
		return nil, err
	}
	startEpoch := currentEpoch
	if account == nil {
		account = &yield.LockAccount{Owner: owner, TokenAccount: tokenAccount}
	}
	account.StartEpoch = &startEpoch
	account.UpdatedToEpoch = currentEpoch
	account.YieldAtLockStart = baseline

	if err := r.locks.Save(account); err != nil {
		return nil, err
	}
	logger.Debug("gsol locked", "owner", owner, "lamports", lamports, "epoch", currentEpoch)
	return account, nil
}

// UpdateLockAccount folds the epoch's yield into the owner's lock position
// and advances its baseline. Must be called once per epoch, in sequence,
// against a report at the current epoch.
func (r *Router) UpdateLockAccount(owner sunrise.Address, currentEpoch sunrise.Epoch) (*yield.LockAccount, error) {
	report, err := r.epochs.MustReport()
	if err != nil {
		return nil, err
	}
	account, err := r.mustLockAccount(owner)
	if err != nil {
		return nil, err
	}

	balance, err := r.gsol.BalanceOf(account.TokenAccount)
	if err != nil {
		return nil, err
	}
	if err := account.Advance(report, balance, currentEpoch); err != nil {
		return nil, err
	}
	if err := r.locks.Save(account); err != nil {
		return nil, err
	}
	logger.Debug("lock account updated",
		"owner", owner,
		"epoch", currentEpoch,
		"accrued", account.YieldAccrued)
	return account, nil
}

// AddLockedGsol adds lamports to an existing locked position. The position
// must already have been updated for the current epoch, otherwise the added
// balance would retroactively claim yield accrued before it was locked.
func (r *Router) AddLockedGsol(owner sunrise.Address, lamports uint64, currentEpoch sunrise.Epoch) error {
	account, err := r.mustLockAccount(owner)
	if err != nil {
		return err
	}
	if account.UpdatedToEpoch != currentEpoch {
		return errors.WithStack(reverts.ErrLockAccountNotUpdated)
	}
	return r.gsol.Transfer(owner, account.TokenAccount, lamports)
}

// UnlockGsol clears the owner's lock and returns the held receipt tokens.
// Permitted only after at least one full epoch has elapsed past lock start.
func (r *Router) UnlockGsol(owner sunrise.Address, currentEpoch sunrise.Epoch) error {
	account, err := r.mustLockAccount(owner)
	if err != nil {
		return err
	}
	if currentEpoch <= *account.StartEpoch {
		return errors.WithStack(reverts.ErrLockEpochNotElapsed)
	}

	balance, err := r.gsol.BalanceOf(account.TokenAccount)
	if err != nil {
		return err
	}
	if balance > 0 {
		if err := r.gsol.Transfer(account.TokenAccount, owner, balance); err != nil {
			return err
		}
	}

	account.StartEpoch = nil
	if err := r.locks.Save(account); err != nil {
		return err
	}
	logger.Debug("gsol unlocked", "owner", owner, "lamports", balance, "epoch", currentEpoch)
	return nil
}

func (r *Router) mustLockAccount(owner sunrise.Address) (*yield.LockAccount, error) {
	account, err := r.locks.Get(owner)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsLocked() {
		return nil, errors.WithStack(reverts.ErrLockAccountNotLocked)
	}
	return account, nil
}
