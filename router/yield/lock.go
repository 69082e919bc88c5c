// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package yield

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/router/epochs"
	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/sunrise"
)

// LockAccount is a voluntarily locked gSOL holding accruing a proportional
// share of system-wide yield, one record per (deployment, owner).
type LockAccount struct {
	Owner            sunrise.Address
	TokenAccount     sunrise.Address // the locked-gSOL holding account
	StartEpoch       *uint64         `rlp:"nil"` // unset until locked
	UpdatedToEpoch   sunrise.Epoch
	YieldAtLockStart uint64 // cumulative system yield baseline
	YieldAccrued     uint64 // yield attributed to the owner so far
}

// IsLocked reports whether the account currently holds a live lock.
func (l *LockAccount) IsLocked() bool {
	return l.StartEpoch != nil
}

// AccruedShare computes the owner's share of yield earned since the baseline:
// (totalYield - baseline) * lockedBalance / gsolSupply, net of the estimated
// unstake-fee haircut. The haircut multiply is advisory float math on an
// already-computed integer yield amount; its sub-lamport rounding is a known
// residual imprecision.
func AccruedShare(totalYield, baseline, lockedBalance, gsolSupply uint64) (uint64, error) {
	if gsolSupply == 0 {
		return 0, errors.WithStack(reverts.ErrCalculationFailure)
	}
	delta := fpmath.SaturatingSub(totalYield, baseline)
	share := float64(lockedBalance) / float64(gsolSupply)
	return uint64(float64(delta) * share * sunrise.UnstakeFeeHaircut), nil
}

// Advance folds the epoch's yield into the position and moves the baseline
// forward. It must be called once per epoch, in sequence, against a report at
// the current epoch; the epoch-comparison guard rejects a second call.
func (l *LockAccount) Advance(report *epochs.EpochReport, lockedBalance uint64, currentEpoch sunrise.Epoch) error {
	if !l.IsLocked() {
		return errors.WithStack(reverts.ErrLockAccountNotLocked)
	}
	if report.Epoch != currentEpoch {
		return errors.WithStack(reverts.ErrInvalidEpochReportAccount)
	}
	if l.UpdatedToEpoch >= currentEpoch {
		return errors.WithStack(reverts.ErrLockAccountAlreadyUpdated)
	}

	totalYield, err := report.TotalYield()
	if err != nil {
		return err
	}
	accrued, err := AccruedShare(totalYield, l.YieldAtLockStart, lockedBalance, report.CurrentGsolSupply)
	if err != nil {
		return err
	}
	if l.YieldAccrued, err = fpmath.Add(l.YieldAccrued, accrued); err != nil {
		return err
	}
	l.YieldAtLockStart = totalYield
	l.UpdatedToEpoch = currentEpoch
	return nil
}

var slotLockAccounts = accounts.NameToSlot("lock-accounts")

type addressKey sunrise.Address

func (k addressKey) Bytes() []byte {
	return sunrise.Address(k).Bytes()
}

// LockService persists lock accounts in the deployment's storage space.
type LockService struct {
	locks *accounts.Mapping[addressKey, LockAccount]
}

func NewLockService(ctx *accounts.Context) *LockService {
	return &LockService{
		locks: accounts.NewMapping[addressKey, LockAccount](ctx, slotLockAccounts),
	}
}

// Get returns the owner's lock account, nil if none exists.
func (s *LockService) Get(owner sunrise.Address) (*LockAccount, error) {
	return s.locks.Get(addressKey(owner))
}

func (s *LockService) Save(account *LockAccount) error {
	return s.locks.Set(addressKey(account.Owner), account)
}
