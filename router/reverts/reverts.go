// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the structured errors surfaced by the router. Every
// error here aborts the whole instruction; the host guarantees no partial
// state mutation survives a failed transaction, so there is no local recovery.
package reverts

import (
	"errors"
)

// ErrRevert is a structured error code surfaced to the caller transaction.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// IsRevertErr reports whether err carries a revert error anywhere in its chain.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Arithmetic faults. Always fatal, never retried.
var (
	ErrArithmeticOverflow  = New("arithmetic overflow")
	ErrArithmeticUnderflow = New("arithmetic underflow")
	ErrCalculationFailure  = New("calculation failure")
)

// State-precondition violations: the caller attempted an operation out of
// sequence relative to the epoch/ticket state machine.
var (
	ErrInvalidEpochReportAccount            = New("invalid epoch report account")
	ErrLockAccountNotLocked                 = New("lock account not locked")
	ErrLockAccountAlreadyLocked             = New("lock account already locked")
	ErrLockAccountAlreadyUpdated            = New("lock account already updated for this epoch")
	ErrLockAccountNotUpdated                = New("lock account not updated for this epoch")
	ErrLockEpochNotElapsed                  = New("lock epoch has not yet elapsed")
	ErrDelayedUnstakeTicketsNotYetClaimable = New("delayed unstake tickets not yet claimable")
	ErrTooManyTicketsClaimed                = New("too many tickets claimed")
	ErrRemainingUnclaimableTicketAmount     = New("remaining unclaimable ticket amount")
)

// Authorization and consistency faults.
var (
	ErrInvalidUpdateAuthority = New("invalid update authority")
	ErrUnexpectedMintSupply   = New("unexpected mint supply")
	ErrUnexpectedAccounts     = New("unexpected accounts")
	ErrPoolRegistryFull       = New("pool registry is full")
)
