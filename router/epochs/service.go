// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epochs

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/sunrise"
)

var (
	slotEpochReport   = accounts.NameToSlot("epoch-report")
	slotTicketRecords = accounts.NameToSlot("ticket-records")
)

// Service persists the epoch report and per-epoch ticket records in the
// deployment's storage space.
type Service struct {
	report  *accounts.Struct[EpochReport]
	tickets *accounts.Mapping[accounts.U64Key, TicketRecord]
}

func New(ctx *accounts.Context) *Service {
	return &Service{
		report:  accounts.NewStruct[EpochReport](ctx, slotEpochReport),
		tickets: accounts.NewMapping[accounts.U64Key, TicketRecord](ctx, slotTicketRecords),
	}
}

// Report returns the deployment's epoch report, nil if never initialised.
func (s *Service) Report() (*EpochReport, error) {
	return s.report.Get()
}

// MustReport returns the report or fails when it is missing.
func (s *Service) MustReport() (*EpochReport, error) {
	report, err := s.report.Get()
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errors.WithStack(reverts.ErrInvalidEpochReportAccount)
	}
	return report, nil
}

// InitReport creates the report. Creation is once-only; re-running the
// registration against an existing report fails.
func (s *Service) InitReport(report *EpochReport) error {
	existing, err := s.report.Get()
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.WithStack(reverts.ErrInvalidEpochReportAccount)
	}
	return s.report.Set(report)
}

// SaveReport persists report mutations.
func (s *Service) SaveReport(report *EpochReport) error {
	return s.report.Set(report)
}

// TicketRecord returns the ticket-management record for an epoch, nil if
// none was ever opened.
func (s *Service) TicketRecord(epoch sunrise.Epoch) (*TicketRecord, error) {
	return s.tickets.Get(accounts.U64Key(epoch))
}

// RegisterTicket records a newly ordered delayed-unstake ticket under the
// epoch's management record, creating the record on first use.
func (s *Service) RegisterTicket(epoch sunrise.Epoch, lamports uint64) error {
	record, err := s.tickets.Get(accounts.U64Key(epoch))
	if err != nil {
		return err
	}
	if record == nil {
		record = &TicketRecord{Epoch: epoch}
	}
	record.Tickets++
	record.TotalOrdered += lamports
	return s.tickets.Set(accounts.U64Key(epoch), record)
}

// DrainTicket removes one claimed ticket from the epoch's management record.
func (s *Service) DrainTicket(epoch sunrise.Epoch, lamports uint64) error {
	record, err := s.tickets.Get(accounts.U64Key(epoch))
	if err != nil {
		return err
	}
	if record == nil || record.Tickets == 0 {
		return errors.WithStack(reverts.ErrTooManyTicketsClaimed)
	}
	record.Tickets--
	if record.TotalOrdered >= lamports {
		record.TotalOrdered -= lamports
	} else {
		record.TotalOrdered = 0
	}
	return s.tickets.Set(accounts.U64Key(epoch), record)
}

// CloseTicketRecord reclaims a drained record's storage. Closing a record
// with open tickets is refused.
func (s *Service) CloseTicketRecord(epoch sunrise.Epoch) error {
	record, err := s.tickets.Get(accounts.U64Key(epoch))
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	if !record.IsDrained() {
		return errors.WithStack(reverts.ErrRemainingUnclaimableTicketAmount)
	}
	return s.tickets.Delete(accounts.U64Key(epoch))
}
