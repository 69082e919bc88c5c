// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/epochs"
	"github.com/sunrise-stake/router/router/fpmath"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/router/yield"
	"github.com/sunrise-stake/router/sunrise"
)

// InitEpochReport creates the deployment's epoch report at currentEpoch,
// seeding extractable yield from a fresh computation and recording an
// admin-attested already-extracted baseline. Fails if a report already
// exists; the report is rolled forward from then on, never re-created.
func (r *Router) InitEpochReport(currentEpoch sunrise.Epoch, extractedSoFar uint64) (*epochs.EpochReport, error) {
	if _, err := r.mustDeployment(); err != nil {
		return nil, err
	}
	extractable, supply, err := r.extractableYield(extractedSoFar)
	if err != nil {
		return nil, err
	}

	report := &epochs.EpochReport{
		Epoch:             currentEpoch,
		ExtractableYield:  extractable,
		ExtractedYield:    extractedSoFar,
		CurrentGsolSupply: supply,
	}
	if err := r.epochs.InitReport(report); err != nil {
		return nil, err
	}
	logger.Info("epoch report initialised", "epoch", currentEpoch, "extractable", extractable)
	return report, nil
}

// UpdateEpochReport recomputes extractable yield and refreshes the supply
// snapshot, rolling the report forward to currentEpoch. Permitted only when
// the report is already at the current epoch, or exactly one epoch behind
// with every ticket drained.
func (r *Router) UpdateEpochReport(currentEpoch sunrise.Epoch) (*epochs.EpochReport, error) {
	report, err := r.epochs.MustReport()
	if err != nil {
		return nil, err
	}
	if !report.CanUpdate(currentEpoch) {
		return nil, errors.WithStack(reverts.ErrRemainingUnclaimableTicketAmount)
	}

	extractable, supply, err := r.extractableYield(report.ExtractedYield)
	if err != nil {
		return nil, err
	}
	report.Epoch = currentEpoch
	report.ExtractableYield = extractable
	report.CurrentGsolSupply = supply

	if err := r.epochs.SaveReport(report); err != nil {
		return nil, err
	}
	metricGsolSupply().Gauge(int64(supply))
	logger.Debug("epoch report updated", "epoch", currentEpoch, "extractable", extractable, "supply", supply)
	return report, nil
}

// ExtractYield withdraws the full extractable yield for the current epoch
// from the delegation-pool venue directly to the treasury, and records it in
// the epoch report's extracted accumulator within the same instruction. The
// two must never be split: recording without withdrawing (or the reverse)
// would make the report misstate extracted yield relative to reality.
func (r *Router) ExtractYield(currentEpoch sunrise.Epoch) (uint64, error) {
	dep, err := r.mustDeployment()
	if err != nil {
		return 0, err
	}
	report, err := r.epochs.MustReport()
	if err != nil {
		return 0, err
	}
	if report.Epoch != currentEpoch {
		return 0, errors.WithStack(reverts.ErrInvalidEpochReportAccount)
	}

	amount, supply, err := r.extractableYield(report.ExtractedYield)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}

	if err := r.marinade.Withdraw(amount, dep.Treasury); err != nil {
		return 0, err
	}
	if report.ExtractedYield, err = fpmath.Add(report.ExtractedYield, amount); err != nil {
		return 0, err
	}
	report.ExtractableYield = 0
	report.CurrentGsolSupply = supply
	if err := r.epochs.SaveReport(report); err != nil {
		return 0, err
	}

	metricYieldExtracted().Add(int64(amount))
	logger.Info("yield extracted", "epoch", currentEpoch, "lamports", amount, "treasury", dep.Treasury)
	return amount, nil
}

// extractableYield computes the yield currently available for sweeping: the
// total lamport value held across venues less the receipt supply it backs and
// the yield already extracted this epoch.
func (r *Router) extractableYield(extracted uint64) (amount, supply uint64, err error) {
	snap, err := r.snapshot()
	if err != nil {
		return 0, 0, err
	}
	if supply, err = r.gsol.Supply(); err != nil {
		return 0, 0, err
	}
	amount, err = yield.Extractable(snap.marinadeValue, snap.blazeValue, snap.lpValue, supply, extracted)
	return amount, supply, err
}
