// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package router

import (
	"github.com/sunrise-stake/router/telemetry"
)

func metricDeposited() telemetry.CountMeter {
	return telemetry.Counter("deposited_lamports_total")
}

func metricUnstaked() telemetry.CountMeter {
	return telemetry.Counter("unstaked_lamports_total")
}

func metricStakeRouted() telemetry.CountVecMeter {
	return telemetry.CounterVec("stake_routed_lamports_total", []string{"venue"})
}

func metricTicketsClaimed() telemetry.CountMeter {
	return telemetry.Counter("tickets_claimed_total")
}

func metricYieldExtracted() telemetry.CountMeter {
	return telemetry.Counter("yield_extracted_lamports_total")
}

func metricGsolSupply() telemetry.GaugeMeter {
	return telemetry.Gauge("gsol_supply")
}
