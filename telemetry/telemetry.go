// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package telemetry

import "net/http"

// telemetry is a singleton service that provides global access to a set of
// meters. It wraps multiple implementations and defaults to a no-op one.
var telemetry = defaultNoopTelemetry()

// Telemetry defines the interface for telemetry service implementations.
type Telemetry interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHandler() http.Handler
}

// Handler returns the http handler for retrieving metrics.
func Handler() http.Handler {
	return telemetry.GetOrCreateHandler()
}

// CountMeter is a cumulative metric that represents a single monotonically
// increasing counter.
type CountMeter interface {
	Add(int64)
}

func Counter(name string) CountMeter { return telemetry.GetOrCreateCountMeter(name) }

// CountVecMeter is a labeled cumulative counter.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

func CounterVec(name string, labels []string) CountVecMeter {
	return telemetry.GetOrCreateCountVecMeter(name, labels)
}

// GaugeMeter is a metric that can arbitrarily go up and down.
type GaugeMeter interface {
	Gauge(int64)
}

func Gauge(name string) GaugeMeter {
	return telemetry.GetOrCreateGaugeMeter(name)
}
