// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopDefault(t *testing.T) {
	// the default service accepts measurements without a registry
	Counter("deposits_total").Add(1)
	CounterVec("stake_routed_total", []string{"venue"}).AddWithLabel(1, map[string]string{"venue": "marinade"})
	Gauge("gsol_supply").Gauge(42)
	assert.Nil(t, Handler())
}

func TestPrometheusTelemetry(t *testing.T) {
	InitializePrometheusTelemetry()

	Counter("deposits_total").Add(3)
	Gauge("gsol_supply").Gauge(1_000)

	// meters are cached by name
	assert.Same(t, Counter("deposits_total"), Counter("deposits_total"))

	server := httptest.NewServer(Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "sunrise_router_deposits_total 3"))
	assert.True(t, strings.Contains(string(body), "sunrise_router_gsol_supply 1000"))
}
