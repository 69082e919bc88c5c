// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sunrise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressRoundTrip(t *testing.T) {
	addr := BytesToAddress([]byte("treasury"))
	parsed, err := ParseAddress(addr.String())
	assert.NoError(t, err)
	assert.Equal(t, addr, *parsed)
}

func TestParseAddressInvalid(t *testing.T) {
	_, err := ParseAddress("not-base58-0OIl")
	assert.Error(t, err)

	// valid base58, wrong length
	_, err = ParseAddress("3mJr7AoUXx2Wqd")
	assert.Error(t, err)
}

func TestBytesToAddressCrop(t *testing.T) {
	long := make([]byte, 40)
	long[39] = 0x7f
	addr := BytesToAddress(long)
	assert.Equal(t, byte(0x7f), addr[31])

	short := BytesToAddress([]byte{0x01})
	assert.Equal(t, byte(0x01), short[31])
	assert.False(t, short.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestBytes32RoundTrip(t *testing.T) {
	b := BytesToBytes32([]byte("epoch-report"))
	parsed, err := ParseBytes32(b.String())
	assert.NoError(t, err)
	assert.Equal(t, b, parsed)
	assert.False(t, b.IsZero())
}
