// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sunrise

import (
	"encoding/hex"
	"errors"
	"strings"
)

// Bytes32 array of 32 bytes, used for storage slot keys and opaque identifiers.
type Bytes32 [32]byte

// String implements stringer.
func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// Bytes returns byte slice form of Bytes32.
func (b Bytes32) Bytes() []byte {
	return b[:]
}

// IsZero returns if Bytes32 has all zero bytes.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// ParseBytes32 converts a "0x" prefixed hex string into Bytes32.
func ParseBytes32(s string) (Bytes32, error) {
	if len(s) != 32*2+2 {
		return Bytes32{}, errors.New("invalid length")
	}
	if strings.ToLower(s[:2]) != "0x" {
		return Bytes32{}, errors.New("invalid prefix")
	}
	var b Bytes32
	if _, err := hex.Decode(b[:], []byte(s[2:])); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

// BytesToBytes32 converts bytes slice into Bytes32.
// If b is larger than 32 bytes, b will be cropped (from the left).
// If b is smaller than 32 bytes, b will be extended (from the left).
func BytesToBytes32(b []byte) Bytes32 {
	var b32 Bytes32
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(b32[32-len(b):], b)
	return b32
}
