// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sunrise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/blake2b"
)

func TestBlake2b(t *testing.T) {
	data := []byte("hello world")
	assert.Equal(t, Bytes32(blake2b.Sum256(data)), Blake2b(data))

	// the multi-slice path hashes the concatenation
	assert.Equal(t, Blake2b(data), Blake2b([]byte("hello"), []byte(" world")))

	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
}
