// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package venue

import (
	"github.com/sunrise-stake/router/sunrise"
)

// Signer is the capability to act as a derived authority. It is passed
// explicitly to the venue-call layer; there is no ambient signing.
type Signer struct {
	Authority sunrise.Address
	Bump      uint8
	seeds     [][]byte
}

// Seeds returns the seed path the authority was derived from, with the bump
// appended.
func (s *Signer) Seeds() [][]byte {
	out := make([][]byte, 0, len(s.seeds)+1)
	out = append(out, s.seeds...)
	return append(out, []byte{s.Bump})
}

// DeriveAuthority deterministically derives a program authority address from
// a seed path. The same (program, seeds) pair always yields the same address
// and bump, so callers can pre-derive and verify.
func DeriveAuthority(program sunrise.Address, seeds ...[]byte) (sunrise.Address, uint8) {
	bump := uint8(255)
	h := sunrise.NewBlake2b()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write([]byte{bump})
	h.Write(program.Bytes())
	h.Write([]byte("DerivedAuthority"))
	return sunrise.BytesToAddress(h.Sum(nil)), bump
}

// NewSigner derives the authority for the seed path and wraps it as a signing
// capability.
func NewSigner(program sunrise.Address, seeds ...[]byte) *Signer {
	authority, bump := DeriveAuthority(program, seeds...)
	return &Signer{Authority: authority, Bump: bump, seeds: seeds}
}
