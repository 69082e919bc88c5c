// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sunrise-stake/router/sunrise"
)

// Key is anything usable as a mapping key.
type Key interface {
	Bytes() []byte
}

// U64Key adapts an integer (e.g. an epoch number) into a mapping key.
type U64Key uint64

func (k U64Key) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}

// Mapping is a keyed record store within one account's storage space. Each
// entry's position is derived from the key and the mapping's base slot.
type Mapping[K Key, V any] struct {
	ctx     *Context
	basePos sunrise.Bytes32
}

func NewMapping[K Key, V any](ctx *Context, pos sunrise.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{ctx: ctx, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) sunrise.Bytes32 {
	return sunrise.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the record stored under key, or nil if absent.
func (m *Mapping[K, V]) Get(key K) (*V, error) {
	var value *V
	err := m.ctx.state.DecodeStorage(m.ctx.address, m.position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		value = new(V)
		return rlp.DecodeBytes(raw, value)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (m *Mapping[K, V]) Set(key K, value *V) error {
	return m.ctx.state.EncodeStorage(m.ctx.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete removes the record stored under key.
func (m *Mapping[K, V]) Delete(key K) error {
	return m.ctx.state.DeleteStorage(m.ctx.address, m.position(key))
}
