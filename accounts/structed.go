// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sunrise-stake/router/sunrise"
)

// Struct is a storage cell holding one rlp-encoded record. Records are
// fixed-layout structures sized to their field list; rlp keeps the layout
// forward-compatible so a record can be resized in place as fields are added.
type Struct[T any] struct {
	ctx *Context
	pos sunrise.Bytes32
}

func NewStruct[T any](ctx *Context, slot sunrise.Bytes32) *Struct[T] {
	return &Struct[T]{ctx: ctx, pos: slot}
}

// Get returns the stored record, or nil if the slot is empty.
func (s *Struct[T]) Get() (*T, error) {
	var value *T
	err := s.ctx.state.DecodeStorage(s.ctx.address, s.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		value = new(T)
		return rlp.DecodeBytes(raw, value)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores the record, replacing any previous value.
func (s *Struct[T]) Set(value *T) error {
	return s.ctx.state.EncodeStorage(s.ctx.address, s.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the slot, reclaiming its storage.
func (s *Struct[T]) Delete() error {
	return s.ctx.state.DeleteStorage(s.ctx.address, s.pos)
}
