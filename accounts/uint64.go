// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/sunrise"
)

// Uint64 is a storage cell holding an unsigned 64-bit counter. Add and Sub are
// checked: they return an arithmetic fault instead of wrapping, so a
// mis-sequenced mutation can never silently corrupt fund accounting.
type Uint64 struct {
	ctx *Context
	pos sunrise.Bytes32
}

func NewUint64(ctx *Context, slot sunrise.Bytes32) *Uint64 {
	return &Uint64{ctx: ctx, pos: slot}
}

func (u *Uint64) Get() (uint64, error) {
	word, err := u.ctx.state.GetStorage(u.ctx.address, u.pos)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(word[24:]), nil
}

func (u *Uint64) Set(value uint64) error {
	var word sunrise.Bytes32
	binary.BigEndian.PutUint64(word[24:], value)
	return u.ctx.state.SetStorage(u.ctx.address, u.pos, word)
}

func (u *Uint64) Add(value uint64) error {
	current, err := u.Get()
	if err != nil {
		return err
	}
	if current > math.MaxUint64-value {
		return errors.WithStack(reverts.ErrArithmeticOverflow)
	}
	return u.Set(current + value)
}

func (u *Uint64) Sub(value uint64) error {
	current, err := u.Get()
	if err != nil {
		return err
	}
	if current < value {
		return errors.WithStack(reverts.ErrArithmeticUnderflow)
	}
	return u.Set(current - value)
}
