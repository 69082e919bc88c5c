// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accounts offers typed views over an account's storage space,
// similar to declaring fields and mappings in an on-chain program. All numeric
// cells use checked arithmetic and fail closed on overflow or underflow.
package accounts

import (
	"github.com/sunrise-stake/router/state"
	"github.com/sunrise-stake/router/sunrise"
)

// Context binds storage cells to the account that owns them.
type Context struct {
	address sunrise.Address
	state   *state.State
}

func NewContext(address sunrise.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() sunrise.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// NameToSlot derives the storage slot for a named cell.
func NameToSlot(name string) sunrise.Bytes32 {
	return sunrise.BytesToBytes32([]byte(name))
}
