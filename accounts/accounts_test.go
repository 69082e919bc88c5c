// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/state"
	"github.com/sunrise-stake/router/sunrise"
)

func newTestContext() *Context {
	return NewContext(sunrise.BytesToAddress([]byte("deployment")), state.New(state.NewMem()))
}

func TestUint64GetSet(t *testing.T) {
	cell := NewUint64(newTestContext(), NameToSlot("marinade-minted-gsol"))

	got, err := cell.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)

	require.NoError(t, cell.Set(12345))
	got, err = cell.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), got)
}

func TestUint64CheckedAdd(t *testing.T) {
	cell := NewUint64(newTestContext(), NameToSlot("counter"))

	require.NoError(t, cell.Add(math.MaxUint64-1))
	require.NoError(t, cell.Add(1))

	err := cell.Add(1)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)

	// value untouched after the failed add
	got, err2 := cell.Get()
	require.NoError(t, err2)
	assert.Equal(t, uint64(math.MaxUint64), got)
}

func TestUint64CheckedSub(t *testing.T) {
	cell := NewUint64(newTestContext(), NameToSlot("counter"))

	require.NoError(t, cell.Set(10))
	require.NoError(t, cell.Sub(10))

	err := cell.Sub(1)
	assert.ErrorIs(t, err, reverts.ErrArithmeticUnderflow)
}

type record struct {
	Owner   sunrise.Address
	Epoch   uint64
	Started *uint64 `rlp:"nil"`
}

func TestStructCell(t *testing.T) {
	cell := NewStruct[record](newTestContext(), NameToSlot("lock"))

	got, err := cell.Get()
	require.NoError(t, err)
	assert.Nil(t, got)

	start := uint64(7)
	want := &record{Owner: sunrise.BytesToAddress([]byte{0x01}), Epoch: 42, Started: &start}
	require.NoError(t, cell.Set(want))

	got, err = cell.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)

	require.NoError(t, cell.Delete())
	got, err = cell.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMapping(t *testing.T) {
	m := NewMapping[U64Key, record](newTestContext(), NameToSlot("tickets"))

	got, err := m.Get(U64Key(3))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, m.Set(U64Key(3), &record{Epoch: 3}))
	require.NoError(t, m.Set(U64Key(4), &record{Epoch: 4}))

	got, err = m.Get(U64Key(3))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(3), got.Epoch)

	require.NoError(t, m.Delete(U64Key(3)))
	got, err = m.Get(U64Key(3))
	require.NoError(t, err)
	assert.Nil(t, got)

	// neighbouring key untouched
	got, err = m.Get(U64Key(4))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(4), got.Epoch)
}
