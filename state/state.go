// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides durable account storage for the router.
//
// Each record lives in the storage space of an account address, keyed by a
// 32-byte slot. Values are either plain 32-byte words (GetStorage/SetStorage)
// or rlp-encoded blobs (EncodeStorage/DecodeStorage). The host environment
// serializes conflicting-account transactions; this layer adds no locking of
// its own.
package state

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/sunrise"
)

// State manages the account storage space over a key/value backend.
type State struct {
	store Store
}

// New creates a state instance over the given backend.
func New(store Store) *State {
	return &State{store: store}
}

func storageKey(addr sunrise.Address, key sunrise.Bytes32) []byte {
	k := make([]byte, 0, sunrise.AddressLength+32)
	k = append(k, addr.Bytes()...)
	return append(k, key.Bytes()...)
}

// GetStorage returns the 32-byte word stored at (addr, key). Absent slots read
// as the zero word.
func (s *State) GetStorage(addr sunrise.Address, key sunrise.Bytes32) (sunrise.Bytes32, error) {
	raw, err := s.store.Get(storageKey(addr, key))
	if err != nil {
		return sunrise.Bytes32{}, errors.Wrap(err, "get storage")
	}
	return sunrise.BytesToBytes32(raw), nil
}

// SetStorage stores a 32-byte word at (addr, key). Storing the zero word
// deletes the slot.
func (s *State) SetStorage(addr sunrise.Address, key, value sunrise.Bytes32) error {
	if value.IsZero() {
		return errors.Wrap(s.store.Delete(storageKey(addr, key)), "set storage")
	}
	return errors.Wrap(s.store.Put(storageKey(addr, key), value.Bytes()), "set storage")
}

// GetRawStorage returns the raw blob stored at (addr, key), nil if absent.
func (s *State) GetRawStorage(addr sunrise.Address, key sunrise.Bytes32) ([]byte, error) {
	raw, err := s.store.Get(storageKey(addr, key))
	return raw, errors.Wrap(err, "get raw storage")
}

// EncodeStorage stores the blob produced by enc at (addr, key). A nil or empty
// blob deletes the slot.
func (s *State) EncodeStorage(addr sunrise.Address, key sunrise.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return errors.Wrap(err, "encode storage")
	}
	if len(raw) == 0 {
		return errors.Wrap(s.store.Delete(storageKey(addr, key)), "encode storage")
	}
	return errors.Wrap(s.store.Put(storageKey(addr, key), raw), "encode storage")
}

// DecodeStorage passes the blob stored at (addr, key) to dec. Absent slots
// decode from an empty blob.
func (s *State) DecodeStorage(addr sunrise.Address, key sunrise.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	return dec(raw)
}

// DeleteStorage removes the slot at (addr, key), reclaiming its space.
func (s *State) DeleteStorage(addr sunrise.Address, key sunrise.Bytes32) error {
	return errors.Wrap(s.store.Delete(storageKey(addr, key)), "delete storage")
}
