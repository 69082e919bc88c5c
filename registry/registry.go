// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry tracks the pooled-stake venues registered with a
// deployment, up to a fixed small number, along with the shared token-account
// authority used uniformly across all of them.
package registry

import (
	"github.com/pkg/errors"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/router/reverts"
	"github.com/sunrise-stake/router/router/venue"
	"github.com/sunrise-stake/router/sunrise"
)

var (
	slotPoolCount   = accounts.NameToSlot("registered-pool-count")
	slotPoolEntries = accounts.NameToSlot("registered-pools")

	sharedAuthoritySeed = []byte("pool-token-authority")
)

// PoolEntry describes one registered pooled-stake venue.
type PoolEntry struct {
	Pool              sunrise.Address // the venue's pool state account
	TokenAccount      sunrise.Address // deployment's pool-token holding
	LookupTableOffset uint8           // venue's slot in the shared lookup table
}

// Service persists the registry in the deployment's storage space.
type Service struct {
	count   *accounts.Uint64
	entries *accounts.Mapping[accounts.U64Key, PoolEntry]
	signer  *venue.Signer
}

func New(ctx *accounts.Context) *Service {
	return &Service{
		count:   accounts.NewUint64(ctx, slotPoolCount),
		entries: accounts.NewMapping[accounts.U64Key, PoolEntry](ctx, slotPoolEntries),
		signer:  venue.NewSigner(ctx.Address(), sharedAuthoritySeed),
	}
}

// SharedAuthority is the token-account authority shared by every registered
// venue.
func (s *Service) SharedAuthority() *venue.Signer {
	return s.signer
}

// Count returns the number of registered venues.
func (s *Service) Count() (uint64, error) {
	return s.count.Get()
}

// Register appends a venue to the registry, returning its index.
func (s *Service) Register(entry *PoolEntry) (uint64, error) {
	count, err := s.count.Get()
	if err != nil {
		return 0, err
	}
	if count >= sunrise.MaxRegisteredPools {
		return 0, errors.WithStack(reverts.ErrPoolRegistryFull)
	}
	if err := s.entries.Set(accounts.U64Key(count), entry); err != nil {
		return 0, err
	}
	return count, s.count.Add(1)
}

// Get returns the registered venue at index, nil if out of range.
func (s *Service) Get(index uint64) (*PoolEntry, error) {
	return s.entries.Get(accounts.U64Key(index))
}
