// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package cht

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erigontech/odr/common"
)

// RootCache memoizes recently-verified CHT section roots by CHT number,
// the way erigon caches recently resolved chain-data structures rather
// than re-deriving them from the header source on every HeaderProof
// verification.
type RootCache struct {
	cache *lru.Cache[uint64, common.Hash]
}

// NewRootCache returns a RootCache holding up to size entries.
func NewRootCache(size int) (*RootCache, error) {
	c, err := lru.New[uint64, common.Hash](size)
	if err != nil {
		return nil, err
	}
	return &RootCache{cache: c}, nil
}

// Get returns the cached root for chtNumber, if present.
func (c *RootCache) Get(chtNumber uint64) (common.Hash, bool) {
	return c.cache.Get(chtNumber)
}

// Put records root as the trusted root for chtNumber.
func (c *RootCache) Put(chtNumber uint64, root common.Hash) {
	c.cache.Add(chtNumber, root)
}
