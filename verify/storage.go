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

package verify

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/request"
)

// Storage looks up keyHash in a trie rooted at storageRoot (typically
// itself the output of a prior Account verification in the batch); the
// same inclusion/exclusion/bad-proof trichotomy Account applies here too.
// The absent-key outcome yields the zero value, not a rejection.
func Storage(storageRoot, keyHash common.Hash, resp request.StorageResponse) (request.StorageResponse, error) {
	db := proofNodeStore(resp.Proof)
	val, err := trie.VerifyProof(storageRoot.ToGoEthereum(), keyHash.Bytes(), db)
	if err != nil {
		return request.StorageResponse{}, missingNode("storage proof: " + err.Error())
	}
	if val == nil {
		return request.StorageResponse{Proof: resp.Proof, Value: common.Hash{}}, nil
	}
	var raw []byte
	if err := rlp.DecodeBytes(val, &raw); err != nil {
		return request.StorageResponse{}, missingNode("storage leaf decode: " + err.Error())
	}
	return request.StorageResponse{Proof: resp.Proof, Value: common.BytesToHash(raw)}, nil
}

// StorageOutput returns the reusable output 0 a Storage verification
// exposes on success: the 32-byte value.
func StorageOutput(r request.StorageResponse) request.Output { return request.HashOutput(r.Value) }
