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

// accountRLP is the state-trie leaf shape: {nonce, balance, storage_root,
// code_hash}, matching go-ethereum's core/state.Account encoding.
type accountRLP struct {
	Nonce       uint64
	Balance     *common.U256
	StorageRoot common.Hash
	CodeHash    common.Hash
}

// emptyAccount is the value reported when the trie lookup proves the key
// absent: a zero account, not a rejection.
var emptyAccount = request.AccountResponse{
	CodeHash: common.Keccak256Hash(nil),
}

// Account looks up addressHash in a trie rooted at stateRoot, loading
// resp.Proof into a short-lived node store first. Three outcomes are
// acceptable: a decoded leaf, a proof of absence (treated as an empty
// account), or — for anything else, including any missing node, decode
// failure, or root mismatch — a BadProof rejection.
func Account(stateRoot, addressHash common.Hash, resp request.AccountResponse) (request.AccountResponse, error) {
	db := proofNodeStore(resp.Proof)
	val, err := trie.VerifyProof(stateRoot.ToGoEthereum(), addressHash.Bytes(), db)
	if err != nil {
		return request.AccountResponse{}, missingNode("account proof: " + err.Error())
	}
	if val == nil {
		return emptyAccount, nil
	}
	var acc accountRLP
	if err := rlp.DecodeBytes(val, &acc); err != nil {
		return request.AccountResponse{}, missingNode("account leaf decode: " + err.Error())
	}
	balance := common.U256{}
	if acc.Balance != nil {
		balance = *acc.Balance
	}
	return request.AccountResponse{
		Proof:       resp.Proof,
		Nonce:       acc.Nonce,
		Balance:     balance,
		CodeHash:    acc.CodeHash,
		StorageRoot: acc.StorageRoot,
	}, nil
}

// AccountOutputs returns the two reusable outputs an Account verification
// exposes on success: output 0 is code_hash, output 1 is storage_root.
func AccountOutputs(r request.AccountResponse) [2]request.Output {
	return [2]request.Output{
		request.HashOutput(r.CodeHash),
		request.HashOutput(r.StorageRoot),
	}
}
