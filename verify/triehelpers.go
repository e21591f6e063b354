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
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/erigontech/odr/common"
)

// orderedTrieRoot builds a trie over items keyed by their RLP-encoded
// sequential index — exactly go-ethereum's types.DeriveSha and Parity's
// util::triehash::ordered_trie_root convention for the transactions root
// and the receipts root — and returns its root. It uses a StackTrie
// because the caller only needs the root, never a proof, over data it
// already received in full. A StackTrie only accepts ascending keys, so
// items are inserted in key byte order: indices 1..127 (keys 0x01..0x7f),
// then index 0 (key 0x80), then indices from 128 on (keys 0x81...).
func orderedTrieRoot(items [][]byte) common.Hash {
	st := trie.NewStackTrie(nil)
	for i := 1; i < len(items) && i <= 0x7f; i++ {
		_ = st.Update(indexKey(i), items[i])
	}
	if len(items) > 0 {
		_ = st.Update(indexKey(0), items[0])
	}
	for i := 0x80; i < len(items); i++ {
		_ = st.Update(indexKey(i), items[i])
	}
	return common.Hash(st.Hash())
}

// indexKey RLP-encodes a sequence index, matching go-ethereum's
// rlp.AppendUint64 trie-key convention (index 0 encodes as 0x80, not a
// raw zero byte).
func indexKey(i int) []byte {
	return rlp.AppendUint64(nil, uint64(i))
}

// proofNodeStore loads a response's proof node list into a short-lived,
// content-addressed key-value store, keyed by the domain hash of each
// node, so trie.VerifyProof can walk it without any pointer-graph trie
// representation.
func proofNodeStore(nodes [][]byte) *memorydb.Database {
	db := memorydb.New()
	for _, n := range nodes {
		_ = db.Put(hashNode(n), n)
	}
	return db
}
