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

// Package cht builds and proves the Canonical Hash Tree: a Merkle tree
// committing to (block_number -> (hash, total_difficulty)) over a fixed
// window of historical blocks, the trust anchor HeaderProof verification
// checks against. Grounded on the other_examples/ excerpt of
// go-ethereum's light package ODR test, which drives a proof the same
// way: trie.New(root, db) followed by t.Prove(key).
package cht

import (
	"encoding/binary"

	gocommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/ethereum/go-ethereum/triedb"

	"github.com/erigontech/odr/common"
)

// DefaultWindowSize is the number of consecutive block numbers a single
// CHT section commits to, matching go-ethereum's light client default of
// 4096 blocks per section. Deployments may override this via config.Config.
const DefaultWindowSize = 1 << 12

// BlockToCHTNumber maps a block number to the index of the CHT section
// that covers it. Undefined for n == 0 (genesis cannot be proved via a
// CHT); otherwise (n-1)/windowSize.
func BlockToCHTNumber(n, windowSize uint64) (uint64, bool) {
	if n == 0 {
		return 0, false
	}
	return (n - 1) / windowSize, true
}

// Entry is one committed row of the tree: a canonical hash and total
// difficulty at a given block number.
type Entry struct {
	Number          uint64
	Hash            common.Hash
	TotalDifficulty common.U256
}

// entryRLP is the on-disk/on-wire encoding of an Entry's value, keyed
// separately by the entry's block number.
type entryRLP struct {
	Hash            gocommon.Hash
	TotalDifficulty *common.U256
}

// chtKey derives the trie key for block number n: a fixed-width 8-byte
// big-endian encoding, matching go-ethereum's light.ChtTablePrefix key
// layout (distinct from the minimal-length RLP index keys the ordered
// transaction/receipt tries use).
func chtKey(n uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	return buf[:]
}

// Tree is an in-memory Canonical Hash Tree backed by a fresh trie
// database; it is rebuilt whenever the caller wants to (re)prove a
// window and is never persisted by this package.
type Tree struct {
	db   *triedb.Database
	trie *trie.Trie
}

// Build constructs the trie for a single window's worth of entries and
// returns the tree ready for Prove, plus its root hash.
func Build(entries []Entry) (*Tree, common.Hash, error) {
	kv := memorydb.New()
	db := triedb.NewDatabase(kv, nil)
	tr, err := trie.NewEmpty(db)
	if err != nil {
		return nil, common.Hash{}, err
	}
	for _, e := range entries {
		val, err := rlp.EncodeToBytes(entryRLP{
			Hash:            e.Hash.ToGoEthereum(),
			TotalDifficulty: &e.TotalDifficulty,
		})
		if err != nil {
			return nil, common.Hash{}, err
		}
		if err := tr.Update(chtKey(e.Number), val); err != nil {
			return nil, common.Hash{}, err
		}
	}
	// Hash, not Commit: a committed trie can no longer serve Prove.
	root := tr.Hash()
	return &Tree{db: db, trie: tr}, common.Hash(root), nil
}

// Prove returns the Merkle inclusion proof for number within t, as a list
// of encoded trie nodes.
func (t *Tree) Prove(number uint64) ([][]byte, error) {
	proofDB := memorydb.New()
	if err := t.trie.Prove(chtKey(number), proofDB); err != nil {
		return nil, err
	}
	return collectProofNodes(proofDB), nil
}

func collectProofNodes(db ethdb.KeyValueStore) [][]byte {
	var nodes [][]byte
	it := db.NewIterator(nil, nil)
	defer it.Release()
	for it.Next() {
		v := make([]byte, len(it.Value()))
		copy(v, it.Value())
		nodes = append(nodes, v)
	}
	return nodes
}

// Check verifies that proof reconstructs root for the given block number
// and window, returning the committed hash and total difficulty. It
// rejects number == 0 (genesis has no CHT section) and numbers outside
// the claimed window.
func Check(proof [][]byte, root common.Hash, number, chtNumber, windowSize uint64) (common.Hash, common.U256, error) {
	if number == 0 {
		return common.Hash{}, common.U256{}, errZeroBlock
	}
	got, ok := BlockToCHTNumber(number, windowSize)
	if !ok || got != chtNumber {
		return common.Hash{}, common.U256{}, errOutsideWindow
	}
	proofDB := memorydb.New()
	for _, n := range proof {
		h := gocommon.BytesToHash(hashNode(n))
		_ = proofDB.Put(h.Bytes(), n)
	}
	val, err := trie.VerifyProof(root.ToGoEthereum(), chtKey(number), proofDB)
	if err != nil || val == nil {
		return common.Hash{}, common.U256{}, errBadRoot
	}
	var rec entryRLP
	if err := rlp.DecodeBytes(val, &rec); err != nil {
		return common.Hash{}, common.U256{}, errBadRoot
	}
	td := common.U256{}
	if rec.TotalDifficulty != nil {
		td = *rec.TotalDifficulty
	}
	return common.Hash(rec.Hash), td, nil
}
