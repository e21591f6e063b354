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
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
)

// errZeroBlock, errOutsideWindow and errBadRoot are the three rejection
// causes of Check: genesis cannot be proved via a CHT, the number falls
// outside the claimed window, or the proof does not reconstruct the
// trusted root.
var (
	errZeroBlock     = errors.New("cht: block number 0 has no CHT proof")
	errOutsideWindow = errors.New("cht: block number outside claimed window")
	errBadRoot       = errors.New("cht: proof does not reconstruct the trusted root")
)

// hashNode returns the domain hash of an encoded trie node, the key
// under which go-ethereum's trie.VerifyProof expects proof nodes to be
// indexed in the supplied key-value reader.
func hashNode(n []byte) []byte {
	h := crypto.Keccak256(n)
	return h
}
