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

// Package verify implements the per-kind proof verifiers: pure functions
// from (request inputs, response payload, trusted root) to either an
// authenticated value or a BadProof rejection. Grounded on Parity's
// ethcore/light/src/on_demand/request.rs check_response methods.
package verify

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/erigontech/odr/common"
)

// hashNode returns the domain hash of an encoded trie node, the key
// go-ethereum's trie.VerifyProof expects proof nodes to be indexed under.
func hashNode(n []byte) []byte { return crypto.Keccak256(n) }

// BadProofError is the single error class every verifier in this package
// returns on rejection: the proof did not reconstruct the trusted root, a
// node was missing, or a claimed field didn't match what was recomputed.
// It always carries the offending (expected, found) pair where one
// exists.
type BadProofError struct {
	Reason   string
	Expected fmt.Stringer
	Found    fmt.Stringer
}

func (e *BadProofError) Error() string {
	if e.Expected != nil || e.Found != nil {
		return fmt.Sprintf("bad proof: %s (expected %v, found %v)", e.Reason, e.Expected, e.Found)
	}
	return fmt.Sprintf("bad proof: %s", e.Reason)
}

// hashPair adapts two common.Hash values to the Stringer pair BadProofError wants.
type hashPair struct{ h common.Hash }

func (p hashPair) String() string { return p.h.String() }

func wrongHash(reason string, expected, found common.Hash) *BadProofError {
	return &BadProofError{Reason: reason, Expected: hashPair{expected}, Found: hashPair{found}}
}

type numberPair struct{ n uint64 }

func (p numberPair) String() string { return fmt.Sprintf("%d", p.n) }

func wrongNumber(reason string, expected, found uint64) *BadProofError {
	return &BadProofError{Reason: reason, Expected: numberPair{expected}, Found: numberPair{found}}
}

func missingNode(reason string) *BadProofError {
	return &BadProofError{Reason: reason}
}
