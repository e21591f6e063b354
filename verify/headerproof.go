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
	"github.com/erigontech/odr/cht"
	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/request"
)

// HeaderProofResult is the authenticated payload of a successful
// HeaderProof verification: the canonical hash at the requested number,
// reusable as output 0, plus its total difficulty.
type HeaderProofResult struct {
	Hash            common.Hash
	TotalDifficulty common.U256
}

// Output returns the reusable output a HeaderProof response exposes on
// success: output 0 is the canonical hash.
func (r HeaderProofResult) Output() request.Output { return request.HashOutput(r.Hash) }

// HeaderProof verifies a CHT inclusion proof for req.Num against
// trustedRoot, the root of the CHT section covering that block number.
// It rejects block 0 (genesis predates any CHT section), a number outside
// the claimed window, and any proof that fails to reconstruct trustedRoot.
func HeaderProof(req request.HeaderProofComplete, resp request.HeaderProofResponse, trustedRoot common.Hash, chtNumber, windowSize uint64) (HeaderProofResult, error) {
	hash, td, err := cht.Check(resp.Proof, trustedRoot, req.Num, chtNumber, windowSize)
	if err != nil {
		return HeaderProofResult{}, missingNode(err.Error())
	}
	return HeaderProofResult{Hash: hash, TotalDifficulty: td}, nil
}
