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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/odr/cht"
	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/request"
)

// TestHeaderProof10000 builds a CHT over the part of block 10000's window
// that lies at or below 10500 (blocks 8193 through 10500), proves block
// 10000, and verifies against the CHT's root.
func TestHeaderProof10000(t *testing.T) {
	const windowSize = cht.DefaultWindowSize
	const target = 10000

	chtNumber, ok := cht.BlockToCHTNumber(target, windowSize)
	require.True(t, ok)

	windowStart := chtNumber*windowSize + 1
	windowEnd := (chtNumber + 1) * windowSize
	var entries []cht.Entry
	for n := windowStart; n <= windowEnd && n <= 10500; n++ {
		entries = append(entries, cht.Entry{
			Number:          n,
			Hash:            common.Keccak256Hash([]byte(fmt.Sprintf("block-%d", n))),
			TotalDifficulty: *new(common.U256).SetUint64(n * 17),
		})
	}
	tree, root, err := cht.Build(entries)
	require.NoError(t, err)

	proof, err := tree.Prove(target)
	require.NoError(t, err)

	req := request.HeaderProofComplete{Num: target}
	resp := request.HeaderProofResponse{Proof: proof}
	result, err := HeaderProof(req, resp, root, chtNumber, windowSize)
	require.NoError(t, err)
	require.Equal(t, common.Keccak256Hash([]byte(fmt.Sprintf("block-%d", target))), result.Hash)
	require.Equal(t, uint64(target*17), result.TotalDifficulty.Uint64())
}

func TestHeaderProofRejectsGenesis(t *testing.T) {
	_, ok := cht.BlockToCHTNumber(0, cht.DefaultWindowSize)
	require.False(t, ok)

	_, err := HeaderProof(request.HeaderProofComplete{Num: 0}, request.HeaderProofResponse{}, common.Hash{}, 0, cht.DefaultWindowSize)
	require.Error(t, err)
}

func TestHeaderProofRejectsOutsideWindow(t *testing.T) {
	const windowSize = cht.DefaultWindowSize
	entries := []cht.Entry{{Number: 1, Hash: common.Keccak256Hash([]byte("b1"))}}
	tree, root, err := cht.Build(entries)
	require.NoError(t, err)
	proof, err := tree.Prove(1)
	require.NoError(t, err)

	req := request.HeaderProofComplete{Num: 1}
	resp := request.HeaderProofResponse{Proof: proof}
	// Claim a chtNumber that doesn't correspond to block 1's real window.
	_, err = HeaderProof(req, resp, root, 999, windowSize)
	require.Error(t, err)
}
