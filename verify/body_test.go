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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/request"
)

func TestBodyWithEmptyLists(t *testing.T) {
	emptyTxRoot := orderedTrieRoot(nil)
	emptyUnclesHash := common.Keccak256Hash(nil)
	header := testHeader{txRoot: emptyTxRoot, unclesHash: emptyUnclesHash}

	block, err := Body(header, request.BodyResponse{Transactions: nil, Uncles: nil})
	require.NoError(t, err)
	require.Equal(t, header, block.Header)
	require.Empty(t, block.Body.Transactions)
	require.Empty(t, block.Body.Uncles)
}

func TestBodyRejectsTamperedTransactionsRoot(t *testing.T) {
	txs := [][]byte{[]byte("tx-a"), []byte("tx-b")}
	header := testHeader{
		txRoot:     orderedTrieRoot(txs),
		unclesHash: common.Keccak256Hash(nil),
	}

	tampered := [][]byte{[]byte("tx-a"), []byte("tx-c")}
	_, err := Body(header, request.BodyResponse{Transactions: tampered})
	require.Error(t, err)
	var badProof *BadProofError
	require.ErrorAs(t, err, &badProof)
}

func TestReceiptsAcceptsMatchingRootAndRejectsMutation(t *testing.T) {
	receipts := [][]byte{
		[]byte("receipt-0"), []byte("receipt-1"), []byte("receipt-2"),
		[]byte("receipt-3"), []byte("receipt-4"),
	}
	header := testHeader{receiptsRoot: orderedTrieRoot(receipts)}

	require.NoError(t, Receipts(header, request.ReceiptsResponse{Receipts: receipts}))

	mutated := make([][]byte, len(receipts))
	copy(mutated, receipts)
	mutated[2] = []byte("receipt-2-mutated-state-root")
	err := Receipts(header, request.ReceiptsResponse{Receipts: mutated})
	require.Error(t, err)
}

func TestHeaderByHash(t *testing.T) {
	headerBytes := []byte("canonical header encoding")
	requested := common.Keccak256Hash(headerBytes)
	require.NoError(t, HeaderByHash(requested, headerBytes))

	mutated := []byte("a different header entirely")
	err := HeaderByHash(requested, mutated)
	require.Error(t, err)
}

func TestCodeMismatch(t *testing.T) {
	codeA := []byte("contract A bytecode")
	codeB := []byte("contract B bytecode")
	requested := common.Keccak256Hash(codeA)

	require.NoError(t, Code(requested, codeA))
	err := Code(requested, codeB)
	require.Error(t, err)
}
