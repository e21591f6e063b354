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
	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/request"
)

// Body verifies a block body's two roots against header, the authoritative
// header already in hand, and — on success — returns the verified block as
// {Header, Body}, the in-memory counterpart of the wire-level
// [header, [transactions, uncles]] concatenation. Callers that need the
// encoded form can RLP-encode the two fields independently and concatenate,
// since common.Block itself carries no single-shot EncodeRLP.
func Body(header common.Header, resp request.BodyResponse) (common.Block, error) {
	txRoot := orderedTrieRoot(resp.Transactions)
	if want := header.TransactionsRoot(); txRoot != want {
		return common.Block{}, wrongHash("transactions root mismatch", want, txRoot)
	}
	unclesHash := common.Keccak256Hash(resp.Uncles)
	if want := header.UnclesHash(); unclesHash != want {
		return common.Block{}, wrongHash("uncles hash mismatch", want, unclesHash)
	}
	return common.Block{
		Header: header,
		Body: common.Body{
			Transactions: resp.Transactions,
			Uncles:       resp.Uncles,
		},
	}, nil
}
