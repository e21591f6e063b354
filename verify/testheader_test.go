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

import "github.com/erigontech/odr/common"

// testHeader is a fixed-field stand-in for common.Header, letting tests
// assert against arbitrary trust-anchor roots without depending on a real
// header encoding.
type testHeader struct {
	number       uint64
	hash         common.Hash
	parentHash   common.Hash
	stateRoot    common.Hash
	txRoot       common.Hash
	receiptsRoot common.Hash
	unclesHash   common.Hash
	encoded      []byte
}

func (h testHeader) Number() uint64              { return h.number }
func (h testHeader) Hash() common.Hash            { return h.hash }
func (h testHeader) ParentHash() common.Hash      { return h.parentHash }
func (h testHeader) StateRoot() common.Hash       { return h.stateRoot }
func (h testHeader) TransactionsRoot() common.Hash { return h.txRoot }
func (h testHeader) ReceiptsRoot() common.Hash     { return h.receiptsRoot }
func (h testHeader) UnclesHash() common.Hash       { return h.unclesHash }
func (h testHeader) Encoded() []byte               { return h.encoded }
