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

// Receipts builds an ordered trie over the received receipt list and
// compares it against header.ReceiptsRoot(). Mutating any single receipt
// changes the computed root and triggers this verifier's rejection.
func Receipts(header common.Header, resp request.ReceiptsResponse) error {
	got := orderedTrieRoot(resp.Receipts)
	if want := header.ReceiptsRoot(); got != want {
		return wrongHash("receipts root mismatch", want, got)
	}
	return nil
}
