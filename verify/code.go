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

// Code recomputes the domain hash of the received bytes and accepts iff
// it equals the requested code_hash.
func Code(requestedHash common.Hash, code []byte) error {
	got := common.Keccak256Hash(code)
	if got != requestedHash {
		return wrongHash("code hash mismatch", requestedHash, got)
	}
	return nil
}
