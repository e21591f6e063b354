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

package request

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/erigontech/odr/common"
)

// HashOrNumber is a combined field identifying a block either by its
// canonical hash or by its number. At most one of the two is set; the
// wire encoding carries only the inner value, and decoding distinguishes
// the two shapes by the encoded length (32 bytes implies a hash).
type HashOrNumber struct {
	Hash   common.Hash
	Number uint64
	isHash bool
}

// ByHash builds a HashOrNumber identifying a block by hash.
func ByHash(h common.Hash) HashOrNumber { return HashOrNumber{Hash: h, isHash: true} }

// ByNumber builds a HashOrNumber identifying a block by number.
func ByNumber(n uint64) HashOrNumber { return HashOrNumber{Number: n} }

// IsHash reports whether the value is the hash variant.
func (hn HashOrNumber) IsHash() bool { return hn.isHash }

// EncodeRLP encodes only whichever of the two union fields is set,
// mirroring go-ethereum/les's hashOrNumber wire shape exactly.
func (hn *HashOrNumber) EncodeRLP(w io.Writer) error {
	if !hn.isHash {
		return rlp.Encode(w, hn.Number)
	}
	if hn.Number != 0 {
		return fmt.Errorf("both origin hash (%x) and number (%d) provided", hn.Hash, hn.Number)
	}
	return rlp.Encode(w, hn.Hash)
}

// DecodeRLP tries the 32-byte hash shape first and falls back to the
// integer shape, per the wire codec specification.
func (hn *HashOrNumber) DecodeRLP(s *rlp.Stream) error {
	_, size, err := s.Kind()
	switch {
	case err != nil:
		return err
	case size == common.HashLength:
		hn.Number = 0
		hn.isHash = true
		return s.Decode(&hn.Hash)
	default:
		hn.isHash = false
		return s.Decode(&hn.Number)
	}
}
