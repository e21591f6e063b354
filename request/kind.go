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

import "fmt"

// Kind is the single-byte wire tag of a request/response pair. Tag 2 is
// permanently reserved and skipped — it corresponded to an Epoch-signal
// request in the source protocol that has no equivalent here.
type Kind byte

const (
	KindHeaders     Kind = 0
	KindHeaderProof Kind = 1
	// 2 reserved, skipped.
	KindReceipts  Kind = 3
	KindBody      Kind = 4
	KindAccount   Kind = 5
	KindStorage   Kind = 6
	KindCode      Kind = 7
	KindExecution Kind = 8
)

func (k Kind) String() string {
	switch k {
	case KindHeaders:
		return "Headers"
	case KindHeaderProof:
		return "HeaderProof"
	case KindReceipts:
		return "Receipts"
	case KindBody:
		return "Body"
	case KindAccount:
		return "Account"
	case KindStorage:
		return "Storage"
	case KindCode:
		return "Code"
	case KindExecution:
		return "Execution"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// Valid reports whether k is one of the eight live tags.
func (k Kind) Valid() bool {
	switch k {
	case KindHeaders, KindHeaderProof, KindReceipts, KindBody, KindAccount, KindStorage, KindCode, KindExecution:
		return true
	default:
		return false
	}
}
