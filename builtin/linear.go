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

package builtin

import (
	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/common/math"
)

// Linear prices a built-in at base + word*ceil(len(input)/32), the
// pricing model used by identity, SHA-256, RIPEMD-160, and ecrecover.
type Linear struct {
	Base uint64
	Word uint64
}

// Cost implements Pricer.
func (l Linear) Cost(input []byte) common.U256 {
	words := uint64(math.CeilDiv(len(input), 32))
	cost := common.U256{}
	cost.SetUint64(l.Base)
	var wordCost common.U256
	wordCost.SetUint64(l.Word)
	wordCost.Mul(&wordCost, new(common.U256).SetUint64(words))
	cost.Add(&cost, &wordCost)
	return cost
}
