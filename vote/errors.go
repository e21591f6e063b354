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

package vote

import (
	"strconv"

	"github.com/erigontech/odr/common"
)

// DoubleVoteError reports that address signed two distinct messages in
// the same round — the collector's only authenticity signal, mirroring
// vote_collector.rs's StepCollector::insert returning Some(&Address).
type DoubleVoteError struct {
	Round   uint64
	Address common.Address
}

func (e *DoubleVoteError) Error() string {
	return "double vote by " + e.Address.String() + " at round " + strconv.FormatUint(e.Round, 10)
}
