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

// Package dispatcher wires the request, verify, and cht packages behind
// the single caller-facing surface a light client actually drives:
// build a batch, ship it, verify what comes back, fold outputs into the
// next pending requests. Everything that suspends (issuing the batch,
// awaiting responses) lives on the other side of the HeaderSource the
// caller supplies; the dispatcher itself never blocks.
package dispatcher

import (
	"github.com/erigontech/odr/common"
	"github.com/erigontech/odr/verify"
)

// HeaderID identifies a header the source can resolve by its hash. It
// is an alias of common.Hash; lookups by block number are not expressible
// through it.
type HeaderID = common.Hash

// HeaderSource is the trusted-root source the core consumes: best
// header, header(id), cht_root(cht_number), env_info(id), engine(). The
// dispatcher never constructs headers or roots itself; it only reads
// trust anchors out of whatever the caller's chain view supplies.
type HeaderSource interface {
	BestHeader() common.Header
	Header(id HeaderID) (common.Header, bool)
	CHTRoot(chtNumber uint64) (common.Hash, bool)
	EnvInfo(id HeaderID) (verify.EnvInfo, bool)
	Engine() verify.Engine
}
