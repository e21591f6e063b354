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

import "golang.org/x/sync/errgroup"

// Task is one independent unit of verification work: a thunk the caller
// has already closed over its own request/response/trusted-root inputs.
// Every verifier in this package is a pure, synchronous function — none
// of them suspends — which is exactly what makes running a batch's Tasks
// concurrently safe: none shares mutable state or blocks.
type Task func() error

// VerifyBatch runs every task concurrently and returns the first error
// encountered, cancelling no other task's completion (each already ran
// to finish by the time VerifyBatch returns, since none of them
// suspends). Mirrors the errgroup fan-out pattern used throughout erigon
// for independent, CPU-bound work.
func VerifyBatch(tasks ...Task) error {
	var g errgroup.Group
	for _, t := range tasks {
		t := t
		g.Go(func() error { return t() })
	}
	return g.Wait()
}
