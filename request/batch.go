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

// Batch is an ordered list of incomplete requests plus the OutputKind
// sequence each has declared. It is owned by exactly one logical task
// from creation until dispatch; nothing in this package mutates it
// concurrently.
type Batch struct {
	requests []IncompleteRequest
	outputs  [][]OutputKind
}

// Len returns the number of requests appended so far.
func (b *Batch) Len() int { return len(b.requests) }

// Request returns the incomplete request at idx.
func (b *Batch) Request(idx int) IncompleteRequest { return b.requests[idx] }

// declaredKind looks up the output kind request reqIdx declared for slot
// outIdx. It knows only the kind, never the output's *value* (that arrives
// through Resolver.FoldOutputs), so it serves Builder.Append's
// CheckOutputs pass, not Fill.
func (b *Batch) declaredKind(reqIdx, outIdx int) (OutputKind, bool) {
	if reqIdx < 0 || reqIdx >= len(b.outputs) {
		return 0, false
	}
	row := b.outputs[reqIdx]
	if outIdx < 0 || outIdx >= len(row) {
		return 0, false
	}
	return row[outIdx], true
}

// Builder accepts an ordered sequence of incomplete requests, recording
// each request's advertised outputs and checking every back-reference
// against earlier outputs by kind.
type Builder struct {
	batch Batch
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Append validates req's back-references against the batch built so far,
// then records it. CheckOutputs runs before the request is appended, and
// any back-reference whose req_idx is >= the new request's own index k is
// rejected with a NoSuchOutputError, so a forward reference never enters
// the batch.
func (bld *Builder) Append(req IncompleteRequest) error {
	k := len(bld.batch.requests)
	visit := func(reqIdx, outIdx int, expected OutputKind) error {
		if reqIdx >= k {
			return &NoSuchOutputError{ReqIdx: reqIdx, OutIdx: outIdx, Expected: expected, FoundDeclared: false}
		}
		found, ok := bld.batch.declaredKind(reqIdx, outIdx)
		if !ok {
			return &NoSuchOutputError{ReqIdx: reqIdx, OutIdx: outIdx, Expected: expected, FoundDeclared: false}
		}
		if found != expected {
			// Headers.start is the one polymorphic field: it accepts
			// either Hash or Number. We signal that upstream by always
			// calling visit with OutputHash for it; special-case here.
			if req.Kind() == KindHeaders && expected == OutputHash && found == OutputNumber {
				return nil
			}
			return &NoSuchOutputError{ReqIdx: reqIdx, OutIdx: outIdx, Expected: expected, Found: found, FoundDeclared: true}
		}
		return nil
	}
	if err := req.CheckOutputs(visit); err != nil {
		return err
	}

	var row []OutputKind
	req.NoteOutputs(func(outIdx int, kind OutputKind) {
		for len(row) <= outIdx {
			row = append(row, 0)
		}
		row[outIdx] = kind
	})

	bld.batch.requests = append(bld.batch.requests, req)
	bld.batch.outputs = append(bld.batch.outputs, row)
	return nil
}

// Finish exposes the final batch to the dispatcher.
func (bld *Builder) Finish() *Batch { return &bld.batch }

// Resolver folds verified response outputs back into a batch's pending
// requests, implementing the Oracle interface over outputs that have
// actually arrived (as opposed to Batch.declaredKind, which only knows
// the *expected* kind before any response exists).
type Resolver struct {
	batch   *Batch
	results map[BackRef]Output
}

// NewResolver wraps batch for output folding.
func NewResolver(batch *Batch) *Resolver {
	return &Resolver{batch: batch, results: make(map[BackRef]Output)}
}

// Output implements Oracle.
func (r *Resolver) Output(reqIdx, outIdx int) (Output, bool) {
	out, ok := r.results[BackRef{ReqIdx: reqIdx, OutIdx: outIdx}]
	return out, ok
}

// FoldOutputs records the reusable outputs produced by the verified
// response at reqIdx, then attempts to Fill every later, still-pending
// request in the batch. A request at index k is never sent until every
// response r < k it references has been folded in this way.
func (r *Resolver) FoldOutputs(reqIdx int, outputs []Output) {
	for i, out := range outputs {
		r.results[BackRef{ReqIdx: reqIdx, OutIdx: i}] = out
	}
	for k := reqIdx + 1; k < len(r.batch.requests); k++ {
		r.batch.requests[k].Fill(r)
	}
}
