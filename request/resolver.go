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

import "github.com/erigontech/odr/common"

// Oracle answers a back-reference with the output a prior response in the
// same batch declared, or reports that the slot isn't filled yet.
type Oracle interface {
	Output(reqIdx, outIdx int) (Output, bool)
}

// VisitFn is called once per back-reference found while checking a
// candidate request's inputs against the batch's running output table.
type VisitFn func(reqIdx, outIdx int, expected OutputKind) error

// EmitFn records the (out_idx, OutputKind) pairs a request's eventual
// response will produce, in the request's own declared ordering.
type EmitFn func(outIdx int, kind OutputKind)

// IncompleteRequest is the field-resolver contract every request kind's
// incomplete shape implements: check_outputs, note_outputs, and fill.
type IncompleteRequest interface {
	Kind() Kind
	// CheckOutputs walks every back-reference in the request and reports
	// it to visit; the batch validator decides whether the slot was
	// declared with a compatible kind.
	CheckOutputs(visit VisitFn) error
	// NoteOutputs emits this request's own declared output kinds.
	NoteOutputs(emit EmitFn)
	// Fill attempts to resolve every back-reference against oracle,
	// replacing resolved fields with scalars in place. It never panics on
	// a kind mismatch; it simply leaves the field pending.
	Fill(oracle Oracle)
	// Complete reports whether every field is now a scalar, and — if so
	// — the fully-resolved request.
	Complete() (CompleteRequest, bool)
}

// CompleteRequest is the fully-resolved form of an IncompleteRequest: a
// marker interface implemented by every *Complete struct in requests.go.
type CompleteRequest interface {
	Kind() Kind
}

// resolveHashField attempts to fill a Field[common.Hash] back-reference
// from oracle. All back-referenced fields except Headers.start require a
// Hash output; a Number observed where a Hash is required must not resolve.
func resolveHashField(f *Field[common.Hash], oracle Oracle) {
	ref, pending := f.BackReference()
	if !pending {
		return
	}
	out, ok := oracle.Output(ref.ReqIdx, ref.OutIdx)
	if !ok || out.Kind != OutputHash {
		return
	}
	*f = Scalar(out.Hash)
}

// checkHashField reports the back-reference (if any) to visit, always
// expecting OutputHash.
func checkHashField(f Field[common.Hash], visit VisitFn) error {
	ref, pending := f.BackReference()
	if !pending {
		return nil
	}
	return visit(ref.ReqIdx, ref.OutIdx, OutputHash)
}

// resolveHashOrNumberField is the polymorphic resolver for Headers.start:
// the source must accept either a Hash or a Number output, converting
// whichever arrives into the appropriate HashOrNumber scalar. It must
// never silently coerce one shape into the other.
func resolveHashOrNumberField(f *Field[HashOrNumber], oracle Oracle, ref BackRef) {
	out, ok := oracle.Output(ref.ReqIdx, ref.OutIdx)
	if !ok {
		return
	}
	switch out.Kind {
	case OutputHash:
		*f = Scalar(ByHash(out.Hash))
	case OutputNumber:
		*f = Scalar(ByNumber(out.Number))
	}
}
