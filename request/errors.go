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

// DecodeError reports malformed wire bytes: an unknown tag, wrong list
// arity, or a bad Field discriminant. The peer that produced the bytes is
// misbehaving; the whole packet is rejected.
type DecodeError struct {
	Context string
	Err     error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Context, e.Err) }
func (e *DecodeError) Unwrap() error  { return e.Err }

// NoSuchOutputError reports a back-reference that points to a
// non-existent or wrongly-typed output slot. It is a batch-building bug,
// never surfaced once the batch has left the builder.
type NoSuchOutputError struct {
	ReqIdx, OutIdx int
	Expected       OutputKind
	Found          OutputKind
	FoundDeclared  bool // false if out_idx was never declared at all
}

func (e *NoSuchOutputError) Error() string {
	if !e.FoundDeclared {
		return fmt.Sprintf("no such output: request %d declares no output %d", e.ReqIdx, e.OutIdx)
	}
	return fmt.Sprintf("no such output: request %d output %d is %v, want %v", e.ReqIdx, e.OutIdx, e.Found, e.Expected)
}

// WrongKindError reports that a response's kind tag did not match the
// dispatched request's kind. Treated as peer misbehavior.
type WrongKindError struct {
	Expected Kind
	Found    Kind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("wrong response kind: expected %v, found %v", e.Expected, e.Found)
}

// ErrUnknownDiscriminant is returned when a Field's leading discriminant
// byte is neither 0 (scalar) nor 1 (back-reference).
var ErrUnknownDiscriminant = fmt.Errorf("unknown field discriminant")

// ErrForwardReference describes a back-reference whose request index is
// not strictly less than the referring request's own index. Builder.Append
// reports such a reference as a NoSuchOutputError and does not return this
// value.
var ErrForwardReference = fmt.Errorf("back-reference points to a request at or after the referrer")
