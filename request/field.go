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

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/erigontech/odr/common"
)

// OutputKind tags the two shapes a reusable response output may take.
type OutputKind byte

const (
	OutputHash OutputKind = iota
	OutputNumber
)

func (k OutputKind) String() string {
	if k == OutputHash {
		return "Hash"
	}
	return "Number"
}

// Output is a reusable value a response declares, consumed by a later
// request's back-reference in the same batch.
type Output struct {
	Kind   OutputKind
	Hash   common.Hash
	Number uint64
}

// HashOutput builds a Hash-kind Output.
func HashOutput(h common.Hash) Output { return Output{Kind: OutputHash, Hash: h} }

// NumberOutput builds a Number-kind Output.
func NumberOutput(n uint64) Output { return Output{Kind: OutputNumber, Number: n} }

// BackRef addresses an output of an earlier request in the same batch.
type BackRef struct {
	ReqIdx int
	OutIdx int
}

// Field is a sum of {Scalar(T), BackReference(req_idx, out_idx)}. A batch
// is complete iff no Field in any of its requests is still a
// BackReference.
type Field[T any] struct {
	isScalar bool
	scalar   T
	ref      BackRef
}

// Scalar builds a resolved Field holding v directly.
func Scalar[T any](v T) Field[T] { return Field[T]{isScalar: true, scalar: v} }

// Pending builds an unresolved Field awaiting the output at (reqIdx, outIdx).
func Pending[T any](reqIdx, outIdx int) Field[T] {
	return Field[T]{isScalar: false, ref: BackRef{ReqIdx: reqIdx, OutIdx: outIdx}}
}

// IsScalar reports whether the field already carries a concrete value.
func (f Field[T]) IsScalar() bool { return f.isScalar }

// BackReference returns the pending back-reference and true, or the zero
// BackRef and false if the field is already a scalar.
func (f Field[T]) BackReference() (BackRef, bool) {
	if f.isScalar {
		return BackRef{}, false
	}
	return f.ref, true
}

// Value returns the scalar value and true, or the zero value and false if
// the field is still a back-reference.
func (f Field[T]) Value() (T, bool) {
	return f.scalar, f.isScalar
}

// Resolve substitutes v for a pending back-reference, returning a new
// scalar Field. Callers must have already checked the output kind agrees
// (see resolver.go); Resolve itself performs no kind checking.
func (f Field[T]) Resolve(v T) Field[T] {
	return Field[T]{isScalar: true, scalar: v}
}

// fieldWire is the two-element [discriminant, value] wire shape shared by
// every Field[T] instantiation, independent of T's own encoding.
type fieldWire struct {
	Disc  uint8
	Value rlp.RawValue
}

// EncodeScalarField encodes a resolved Field[T] as [0, rlp(v)].
func EncodeScalarField(v interface{}) ([]byte, error) {
	inner, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(fieldWire{Disc: 0, Value: inner})
}

// EncodeBackRefField encodes a pending Field[T] as [1, [req_idx, out_idx]].
func EncodeBackRefField(ref BackRef) ([]byte, error) {
	inner, err := rlp.EncodeToBytes([]uint64{uint64(ref.ReqIdx), uint64(ref.OutIdx)})
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(fieldWire{Disc: 1, Value: inner})
}

// DecodeFieldShape splits raw into its discriminant and inner payload
// without committing to T, so callers can dispatch on the discriminant
// before decoding the scalar.
func DecodeFieldShape(raw []byte) (disc uint8, inner rlp.RawValue, err error) {
	var w fieldWire
	if err := rlp.DecodeBytes(raw, &w); err != nil {
		return 0, nil, &DecodeError{Context: "field", Err: err}
	}
	if w.Disc > 1 {
		return 0, nil, &DecodeError{Context: "field discriminant", Err: fmt.Errorf("%w: %d", ErrUnknownDiscriminant, w.Disc)}
	}
	return w.Disc, w.Value, nil
}
