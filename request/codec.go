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
)

// envelope is the two-element [kind_tag, payload] wire shape shared by
// every Request and Response.
type envelope struct {
	Tag     uint8
	Payload rlp.RawValue
}

// EncodeRequest serializes a CompleteRequest as [kind_tag, payload].
func EncodeRequest(req CompleteRequest) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(req)
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(envelope{Tag: byte(req.Kind()), Payload: payload})
}

// DecodeRequest parses a [kind_tag, payload] packet into the matching
// CompleteRequest, rejecting unknown or reserved tags with a DecodeError.
func DecodeRequest(raw []byte) (CompleteRequest, error) {
	var env envelope
	if err := rlp.DecodeBytes(raw, &env); err != nil {
		return nil, &DecodeError{Context: "request envelope", Err: err}
	}
	k := Kind(env.Tag)
	if !k.Valid() {
		return nil, &DecodeError{Context: "request tag", Err: fmt.Errorf("unknown or reserved kind tag %d", env.Tag)}
	}
	var out CompleteRequest
	var err error
	switch k {
	case KindHeaders:
		var v HeadersComplete
		err = rlp.DecodeBytes(env.Payload, &v)
		out = &v
	case KindHeaderProof:
		var v HeaderProofComplete
		err = rlp.DecodeBytes(env.Payload, &v)
		out = &v
	case KindReceipts:
		var v ReceiptsComplete
		err = rlp.DecodeBytes(env.Payload, &v)
		out = &v
	case KindBody:
		var v BodyComplete
		err = rlp.DecodeBytes(env.Payload, &v)
		out = &v
	case KindAccount:
		var v AccountComplete
		err = rlp.DecodeBytes(env.Payload, &v)
		out = &v
	case KindStorage:
		var v StorageComplete
		err = rlp.DecodeBytes(env.Payload, &v)
		out = &v
	case KindCode:
		var v CodeComplete
		err = rlp.DecodeBytes(env.Payload, &v)
		out = &v
	case KindExecution:
		var v ExecutionComplete
		err = rlp.DecodeBytes(env.Payload, &v)
		out = &v
	}
	if err != nil {
		return nil, &DecodeError{Context: fmt.Sprintf("%v payload", k), Err: err}
	}
	return out, nil
}

// responseEnvelope mirrors envelope but for the response side of the
// protocol, where the tag confirms which kind's payload shape follows.
type responseEnvelope struct {
	Tag     uint8
	Payload rlp.RawValue
}

// EncodeResponse serializes a response payload tagged with its kind.
func EncodeResponse(kind Kind, resp interface{}) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(resp)
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(responseEnvelope{Tag: byte(kind), Payload: payload})
}

// DecodeResponse parses a response envelope, checking its tag against the
// expected kind before decoding the payload and returning a WrongKindError
// on mismatch — a peer that answers the wrong request kind is misbehaving.
func DecodeResponse(raw []byte, expected Kind, out interface{}) error {
	var env responseEnvelope
	if err := rlp.DecodeBytes(raw, &env); err != nil {
		return &DecodeError{Context: "response envelope", Err: err}
	}
	if Kind(env.Tag) != expected {
		return &WrongKindError{Expected: expected, Found: Kind(env.Tag)}
	}
	if err := rlp.DecodeBytes(env.Payload, out); err != nil {
		return &DecodeError{Context: fmt.Sprintf("%v response payload", expected), Err: err}
	}
	return nil
}

// EncodeBatchEnvelope wraps an arbitrary value (typically a request-id
// scalar and a list of requests/responses) in a two-element outer list,
// e.g. [100, list_of_10_execution_requests].
func EncodeBatchEnvelope(id uint64, items interface{}) ([]byte, error) {
	return rlp.EncodeToBytes([]interface{}{id, items})
}

// DecodeBatchEnvelope is the left-inverse of EncodeBatchEnvelope: it
// decodes the outer two-element list into an id and the raw inner list
// payload, which the caller then decodes element-wise by kind.
func DecodeBatchEnvelope(raw []byte) (id uint64, items rlp.RawValue, err error) {
	var outer struct {
		ID    uint64
		Items rlp.RawValue
	}
	if err := rlp.DecodeBytes(raw, &outer); err != nil {
		return 0, nil, &DecodeError{Context: "batch envelope", Err: err}
	}
	return outer.ID, outer.Items, nil
}
