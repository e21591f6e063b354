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
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/odr/common"
)

func sampleExecutionComplete(i int) *ExecutionComplete {
	return &ExecutionComplete{
		BlockHash: common.Keccak256Hash([]byte{byte(i)}),
		From:      common.BytesToAddress([]byte{byte(i), 1, 2}),
		Action:    []byte{byte(i)},
		Gas:       *new(common.U256).SetUint64(uint64(21000 + i)),
		GasPrice:  *new(common.U256).SetUint64(uint64(1_000_000_000 + i)),
		Value:     *new(common.U256).SetUint64(uint64(i)),
		Data:      []byte("calldata"),
	}
}

func TestRequestRoundTrip(t *testing.T) {
	req := sampleExecutionComplete(3)
	encoded, err := EncodeRequest(req)
	require.NoError(t, err)

	decoded, err := DecodeRequest(encoded)
	require.NoError(t, err)
	got, ok := decoded.(*ExecutionComplete)
	require.True(t, ok)
	require.Equal(t, req, got)
}

func TestDecodeRequestRejectsReservedTag(t *testing.T) {
	raw, err := rlp.EncodeToBytes(envelope{Tag: 2, Payload: rlp.RawValue{0x80}})
	require.NoError(t, err)
	_, err = DecodeRequest(raw)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestResponseRoundTrip(t *testing.T) {
	resp := CodeResponse{Code: []byte("contract bytecode")}
	encoded, err := EncodeResponse(KindCode, resp)
	require.NoError(t, err)

	var decoded CodeResponse
	require.NoError(t, DecodeResponse(encoded, KindCode, &decoded))
	require.Equal(t, resp, decoded)
}

func TestDecodeResponseRejectsWrongKind(t *testing.T) {
	resp := CodeResponse{Code: []byte("x")}
	encoded, err := EncodeResponse(KindCode, resp)
	require.NoError(t, err)

	var decoded ReceiptsResponse
	err = DecodeResponse(encoded, KindReceipts, &decoded)
	require.Error(t, err)
	var wrongKind *WrongKindError
	require.ErrorAs(t, err, &wrongKind)
	require.Equal(t, KindReceipts, wrongKind.Expected)
	require.Equal(t, KindCode, wrongKind.Found)
}

// TestExecutionBatchVectorRoundTrip checks that encoding ten execution
// requests inside the two-element outer list [100, list] and decoding
// them back reproduces (100, original_list).
func TestExecutionBatchVectorRoundTrip(t *testing.T) {
	const id = 100
	originals := make([]*ExecutionComplete, 10)
	encodedReqs := make([][]byte, 10)
	for i := range originals {
		originals[i] = sampleExecutionComplete(i)
		raw, err := EncodeRequest(originals[i])
		require.NoError(t, err)
		encodedReqs[i] = raw
	}

	wrapped, err := EncodeBatchEnvelope(id, toRawValues(t, encodedReqs))
	require.NoError(t, err)

	gotID, items, err := DecodeBatchEnvelope(wrapped)
	require.NoError(t, err)
	require.Equal(t, uint64(id), gotID)

	var rawList []rlp.RawValue
	require.NoError(t, rlp.DecodeBytes(items, &rawList))
	require.Len(t, rawList, 10)

	for i, raw := range rawList {
		decoded, err := DecodeRequest(raw)
		require.NoError(t, err)
		got, ok := decoded.(*ExecutionComplete)
		require.True(t, ok)
		require.Equal(t, originals[i], got)
	}
}

func toRawValues(t *testing.T, encoded [][]byte) []rlp.RawValue {
	t.Helper()
	out := make([]rlp.RawValue, len(encoded))
	for i, e := range encoded {
		out[i] = rlp.RawValue(e)
	}
	return out
}
