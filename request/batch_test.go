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

	"github.com/stretchr/testify/require"

	"github.com/erigontech/odr/common"
)

func TestBuilderForwardReferenceImpossible(t *testing.T) {
	b := NewBuilder()
	// Request 0 references request 1's output, which does not exist yet
	// from request 0's perspective (r >= k).
	req := &AccountIncomplete{
		BlockHash:   Pending[common.Hash](1, 0),
		AddressHash: Scalar(common.Hash{}),
	}
	err := b.Append(req)
	require.Error(t, err)
	var noSuch *NoSuchOutputError
	require.ErrorAs(t, err, &noSuch)
	require.False(t, noSuch.FoundDeclared)
}

func TestBuilderRejectsWrongKindBackReference(t *testing.T) {
	b := NewBuilder()
	// Request 0 is a HeaderProof, declaring output 0 as Hash.
	require.NoError(t, b.Append(&HeaderProofIncomplete{Num: Scalar(uint64(10))}))

	// Request 1 is a second HeaderProof whose Num field back-references
	// out_idx 0 of request 0. Num expects a Number output, but request 0
	// declared that slot as Hash, so the append must fail with a declared
	// kind mismatch.
	bad := &HeaderProofIncomplete{Num: Pending[uint64](0, 0)}
	err := b.Append(bad)
	require.Error(t, err)
	var noSuch *NoSuchOutputError
	require.ErrorAs(t, err, &noSuch)
	require.True(t, noSuch.FoundDeclared)
	require.Equal(t, OutputNumber, noSuch.Expected)
	require.Equal(t, OutputHash, noSuch.Found)
}

// numberOutputRequest is a test-only stand-in for a request kind that
// declares a Number output — no live kind in this protocol happens to,
// but the Headers.start polymorphism must still accept one if offered.
type numberOutputRequest struct{ done bool }

func (r *numberOutputRequest) Kind() Kind                   { return KindHeaderProof }
func (r *numberOutputRequest) CheckOutputs(visit VisitFn) error { return nil }
func (r *numberOutputRequest) NoteOutputs(emit EmitFn)          { emit(0, OutputNumber) }
func (r *numberOutputRequest) Fill(oracle Oracle)               {}
func (r *numberOutputRequest) Complete() (CompleteRequest, bool) { return nil, false }

func TestBuilderAcceptsHeadersStartPolymorphicNumber(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Append(&numberOutputRequest{}))

	headers := &HeadersIncomplete{Start: Pending[HashOrNumber](0, 0), Max: 1}
	require.NoError(t, b.Append(headers))
}

func TestFoldOutputsFillsLaterPendingRequests(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Append(&AccountIncomplete{
		BlockHash:   Scalar(common.Keccak256Hash([]byte("block"))),
		AddressHash: Scalar(common.Keccak256Hash([]byte("addr"))),
	}))
	require.NoError(t, b.Append(&StorageIncomplete{
		BlockHash:   Scalar(common.Keccak256Hash([]byte("block"))),
		AddressHash: Pending[common.Hash](0, 1), // storage_root output
		KeyHash:     Scalar(common.Keccak256Hash([]byte("key"))),
	}))
	batch := b.Finish()

	resolver := NewResolver(batch)
	storageRoot := common.Keccak256Hash([]byte("storage-root"))
	resolver.FoldOutputs(0, []Output{
		HashOutput(common.Keccak256Hash([]byte("code"))),
		HashOutput(storageRoot),
	})

	complete, ok := batch.Request(1).(*StorageIncomplete)
	require.True(t, ok)
	v, ok := complete.AddressHash.Value()
	require.True(t, ok)
	require.Equal(t, storageRoot, v)
}
