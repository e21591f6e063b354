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

// Package request implements the typed batch request/response protocol:
// the wire codec, the Field back-reference resolver, the eight request
// kinds, and the batch builder/validator. Grounded throughout on Parity's
// ethcore/src/types/request/mod.rs, the canonical source of the
// check_outputs/note_outputs/fill contract per request kind.
package request

import "github.com/erigontech/odr/common"

// --- Headers ---------------------------------------------------------

// HeadersIncomplete requests a run of headers starting at start, skipping
// `skip` between each, up to `max`, optionally walking towards genesis.
// It produces no reusable outputs.
type HeadersIncomplete struct {
	Start   Field[HashOrNumber]
	Skip    uint64
	Max     uint64
	Reverse bool
}

type HeadersComplete struct {
	Start   HashOrNumber
	Skip    uint64
	Max     uint64
	Reverse bool
}

type HeadersResponse struct {
	Headers [][]byte // encoded headers
}

func (r *HeadersComplete) Kind() Kind { return KindHeaders }
func (r *HeadersIncomplete) Kind() Kind { return KindHeaders }

func (r *HeadersIncomplete) CheckOutputs(visit VisitFn) error {
	ref, pending := r.Start.BackReference()
	if !pending {
		return nil
	}
	// Headers.start is the one polymorphic field: either Hash or Number
	// satisfies it. We signal that by visiting with OutputHash; the
	// validator special-cases KindHeaders to also accept OutputNumber.
	return visit(ref.ReqIdx, ref.OutIdx, OutputHash)
}

func (r *HeadersIncomplete) NoteOutputs(emit EmitFn) {}

func (r *HeadersIncomplete) Fill(oracle Oracle) {
	ref, pending := r.Start.BackReference()
	if !pending {
		return
	}
	resolveHashOrNumberField(&r.Start, oracle, ref)
}

func (r *HeadersIncomplete) Complete() (CompleteRequest, bool) {
	v, ok := r.Start.Value()
	if !ok {
		return nil, false
	}
	return &HeadersComplete{Start: v, Skip: r.Skip, Max: r.Max, Reverse: r.Reverse}, true
}

// --- HeaderProof -------------------------------------------------------

// HeaderProofIncomplete requests a CHT inclusion proof for block Num,
// producing reusable output 0: the block's canonical hash.
type HeaderProofIncomplete struct {
	Num Field[uint64]
}

type HeaderProofComplete struct {
	Num uint64
}

type HeaderProofResponse struct {
	Proof           [][]byte
	Hash            common.Hash
	TotalDifficulty common.U256
}

func (r *HeaderProofComplete) Kind() Kind      { return KindHeaderProof }
func (r *HeaderProofIncomplete) Kind() Kind { return KindHeaderProof }

func (r *HeaderProofIncomplete) CheckOutputs(visit VisitFn) error {
	ref, pending := r.Num.BackReference()
	if !pending {
		return nil
	}
	return visit(ref.ReqIdx, ref.OutIdx, OutputNumber)
}

func (r *HeaderProofIncomplete) NoteOutputs(emit EmitFn) { emit(0, OutputHash) }

func (r *HeaderProofIncomplete) Fill(oracle Oracle) {
	ref, pending := r.Num.BackReference()
	if !pending {
		return
	}
	out, ok := oracle.Output(ref.ReqIdx, ref.OutIdx)
	if !ok || out.Kind != OutputNumber {
		return
	}
	r.Num = Scalar(out.Number)
}

func (r *HeaderProofIncomplete) Complete() (CompleteRequest, bool) {
	v, ok := r.Num.Value()
	if !ok {
		return nil, false
	}
	return &HeaderProofComplete{Num: v}, true
}

// --- Receipts ----------------------------------------------------------

// ReceiptsIncomplete requests the receipt list of a block, producing no
// reusable outputs.
type ReceiptsIncomplete struct {
	BlockHash Field[common.Hash]
}

type ReceiptsComplete struct {
	BlockHash common.Hash
}

type ReceiptsResponse struct {
	Receipts [][]byte // encoded receipts
}

func (r *ReceiptsComplete) Kind() Kind      { return KindReceipts }
func (r *ReceiptsIncomplete) Kind() Kind { return KindReceipts }

func (r *ReceiptsIncomplete) CheckOutputs(visit VisitFn) error {
	return checkHashField(r.BlockHash, visit)
}
func (r *ReceiptsIncomplete) NoteOutputs(emit EmitFn) {}
func (r *ReceiptsIncomplete) Fill(oracle Oracle)      { resolveHashField(&r.BlockHash, oracle) }
func (r *ReceiptsIncomplete) Complete() (CompleteRequest, bool) {
	v, ok := r.BlockHash.Value()
	if !ok {
		return nil, false
	}
	return &ReceiptsComplete{BlockHash: v}, true
}

// --- Body ---------------------------------------------------------------

// BodyIncomplete requests a block's body, producing no reusable outputs.
type BodyIncomplete struct {
	BlockHash Field[common.Hash]
}

type BodyComplete struct {
	BlockHash common.Hash
}

type BodyResponse struct {
	Transactions [][]byte
	Uncles       []byte
}

func (r *BodyComplete) Kind() Kind      { return KindBody }
func (r *BodyIncomplete) Kind() Kind { return KindBody }

func (r *BodyIncomplete) CheckOutputs(visit VisitFn) error { return checkHashField(r.BlockHash, visit) }
func (r *BodyIncomplete) NoteOutputs(emit EmitFn)          {}
func (r *BodyIncomplete) Fill(oracle Oracle)               { resolveHashField(&r.BlockHash, oracle) }
func (r *BodyIncomplete) Complete() (CompleteRequest, bool) {
	v, ok := r.BlockHash.Value()
	if !ok {
		return nil, false
	}
	return &BodyComplete{BlockHash: v}, true
}

// --- Account -------------------------------------------------------------

// AccountIncomplete requests the account record for AddressHash as of
// BlockHash's state root, producing reusable outputs 0: code_hash, 1:
// storage_root.
type AccountIncomplete struct {
	BlockHash   Field[common.Hash]
	AddressHash Field[common.Hash]
}

type AccountComplete struct {
	BlockHash   common.Hash
	AddressHash common.Hash
}

type AccountResponse struct {
	Proof       [][]byte
	Nonce       uint64
	Balance     common.U256
	CodeHash    common.Hash
	StorageRoot common.Hash
}

func (r *AccountComplete) Kind() Kind      { return KindAccount }
func (r *AccountIncomplete) Kind() Kind { return KindAccount }

func (r *AccountIncomplete) CheckOutputs(visit VisitFn) error {
	if err := checkHashField(r.BlockHash, visit); err != nil {
		return err
	}
	return checkHashField(r.AddressHash, visit)
}
func (r *AccountIncomplete) NoteOutputs(emit EmitFn) {
	emit(0, OutputHash) // code_hash
	emit(1, OutputHash) // storage_root
}
func (r *AccountIncomplete) Fill(oracle Oracle) {
	resolveHashField(&r.BlockHash, oracle)
	resolveHashField(&r.AddressHash, oracle)
}
func (r *AccountIncomplete) Complete() (CompleteRequest, bool) {
	bh, ok := r.BlockHash.Value()
	if !ok {
		return nil, false
	}
	ah, ok := r.AddressHash.Value()
	if !ok {
		return nil, false
	}
	return &AccountComplete{BlockHash: bh, AddressHash: ah}, true
}

// --- Storage -------------------------------------------------------------

// StorageIncomplete requests a single storage slot, rooted at the
// account's storage_root (typically itself the output of a prior Account
// request in the batch), producing reusable output 0: value_hash.
type StorageIncomplete struct {
	BlockHash   Field[common.Hash]
	AddressHash Field[common.Hash]
	KeyHash     Field[common.Hash]
}

type StorageComplete struct {
	BlockHash   common.Hash
	AddressHash common.Hash
	KeyHash     common.Hash
}

type StorageResponse struct {
	Proof [][]byte
	Value common.Hash
}

func (r *StorageComplete) Kind() Kind      { return KindStorage }
func (r *StorageIncomplete) Kind() Kind { return KindStorage }

func (r *StorageIncomplete) CheckOutputs(visit VisitFn) error {
	if err := checkHashField(r.BlockHash, visit); err != nil {
		return err
	}
	if err := checkHashField(r.AddressHash, visit); err != nil {
		return err
	}
	return checkHashField(r.KeyHash, visit)
}
func (r *StorageIncomplete) NoteOutputs(emit EmitFn) { emit(0, OutputHash) }
func (r *StorageIncomplete) Fill(oracle Oracle) {
	resolveHashField(&r.BlockHash, oracle)
	resolveHashField(&r.AddressHash, oracle)
	resolveHashField(&r.KeyHash, oracle)
}
func (r *StorageIncomplete) Complete() (CompleteRequest, bool) {
	bh, ok := r.BlockHash.Value()
	if !ok {
		return nil, false
	}
	ah, ok := r.AddressHash.Value()
	if !ok {
		return nil, false
	}
	kh, ok := r.KeyHash.Value()
	if !ok {
		return nil, false
	}
	return &StorageComplete{BlockHash: bh, AddressHash: ah, KeyHash: kh}, true
}

// --- Code -----------------------------------------------------------------

// CodeIncomplete requests the raw contract bytecode for CodeHash,
// producing no reusable outputs.
type CodeIncomplete struct {
	BlockHash Field[common.Hash]
	CodeHash  Field[common.Hash]
}

type CodeComplete struct {
	BlockHash common.Hash
	CodeHash  common.Hash
}

type CodeResponse struct {
	Code []byte
}

func (r *CodeComplete) Kind() Kind      { return KindCode }
func (r *CodeIncomplete) Kind() Kind { return KindCode }

func (r *CodeIncomplete) CheckOutputs(visit VisitFn) error {
	if err := checkHashField(r.BlockHash, visit); err != nil {
		return err
	}
	return checkHashField(r.CodeHash, visit)
}
func (r *CodeIncomplete) NoteOutputs(emit EmitFn) {}
func (r *CodeIncomplete) Fill(oracle Oracle) {
	resolveHashField(&r.BlockHash, oracle)
	resolveHashField(&r.CodeHash, oracle)
}
func (r *CodeIncomplete) Complete() (CompleteRequest, bool) {
	bh, ok := r.BlockHash.Value()
	if !ok {
		return nil, false
	}
	ch, ok := r.CodeHash.Value()
	if !ok {
		return nil, false
	}
	return &CodeComplete{BlockHash: bh, CodeHash: ch}, true
}

// --- Execution --------------------------------------------------------------

// ExecutionIncomplete requests a transaction-execution state-witness
// proof, producing no reusable outputs.
type ExecutionIncomplete struct {
	BlockHash Field[common.Hash]
	From      Field[common.Address]
	Action    []byte // nil = contract creation, else target address bytes
	Gas       common.U256
	GasPrice  common.U256
	Value     common.U256
	Data      []byte
}

type ExecutionComplete struct {
	BlockHash common.Hash
	From      common.Address
	Action    []byte
	Gas       common.U256
	GasPrice  common.U256
	Value     common.U256
	Data      []byte
}

type ExecutionResponse struct {
	Witness [][]byte // trie nodes and code blobs
}

func (r *ExecutionComplete) Kind() Kind      { return KindExecution }
func (r *ExecutionIncomplete) Kind() Kind { return KindExecution }

func (r *ExecutionIncomplete) CheckOutputs(visit VisitFn) error {
	if err := checkHashField(r.BlockHash, visit); err != nil {
		return err
	}
	ref, pending := r.From.BackReference()
	if !pending {
		return nil
	}
	return visit(ref.ReqIdx, ref.OutIdx, OutputHash)
}
func (r *ExecutionIncomplete) NoteOutputs(emit EmitFn) {}
func (r *ExecutionIncomplete) Fill(oracle Oracle) {
	resolveHashField(&r.BlockHash, oracle)
	ref, pending := r.From.BackReference()
	if !pending {
		return
	}
	out, ok := oracle.Output(ref.ReqIdx, ref.OutIdx)
	if !ok || out.Kind != OutputHash {
		return
	}
	r.From = Scalar(common.BytesToAddress(out.Hash[:]))
}
func (r *ExecutionIncomplete) Complete() (CompleteRequest, bool) {
	bh, ok := r.BlockHash.Value()
	if !ok {
		return nil, false
	}
	from, ok := r.From.Value()
	if !ok {
		return nil, false
	}
	return &ExecutionComplete{
		BlockHash: bh, From: from, Action: r.Action,
		Gas: r.Gas, GasPrice: r.GasPrice, Value: r.Value, Data: r.Data,
	}, true
}
