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

// Package common holds the primitive types shared by every package in the
// on-demand core: hashes, addresses, and the opaque header/block accessors
// the verifiers read trusted roots from.
package common

import (
	"encoding/hex"
	"fmt"

	gocommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// HashLength and AddressLength match the domain hash function's digest
// size and the account-identifier size respectively.
const (
	HashLength    = 32
	AddressLength = 20
)

// Hash is a 32-byte opaque identifier produced by the domain hash
// function (keccak-style).
type Hash [HashLength]byte

func (h Hash) String() string { return "0x" + hex.EncodeToString(h[:]) }

// Bytes returns a freshly allocated copy of the hash bytes.
func (h Hash) Bytes() []byte { b := make([]byte, HashLength); copy(b, h[:]); return b }

func (h Hash) IsZero() bool { return h == Hash{} }

// BytesToHash left-pads or truncates b to HashLength bytes, matching the
// go-ethereum convention for digest-shaped byte slices.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Address is a 20-byte account identifier.
type Address [AddressLength]byte

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// U256 is an unsigned 256-bit integer, aliasing holiman/uint256 so the
// precompile pricers and account balances share saturating-arithmetic
// helpers with the rest of the Ethereum Go ecosystem.
type U256 = uint256.Int

// Keccak256Hash computes the domain hash function over the concatenation
// of data, delegating to go-ethereum/crypto the same way the teacher's
// own keccak wrappers do.
func Keccak256Hash(data ...[]byte) Hash {
	return Hash(crypto.Keccak256Hash(data...))
}

// Header exposes the subset of an already-encoded block header that the
// verifier suite needs. The core never constructs headers itself; it only
// reads trust anchors out of ones supplied by the header source.
type Header interface {
	Number() uint64
	Hash() Hash
	ParentHash() Hash
	StateRoot() Hash
	TransactionsRoot() Hash
	ReceiptsRoot() Hash
	UnclesHash() Hash
	// Encoded returns the canonical wire encoding of the header, the
	// bytes whose domain hash equals Hash().
	Encoded() []byte
}

// Block is a header paired with its body (transaction list, uncle list).
type Block struct {
	Header Header
	Body   Body
}

// Body is the mutable payload of a block: the raw, RLP-encoded
// transaction list and the raw, RLP-encoded uncle-header list, exactly as
// received on the wire — the verifier never decodes transactions, it only
// re-derives roots over their encoded bytes.
type Body struct {
	Transactions [][]byte
	Uncles       []byte
}

// ToGoEthereum converts to the go-ethereum common.Hash shape expected by
// the trie package's verification entry points.
func (h Hash) ToGoEthereum() gocommon.Hash { return gocommon.Hash(h) }

// ToGoEthereum converts to the go-ethereum common.Address shape.
func (a Address) ToGoEthereum() gocommon.Address { return gocommon.Address(a) }

// ErrInvalidLength is returned by the fixed-width decoders below when the
// input is not exactly the expected number of bytes.
type ErrInvalidLength struct {
	Field string
	Want  int
	Got   int
}

func (e *ErrInvalidLength) Error() string {
	return fmt.Sprintf("invalid %s length: want %d, got %d", e.Field, e.Want, e.Got)
}
