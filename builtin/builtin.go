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

// Package builtin prices and executes the small closed set of
// pre-compiled contracts the execution verifier indirectly depends on,
// grounded on Parity's ethcore/src/builtin.rs: identity, ECDSA recovery,
// SHA-256, RIPEMD-160, and modular exponentiation.
package builtin

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is a protocol-mandated precompile, not a new design choice.

	"github.com/erigontech/odr/common"
)

// Impl executes a built-in contract on input, writing to output.
type Impl interface {
	Execute(input []byte) (output []byte, err error)
}

// Pricer computes the gas cost of running a built-in on input.
type Pricer interface {
	Cost(input []byte) common.U256
}

// Builtin pairs a pricing scheme, a native implementation, and an
// activation block number. Calls below ActivateAt act as if the
// contract did not exist.
type Builtin struct {
	Pricer     Pricer
	Native     Impl
	ActivateAt uint64
}

// Cost is a simple forwarder to the pricer.
func (b *Builtin) Cost(input []byte) common.U256 { return b.Pricer.Cost(input) }

// Execute is a simple forwarder to the native implementation.
func (b *Builtin) Execute(input []byte) ([]byte, error) { return b.Native.Execute(input) }

// IsActive reports whether the builtin is activated at block number at.
func (b *Builtin) IsActive(at uint64) bool { return at >= b.ActivateAt }

// Registry is the name -> constructor table mirroring
// ethereum_builtin(name) in the source.
var Registry = map[string]func() Impl{
	"identity":  func() Impl { return identityImpl{} },
	"ecrecover": func() Impl { return ecRecoverImpl{} },
	"sha256":    func() Impl { return sha256Impl{} },
	"ripemd160": func() Impl { return ripemd160Impl{} },
	"modexp":    func() Impl { return ModexpImpl{} },
}

type identityImpl struct{}

func (identityImpl) Execute(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

type sha256Impl struct{}

func (sha256Impl) Execute(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

type ripemd160Impl struct{}

func (ripemd160Impl) Execute(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	sum := h.Sum(nil)
	// Ethereum's RIPEMD-160 precompile left-pads the 20-byte digest to a
	// 32-byte word.
	out := make([]byte, 32)
	copy(out[32-len(sum):], sum)
	return out, nil
}

type ecRecoverImpl struct{}

func (ecRecoverImpl) Execute(input []byte) ([]byte, error) {
	data := make([]byte, 128)
	copy(data, input)
	hash := data[:32]
	v := data[63]
	sig := make([]byte, 65)
	copy(sig[:32], data[64:96])
	copy(sig[32:64], data[96:128])
	if v < 27 || v > 28 {
		return nil, nil
	}
	sig[64] = v - 27
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return nil, nil // malformed signature yields empty output, not an error
	}
	addr := crypto.PubkeyToAddress(*pub)
	out := make([]byte, 32)
	copy(out[12:], addr[:])
	return out, nil
}
