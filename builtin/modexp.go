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

package builtin

import (
	"math/big"

	"github.com/erigontech/odr/common"
)

// DefaultModexpDivisor is substituted for a configured zero divisor,
// matching the source's fallback of 10 when an ethjson chain spec names
// divisor 0.
const DefaultModexpDivisor = 10

// Modexp prices EIP-198 modular exponentiation:
// floor(max(mod_len, base_len)^2 * max(exp_len, 1) / divisor), saturating
// to the maximum U256 value on any intermediate overflow. Grounded
// directly on Parity's Modexp::cost, which reads the three input lengths
// as big-endian 32-byte words and computes via overflowing_mul.
type Modexp struct {
	Divisor uint64
}

// effectiveDivisor returns m.Divisor, or DefaultModexpDivisor if it is
// zero.
func (m Modexp) effectiveDivisor() uint64 {
	if m.Divisor == 0 {
		return DefaultModexpDivisor
	}
	return m.Divisor
}

// Cost implements Pricer.
func (m Modexp) Cost(input []byte) common.U256 {
	baseLen := readLen(input, 0)
	expLen := readLen(input, 32)
	modLen := readLen(input, 64)

	maxVal := baseLen
	if modLen.Cmp(baseLen) > 0 {
		maxVal = modLen
	}

	squared, overflow := new(common.U256).MulOverflow(maxVal, maxVal)
	if overflow {
		return maxU256()
	}

	expFactor := expLen
	one := new(common.U256).SetOne()
	if expLen.Cmp(one) < 0 {
		expFactor = one
	}

	product, overflow := new(common.U256).MulOverflow(squared, expFactor)
	if overflow {
		return maxU256()
	}

	divisor := new(common.U256).SetUint64(m.effectiveDivisor())
	result := new(common.U256)
	result.Div(product, divisor)
	return *result
}

// readLen reads a big-endian 32-byte length field at offset off from
// input, zero-extending input as needed — Modexp's length header fields
// are always read as though the input were infinitely zero-padded.
func readLen(input []byte, off int) *common.U256 {
	var buf [32]byte
	if off < len(input) {
		n := copy(buf[:], input[off:])
		_ = n
	}
	var v common.U256
	v.SetBytes(buf[:])
	return &v
}

func maxU256() common.U256 {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	var u common.U256
	u.SetFromBig(max)
	return u
}

// ModexpImpl performs big-endian modular exponentiation by repeated
// squaring via math/big, exactly the semantics Parity's ModexpImpl
// implements over BigUint.
type ModexpImpl struct{}

func (ModexpImpl) Execute(input []byte) ([]byte, error) {
	baseLen := readLenInt(input, 0)
	expLen := readLenInt(input, 32)
	modLen := readLenInt(input, 64)

	const headerLen = 96
	body := zeroExtend(input, headerLen, baseLen+expLen+modLen)

	base := new(big.Int).SetBytes(body[:baseLen])
	exp := new(big.Int).SetBytes(body[baseLen : baseLen+expLen])
	mod := new(big.Int).SetBytes(body[baseLen+expLen : baseLen+expLen+modLen])

	out := make([]byte, modLen)
	if mod.Sign() == 0 {
		return out, nil
	}
	res := new(big.Int).Exp(base, exp, mod)
	resBytes := res.Bytes()
	copy(out[modLen-len(resBytes):], resBytes)
	return out, nil
}

func readLenInt(input []byte, off int) int {
	v := readLen(input, off)
	if !v.IsUint64() || v.Uint64() > (1<<32) {
		return 1 << 32 // absurdly large, caller's gas cost already rejected this
	}
	return int(v.Uint64())
}

func zeroExtend(input []byte, off, n int) []byte {
	out := make([]byte, n)
	if off < len(input) {
		copy(out, input[off:])
	}
	return out
}
