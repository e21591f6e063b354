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
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/odr/common"
)

func TestLinearCost(t *testing.T) {
	l := Linear{Base: 600, Word: 120}
	require.Equal(t, uint64(600), l.Cost(nil).Uint64())
	require.Equal(t, uint64(720), l.Cost(make([]byte, 1)).Uint64())
	require.Equal(t, uint64(720), l.Cost(make([]byte, 32)).Uint64())
	require.Equal(t, uint64(840), l.Cost(make([]byte, 33)).Uint64())
}

func TestIdentity(t *testing.T) {
	in := []byte("hello world")
	out, err := identityImpl{}.Execute(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestSHA256(t *testing.T) {
	out, err := sha256Impl{}.Execute([]byte("abc"))
	require.NoError(t, err)
	expected, err := hex.DecodeString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	require.NoError(t, err)
	require.Equal(t, expected, out)
}

func TestRIPEMD160PadsTo32Bytes(t *testing.T) {
	out, err := ripemd160Impl{}.Execute([]byte("abc"))
	require.NoError(t, err)
	require.Len(t, out, 32)
	require.True(t, bytes.Equal(out[:12], make([]byte, 12)), "left 12 bytes must be zero padding")
}

func TestEcRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hash := crypto.Keccak256([]byte("message"))
	sig, err := crypto.Sign(hash, key)
	require.NoError(t, err)

	input := make([]byte, 128)
	copy(input[:32], hash)
	input[63] = sig[64] + 27
	copy(input[64:96], sig[:32])
	copy(input[96:128], sig[32:64])

	out, err := ecRecoverImpl{}.Execute(input)
	require.NoError(t, err)
	require.Len(t, out, 32)

	wantAddr := crypto.PubkeyToAddress(key.PublicKey)
	require.True(t, bytes.Equal(out[12:], wantAddr.Bytes()))
}

func TestEcRecoverRejectsBadRecoveryID(t *testing.T) {
	input := make([]byte, 128)
	input[63] = 99
	out, err := ecRecoverImpl{}.Execute(input)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestModexpCostSmall(t *testing.T) {
	m := Modexp{Divisor: 20}
	input := make([]byte, 96)
	input[31] = 32 // base_len = 32
	input[63] = 32 // exp_len = 32
	input[95] = 32 // mod_len = 32
	// max(base_len, mod_len)^2 * max(exp_len, 1) / divisor = 32*32*32/20 = 1638
	require.Equal(t, uint64(32*32*32/20), m.Cost(input).Uint64())
}

func TestModexpCostZeroDivisorUsesDefault(t *testing.T) {
	m := Modexp{Divisor: 0}
	input := make([]byte, 96)
	input[31] = 10
	input[63] = 1
	input[95] = 10
	// 10*10*1/10 = 10, using the default divisor since configured is zero.
	require.Equal(t, uint64(10), m.Cost(input).Uint64())
	require.Equal(t, uint64(DefaultModexpDivisor), m.effectiveDivisor())
}

func TestModexpCostSaturatesOnOverflow(t *testing.T) {
	m := Modexp{Divisor: 1}
	input := make([]byte, 96)
	// base_len and mod_len large enough that squaring alone overflows U256.
	huge := make([]byte, 32)
	huge[0] = 0xFF
	huge[1] = 0xFF
	huge[2] = 0xFF
	huge[3] = 0xFF
	copy(input[0:32], huge)
	copy(input[64:96], huge)
	got := m.Cost(input)

	maxU256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	var want common.U256
	want.SetFromBig(maxU256)
	require.Equal(t, want, got)
}

func TestModexpImplExecute(t *testing.T) {
	// 3^5 mod 7 = 5
	input := make([]byte, 96)
	input[31] = 1 // base_len
	input[63] = 1 // exp_len
	input[95] = 1 // mod_len
	input = append(input, 3, 5, 7)

	out, err := ModexpImpl{}.Execute(input)
	require.NoError(t, err)
	require.Equal(t, []byte{5}, out)
}

func TestModexpImplExecuteZeroModulus(t *testing.T) {
	input := make([]byte, 96)
	input[31] = 1
	input[63] = 1
	input[95] = 1
	input = append(input, 3, 5, 0)

	out, err := ModexpImpl{}.Execute(input)
	require.NoError(t, err)
	require.Equal(t, []byte{0}, out)
}

func TestRegistryConstructsModexp(t *testing.T) {
	ctor, ok := Registry["modexp"]
	require.True(t, ok)
	impl := ctor()
	_, ok = impl.(ModexpImpl)
	require.True(t, ok)
}
