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

package vote

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/odr/common"
)

type testMessage struct {
	sig       Signature
	round     uint64
	blockHash common.Hash
	hasBlock  bool
}

func (m testMessage) Signature() Signature { return m.sig }
func (m testMessage) BlockHash() (common.Hash, bool) {
	return m.blockHash, m.hasBlock
}
func (m testMessage) Round() uint64      { return m.round }
func (m testMessage) Broadcastable() bool { return true }
func (m testMessage) Encode() []byte {
	var b [73]byte
	copy(b[:65], m.sig[:])
	binary.BigEndian.PutUint64(b[65:], m.round)
	return append(b[:], m.blockHash[:]...)
}

func sig(b byte) Signature {
	var s Signature
	s[0] = b
	return s
}

func hash(s string) common.Hash {
	return common.Keccak256Hash([]byte(s))
}

func vote(c *Collector, signature Signature, round uint64, blockHash common.Hash, hasBlock bool, addr common.Address) *common.Address {
	return c.Insert(testMessage{sig: signature, round: round, blockHash: blockHash, hasBlock: hasBlock}, addr)
}

func TestSealRetrieval(t *testing.T) {
	c := New()
	bh := hash("1")
	var sigs [5]Signature
	for i := range sigs {
		sigs[i] = sig(byte(i + 1))
	}
	const proposeRound, commitRound = 3, 5

	vote(c, sigs[4], 1, bh, true, common.Address{1})
	vote(c, sigs[0], proposeRound, bh, true, common.Address{2})
	vote(c, sigs[0], proposeRound, hash("0"), true, common.Address{2})
	vote(c, sigs[3], commitRound, hash("0"), true, common.Address{3})
	vote(c, sigs[0], 6, bh, true, common.Address{2})
	vote(c, sigs[0], 4, bh, true, common.Address{2})
	vote(c, sigs[2], commitRound, bh, true, common.Address{4})
	vote(c, sigs[2], commitRound, bh, true, common.Address{4})
	vote(c, sigs[4], 6, bh, true, common.Address{1})
	vote(c, sigs[1], commitRound, bh, true, common.Address{5})
	vote(c, sigs[1], 7, bh, true, common.Address{5})

	seal, ok := c.SealSignatures(proposeRound, commitRound, bh)
	require.True(t, ok)
	require.Equal(t, sigs[0], seal.Proposal)
	require.ElementsMatch(t, []Signature{sigs[1], sigs[2]}, seal.Votes)
}

func TestCountVotes(t *testing.T) {
	c := New()
	const round1, round3 = 1, 3

	vote(c, sig(1), round1, hash("0"), true, common.Address{1})
	vote(c, sig(2), 0, hash("0"), true, common.Address{2})
	vote(c, sig(3), round3, hash("0"), true, common.Address{3})
	vote(c, sig(4), 2, hash("0"), true, common.Address{4})
	vote(c, sig(5), round1, hash("1"), true, common.Address{5})
	same := sig(6)
	vote(c, same, round1, hash("1"), true, common.Address{6})
	vote(c, same, round1, hash("1"), true, common.Address{6})
	vote(c, sig(7), round3, hash("1"), true, common.Address{7})
	vote(c, sig(8), round1, hash("0"), true, common.Address{8})
	vote(c, sig(9), 4, hash("2"), true, common.Address{9})

	require.Equal(t, 4, c.CountRoundVotes(round1))
	require.Equal(t, 2, c.CountRoundVotes(round3))

	msg := testMessage{sig: Signature{}, round: round1, blockHash: hash("1"), hasBlock: true}
	require.Equal(t, 2, c.CountAlignedVotes(msg))
}

func TestRemoveOld(t *testing.T) {
	c := New()
	vote(c, sig(1), 6, hash("0"), true, common.Address{1})
	vote(c, sig(2), 3, hash("0"), true, common.Address{2})
	vote(c, sig(3), 7, hash("0"), true, common.Address{3})
	vote(c, sig(4), 8, hash("1"), true, common.Address{4})
	vote(c, sig(5), 1, hash("1"), true, common.Address{5})

	c.ThrowOutOld(7)
	require.Equal(t, 2, c.Rounds())
}

func TestMaliciousAuthority(t *testing.T) {
	c := New()
	const round = 3
	addr := common.Address{9}
	require.Nil(t, vote(c, sig(1), round, hash("0"), true, addr))
	require.NotNil(t, vote(c, sig(2), round, hash("1"), true, addr))
	require.Equal(t, 1, c.CountRoundVotes(round))
}
